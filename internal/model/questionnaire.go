package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot types are the flattened, self-contained copy of a template stored on
// a questionnaire instance. At every node the collection references are gone,
// replaced by the concatenated questions of the referenced collections in
// reference order. An instance never looks up a QuestionsCol again.

type TopicSnapshot struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Questions []Question         `json:"questions" bson:"questions"`
}

type SubCategorySnapshot struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Questions []Question         `json:"questions" bson:"questions"`
	Topics    []TopicSnapshot    `json:"topics,omitempty" bson:"topics,omitempty"`
}

type CategorySnapshot struct {
	ID            primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string                `json:"name" bson:"name"`
	Questions     []Question            `json:"questions" bson:"questions"`
	SubCategories []SubCategorySnapshot `json:"subCategories,omitempty" bson:"subCategories,omitempty"`
}

type TemplateSnapshot struct {
	Name       string             `json:"name" bson:"name"`
	Categories []CategorySnapshot `json:"categories" bson:"categories"`
}

// Questionnaire is a per-respondent answerable instance produced from a
// template. The embedded snapshot is decoupled from later template or
// collection edits. Identity fields are flat: either copied from the
// authenticated session or supplied by an anonymous respondent.
type Questionnaire struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TemplateID primitive.ObjectID  `json:"templateId" bson:"templateId"`
	Template   TemplateSnapshot    `json:"template" bson:"template"`
	IsComplete bool                `json:"isComplete" bson:"isComplete"`
	User       *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
	UserName   *string             `json:"userName,omitempty" bson:"userName,omitempty"`
	UserEmail  *string             `json:"userEmail,omitempty" bson:"userEmail,omitempty"`
	UserPhone  *string             `json:"userPhone,omitempty" bson:"userPhone,omitempty"`
	Token      string              `json:"token,omitempty" bson:"token,omitempty"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`
}
