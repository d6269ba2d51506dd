package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxChildren bounds the fan-out at every level of the template hierarchy:
// categories per template, sub-categories per category, topics per sub-category.
const MaxChildren = 10

// Topic is the deepest template node. QuestionRefs holds QuestionsCol ids,
// stored under the wire name "questions".
type Topic struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	QuestionRefs []primitive.ObjectID `json:"questions" bson:"questions"`
}

// SubCategory groups topics under a category.
type SubCategory struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	QuestionRefs []primitive.ObjectID `json:"questions" bson:"questions"`
	Topics       []Topic              `json:"topics,omitempty" bson:"topics,omitempty"`
}

// Category is a top-level template node.
type Category struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	QuestionRefs  []primitive.ObjectID `json:"questions" bson:"questions"`
	SubCategories []SubCategory        `json:"subCategories,omitempty" bson:"subCategories,omitempty"`
}

// Template is the authoring-time questionnaire definition. The whole hierarchy
// is embedded in a single document; only question collections are referenced.
// Templates are never mutated by respondent answers.
type Template struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Categories []Category         `json:"categories" bson:"categories"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Resolved* mirror the template tree with every collection reference replaced
// by the full QuestionsCol document. This is the GET /template/:id shape; it is
// never persisted.

type ResolvedTopic struct {
	ID        primitive.ObjectID `json:"id,omitempty"`
	Name      string             `json:"name"`
	Questions []QuestionsCol     `json:"questions"`
}

type ResolvedSubCategory struct {
	ID        primitive.ObjectID `json:"id,omitempty"`
	Name      string             `json:"name"`
	Questions []QuestionsCol     `json:"questions"`
	Topics    []ResolvedTopic    `json:"topics,omitempty"`
}

type ResolvedCategory struct {
	ID            primitive.ObjectID    `json:"id,omitempty"`
	Name          string                `json:"name"`
	Questions     []QuestionsCol        `json:"questions"`
	SubCategories []ResolvedSubCategory `json:"subCategories,omitempty"`
}

type ResolvedTemplate struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Categories []ResolvedCategory `json:"categories"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// TemplateSearchResult is the paginated response of GET /template/search.
type TemplateSearchResult struct {
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int64       `json:"totalPages"`
	Templates  []*Template `json:"templates"`
}
