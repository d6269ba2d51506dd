package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// QuestionsCol is a named, owned, reusable bundle of questions. Template nodes
// reference collections by id; they never own them.
type QuestionsCol struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Questions   []Question         `json:"questions" bson:"questions"`
}

// QuestionsColRef is the trimmed form returned by name search.
type QuestionsColRef struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}
