package model

// QuestionType is the kind of answer a question expects
type QuestionType string

const (
	QuestionTypeText     QuestionType = "Text"
	QuestionTypeSingle   QuestionType = "Single"
	QuestionTypeMultiple QuestionType = "Multiple"
	QuestionTypeNumber   QuestionType = "Number"
)

// Question is the atomic questionnaire unit. Its identity is fixed once it is
// embedded in a snapshot; only Answer is mutable, and only on questionnaire
// instances, never on templates or collections.
type Question struct {
	Q        string       `json:"q" bson:"q"`
	Choice   []string     `json:"choice" bson:"choice"`
	QType    QuestionType `json:"qType" bson:"qType"`
	Required bool         `json:"required" bson:"required"`
	Answer   *string      `json:"answer,omitempty" bson:"answer,omitempty"`
}
