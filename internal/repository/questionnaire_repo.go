package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questionnaire-api/internal/model"
)

// QuestionnaireRepo handles MongoDB operations for questionnaire instances
type QuestionnaireRepo interface {
	Create(ctx context.Context, q *model.Questionnaire) (string, error)
	GetByID(ctx context.Context, id string) (*model.Questionnaire, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Questionnaire, error)
	Update(ctx context.Context, q *model.Questionnaire) error
	EnsureIndexes(ctx context.Context) error
}

type questionnaireRepo struct {
	collection *mongo.Collection
}

// NewQuestionnaireRepo creates a new questionnaire repository
func NewQuestionnaireRepo(db *mongo.Database) QuestionnaireRepo {
	return &questionnaireRepo{
		collection: db.Collection("questionnaires"),
	}
}

func (r *questionnaireRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	return err
}

func (r *questionnaireRepo) Create(ctx context.Context, q *model.Questionnaire) (string, error) {
	q.CreatedAt = time.Now().UTC()
	q.UpdatedAt = q.CreatedAt

	result, err := r.collection.InsertOne(ctx, q)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	q.ID = oid
	return oid.Hex(), nil
}

func (r *questionnaireRepo) GetByID(ctx context.Context, id string) (*model.Questionnaire, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var q model.Questionnaire
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Questionnaire, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questionnaires []*model.Questionnaire
	if err := cursor.All(ctx, &questionnaires); err != nil {
		return nil, err
	}
	return questionnaires, nil
}

func (r *questionnaireRepo) Update(ctx context.Context, q *model.Questionnaire) error {
	q.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	return err
}
