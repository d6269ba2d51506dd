package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questionnaire-api/internal/model"
)

// QuestionsColRepo handles MongoDB operations for question collections
type QuestionsColRepo interface {
	Create(ctx context.Context, col *model.QuestionsCol) (string, error)
	GetByID(ctx context.Context, id string) (*model.QuestionsCol, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.QuestionsCol, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.QuestionsCol, error)
	FindByName(ctx context.Context, name string) (*model.QuestionsCol, error)
	SearchByName(ctx context.Context, value string) ([]*model.QuestionsColRef, error)
	Update(ctx context.Context, col *model.QuestionsCol) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type questionsColRepo struct {
	collection *mongo.Collection
}

// NewQuestionsColRepo creates a new question-collection repository
func NewQuestionsColRepo(db *mongo.Database) QuestionsColRepo {
	return &questionsColRepo{
		collection: db.Collection("questionsCols"),
	}
}

func (r *questionsColRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *questionsColRepo) Create(ctx context.Context, col *model.QuestionsCol) (string, error) {
	result, err := r.collection.InsertOne(ctx, col)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	col.ID = oid
	return oid.Hex(), nil
}

func (r *questionsColRepo) GetByID(ctx context.Context, id string) (*model.QuestionsCol, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var col model.QuestionsCol
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&col)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

func (r *questionsColRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.QuestionsCol, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cols []*model.QuestionsCol
	if err := cursor.All(ctx, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

func (r *questionsColRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.QuestionsCol, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cols []*model.QuestionsCol
	if err := cursor.All(ctx, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

func (r *questionsColRepo) FindByName(ctx context.Context, name string) (*model.QuestionsCol, error) {
	var col model.QuestionsCol
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&col)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

// SearchByName returns id and name of collections whose name contains value,
// case-insensitive.
func (r *questionsColRepo) SearchByName(ctx context.Context, value string) ([]*model.QuestionsColRef, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
	opts := options.Find().SetProjection(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"name": re}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var refs []*model.QuestionsColRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *questionsColRepo) Update(ctx context.Context, col *model.QuestionsCol) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": col.ID}, col)
	return err
}

func (r *questionsColRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
