package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questionnaire-api/internal/model"
)

// TemplateRepo handles MongoDB operations for questionnaire templates
type TemplateRepo interface {
	Create(ctx context.Context, t *model.Template) (string, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	GetAll(ctx context.Context) ([]*model.Template, error)
	FindByName(ctx context.Context, name string) (*model.Template, error)
	Update(ctx context.Context, t *model.Template) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, value string, page, pageSize int) ([]*model.Template, int64, error)
	EnsureIndexes(ctx context.Context) error
}

type templateRepo struct {
	collection *mongo.Collection
}

// NewTemplateRepo creates a new template repository
func NewTemplateRepo(db *mongo.Database) TemplateRepo {
	return &templateRepo{
		collection: db.Collection("templates"),
	}
}

func (r *templateRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *templateRepo) Create(ctx context.Context, t *model.Template) (string, error) {
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt

	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	t.ID = oid
	return oid.Hex(), nil
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*model.Template, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// malformed ids behave like missing documents
		return nil, nil
	}

	var t model.Template
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepo) GetAll(ctx context.Context) ([]*model.Template, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*model.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) FindByName(ctx context.Context, name string) (*model.Template, error) {
	var t model.Template
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepo) Update(ctx context.Context, t *model.Template) error {
	t.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	return err
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// Search matches the template name or any nested category, sub-category or
// topic name by case-insensitive substring, paginated.
func (r *templateRepo) Search(ctx context.Context, value string, page, pageSize int) ([]*model.Template, int64, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"categories.name": re},
		bson.M{"categories.subCategories.name": re},
		bson.M{"categories.subCategories.topics.name": re},
	}}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var templates []*model.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}
