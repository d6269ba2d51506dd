package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"questionnaire-api/internal/config"
	"questionnaire-api/internal/model"
	"questionnaire-api/internal/repository"
)

// Seeds an admin account, two question collections and a template referencing
// them, for local development.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	userRepo := repository.NewUserRepo(db)
	colRepo := repository.NewQuestionsColRepo(db)
	templateRepo := repository.NewTemplateRepo(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		colRepo.EnsureIndexes,
		templateRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Name:     "מנהל",
		Email:    "admin@example.com",
		Password: string(hash),
		Phone:    "0501234567",
		IsAdmin:  true,
	}
	if _, err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	serviceCol := &model.QuestionsCol{
		Name:        "שאלות שירות",
		Description: "שאלות כלליות על איכות השירות",
		User:        admin.ID,
		Questions: []model.Question{
			{Q: "איך היית מדרג את השירות?", Choice: []string{"מצוין", "טוב", "סביר", "גרוע"}, QType: model.QuestionTypeSingle, Required: true},
			{Q: "מה אפשר לשפר?", Choice: []string{}, QType: model.QuestionTypeText, Required: false},
		},
	}
	satisfactionCol := &model.QuestionsCol{
		Name:        "שאלות שביעות רצון",
		Description: "מדדי שביעות רצון",
		User:        admin.ID,
		Questions: []model.Question{
			{Q: "עד כמה אתה מרוצה באופן כללי?", Choice: []string{"1", "2", "3", "4", "5"}, QType: model.QuestionTypeNumber, Required: true},
		},
	}
	for _, col := range []*model.QuestionsCol{serviceCol, satisfactionCol} {
		if _, err := colRepo.Create(ctx, col); err != nil {
			log.Fatalf("Failed to create question collection: %v", err)
		}
	}

	template := &model.Template{
		Name: "סקר שביעות רצון",
		Categories: []model.Category{
			{
				ID:           primitive.NewObjectID(),
				Name:         "שירות",
				QuestionRefs: []primitive.ObjectID{serviceCol.ID},
				SubCategories: []model.SubCategory{
					{
						ID:           primitive.NewObjectID(),
						Name:         "שביעות רצון",
						QuestionRefs: []primitive.ObjectID{satisfactionCol.ID},
					},
				},
			},
		},
	}
	id, err := templateRepo.Create(ctx, template)
	if err != nil {
		log.Fatalf("Failed to create template: %v", err)
	}

	fmt.Println("Seeded:")
	fmt.Printf("  admin user:  %s (password Admin123!)\n", admin.Email)
	fmt.Printf("  collections: %s, %s\n", serviceCol.ID.Hex(), satisfactionCol.ID.Hex())
	fmt.Printf("  template:    %s\n", id)
}
