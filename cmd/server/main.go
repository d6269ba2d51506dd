package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questionnaire-api/internal/cache"
	"questionnaire-api/internal/config"
	"questionnaire-api/internal/repository"
	"questionnaire-api/internal/service"
	"questionnaire-api/internal/transport/rest"
	"questionnaire-api/internal/validation"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	templateRepo := repository.NewTemplateRepo(db)
	colRepo := repository.NewQuestionsColRepo(db)
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	userRepo := repository.NewUserRepo(db)

	for _, ensure := range []func(context.Context) error{
		templateRepo.EnsureIndexes,
		colRepo.EnsureIndexes,
		questionnaireRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal("Failed to ensure indexes:", err)
		}
	}

	// Initialize cache
	templateCache := cache.NewTemplateCache(rdb)

	// Initialize services
	validator := validation.NewTemplateValidator()
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	templateSvc := service.NewTemplateService(templateRepo, colRepo, validator, templateCache)
	colSvc := service.NewQuestionsColService(colRepo, templateCache)
	questionnaireSvc := service.NewQuestionnaireService(questionnaireRepo, templateRepo, colRepo)

	container := &rest.Container{
		AuthService:          authSvc,
		TemplateService:      templateSvc,
		QuestionsColService:  colSvc,
		QuestionnaireService: questionnaireSvc,
		CookieSecure:         cfg.CookieSecure,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/auth, /api/auth/login, /api/auth/logout")
		log.Println("  POST/GET /api/template, GET /api/template/search")
		log.Println("  GET/PUT/DELETE /api/template/{id}")
		log.Println("  POST/GET /api/questions (+/search, /user, /{id})")
		log.Println("  POST /api/questionnaire, GET /api/questionnaire/user")
		log.Println("  PUT /api/questionnaire/{id}/answer[/auth]")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
