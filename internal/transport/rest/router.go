package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"questionnaire-api/internal/service"
	"questionnaire-api/internal/transport/rest/handler"
	"questionnaire-api/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService          *service.AuthService
	TemplateService      *service.TemplateService
	QuestionsColService  *service.QuestionsColService
	QuestionnaireService *service.QuestionnaireService
	CookieSecure         bool
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService, c.CookieSecure)
	templateHandler := handler.NewTemplateHandler(c.TemplateService)
	questionsHandler := handler.NewQuestionsHandler(c.QuestionsColService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.QuestionnaireService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	api.HandleFunc("/questionnaire", questionnaireHandler.Create).Methods("POST", "OPTIONS")

	// Authenticated routes; registered before the public /questionnaire/{id}
	// routes so /questionnaire/user is not captured as an id
	userRoutes := api.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireAuth)
	userRoutes.HandleFunc("/questionnaire/user", questionnaireHandler.ByUser).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/questionnaire/{id}/answer/auth", questionnaireHandler.AnswerAuth).Methods("PUT", "OPTIONS")

	// Admin authoring routes
	adminRoutes := api.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAuth, authMW.RequireAdmin)
	adminRoutes.HandleFunc("/template/search", templateHandler.Search).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/template", templateHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/template", templateHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/template/{id}", templateHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/template/{id}", templateHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/template/{id}", templateHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/questions/search", questionsHandler.Search).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/user", questionsHandler.ByUser).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions", questionsHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionsHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionsHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionsHandler.Delete).Methods("DELETE", "OPTIONS")

	// Public questionnaire routes with an id segment
	api.HandleFunc("/questionnaire/{id}", questionnaireHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/questionnaire/{id}/answer", questionnaireHandler.Answer).Methods("PUT", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
		if allowedOrigin == "" {
			allowedOrigin = "http://localhost:3000"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
