package rest

import (
	"net/http"
	"os"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/service"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/transport/rest/handler"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/transport/rest/middleware"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/transport/ws"
	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	StudyService      *service.StudyService
	RespondentService *service.RespondentService
	SamplerService    *service.SamplerService
	MetricsService    *service.MetricsService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	studyHandler := handler.NewStudyHandler(c.StudyService)
	respondentHandler := handler.NewRespondentHandler(c.RespondentService)
	simulationHandler := handler.NewSimulationHandler(c.SamplerService)
	analysisHandler := handler.NewAnalysisHandler(c.MetricsService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.StudyService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/studies/{studyId}/progress", wsHandler.ProgressWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/studies", studyHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/studies", studyHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}", studyHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}", studyHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}", studyHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/cost", studyHandler.Cost).Methods("GET", "OPTIONS")

	hostRoutes.HandleFunc("/studies/{studyId}/respondents", respondentHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/respondents", respondentHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/respondents/import", respondentHandler.Import).Methods("POST", "OPTIONS")

	hostRoutes.HandleFunc("/studies/{studyId}/questions", studyHandler.AddQuestion).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/questions", studyHandler.ListQuestions).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/questions/import", studyHandler.ImportQuestions).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/questions/{questionId}", studyHandler.GetQuestion).Methods("GET", "OPTIONS")

	hostRoutes.HandleFunc("/studies/{studyId}/questions/{questionId}/run", simulationHandler.Run).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/questions/{questionId}/responses", analysisHandler.Responses).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/studies/{studyId}/questions/{questionId}/analysis", analysisHandler.Compute).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/questions/{questionId}/analysis", analysisHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
