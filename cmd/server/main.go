package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	appconfig "github.com/SoheilHooshmand/Back-AI-Opinion/config"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/cache"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/config"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/pricing"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/repository"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/service"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/transport/rest"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/transport/ws"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := appconfig.Load()

	// AI config
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Base URL:  %s", aiConfig.BaseURL)
	log.Printf("  Model:     %s", aiConfig.DefaultModel)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:   configured")
	} else {
		log.Println("  API Key:   NOT SET (runs will fail until it is)")
	}

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

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Repositories
	studyRepo := repository.NewStudyRepo(mongoClient)
	respondentRepo := repository.NewRespondentRepo(mongoClient)
	questionRepo := repository.NewQuestionRepo(mongoClient)
	promptRepo := repository.NewPromptRepo(mongoClient)
	responseRepo := repository.NewResponseRepo(mongoClient)
	costRepo := repository.NewCostRepo(mongoClient)
	runLogRepo := repository.NewRunLogRepo(mongoClient)
	analysisRepo := repository.NewAnalysisRepo(mongoClient)

	// Caches
	analysisCache := cache.NewAnalysisCache(rdb)

	// Services
	authSvc := service.NewAuthService()
	studySvc := service.NewStudyService(studyRepo, questionRepo, costRepo)
	respondentSvc := service.NewRespondentService(studyRepo, respondentRepo)
	generator := service.NewOpenAIClient(aiConfig)
	estimator := pricing.NewEstimator(aiConfig.Prices, nil)
	samplerSvc := service.NewSamplerService(
		studyRepo, respondentRepo, questionRepo,
		promptRepo, responseRepo, costRepo, runLogRepo,
		aiConfig, generator, estimator,
	)
	metricsSvc := service.NewMetricsService(
		studyRepo, respondentRepo, questionRepo,
		responseRepo, analysisRepo, analysisCache,
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	samplerSvc.SetBroadcaster(wsHub)

	// Router
	container := &rest.Container{
		AuthService:       authSvc,
		StudyService:      studySvc,
		RespondentService: respondentSvc,
		SamplerService:    samplerSvc,
		MetricsService:    metricsSvc,
		WSHub:             wsHub,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/studies")
		log.Println("  POST /v1/studies/{id}/respondents/import")
		log.Println("  POST /v1/studies/{id}/questions/{qid}/run")
		log.Println("  POST /v1/studies/{id}/questions/{qid}/analysis")
		log.Println("  WS  /v1/ws/studies/{id}/progress")

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
