package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pt-sim/internal/config"
	"pt-sim/internal/db"
	apihttp "pt-sim/internal/http"
	"pt-sim/internal/llm"
	"pt-sim/internal/repository"
	"pt-sim/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	personaRepo, err := repository.NewFilePersonaRepository(cfg.PersonaDir)
	if err != nil {
		logger.Fatal("load personas", zap.Error(err))
	}
	logger.Info("personas loaded",
		zap.String("dir", cfg.PersonaDir),
		zap.Int("count", personaRepo.Len()),
	)

	// Backend de generacion: hosted solo con flag y credencial presentes.
	var llmClient llm.Client = llm.NewEchoClient()
	model := ""
	if cfg.LLMEnabled && cfg.LLMAPIKey != "" {
		openaiClient := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
		llmClient = openaiClient
		model = openaiClient.Model()
		logger.Info("llm backend enabled", zap.String("model", model))
	} else {
		logger.Info("using echo backend (LLM disabled or no API key)")
	}

	var transcriptRepo repository.TranscriptRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err == nil {
			err = db.Ping(ctx, pool)
		}
		if err != nil {
			logger.Warn("db connect failed, transcript log disabled", zap.Error(err))
		} else {
			defer pool.Close()
			transcriptRepo = repository.NewPgTranscriptRepository(pool)
		}
	}

	var limiter service.TurnRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, turn limiter disabled", zap.Error(err))
		} else {
			limiter = service.NewRedisTurnRateLimiter(
				redisClient,
				time.Duration(cfg.TurnRateWindowSeconds)*time.Second,
				cfg.TurnRateMax,
			)
		}
		cancel()
	}

	chatSvc := service.NewChatService(logger, personaRepo, llmClient)
	patientHandler := apihttp.NewPatientHandler(logger, personaRepo)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc, transcriptRepo, limiter, model)
	scoreHandler := apihttp.NewScoreHandler(logger, service.NewDefaultScorer())
	router := apihttp.NewRouter(logger, patientHandler, chatHandler, scoreHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("backend", chatSvc.BackendName()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
