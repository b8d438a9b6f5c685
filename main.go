package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commit/config"
	"commit/cron"
	"commit/database"
	bookingRepo "commit/database/repository/booking"
	chatRepo "commit/database/repository/chat"
	providerRepo "commit/database/repository/provider"
	userRepoPkg "commit/database/repository/user"
	"commit/handlers"
	"commit/routes"
	"commit/services/chat"
	ai "commit/services/intelligence"
	"commit/services/user"
	"commit/utils"

	"github.com/go-redis/redis/v8"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("main: failed to load config: %v", err))
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	mongoClient, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.DBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisAuthDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable; logout revocation degraded", zap.Error(err))
	}

	// repositories.
	users := userRepoPkg.NewMongoUserRepo(db.Collection(database.UsersCollection), logger)
	providers := providerRepo.NewMongoProviderRepo(db.Collection(database.ProvidersCollection), logger)
	bookings := bookingRepo.NewMongoBookingRepo(db.Collection(database.BookingsCollection), logger)
	chats := chatRepo.NewMongoChatRepo(
		db.Collection(database.ChatSessionsCollection),
		db.Collection(database.ChatMessagesCollection),
		logger,
	)

	if cfg.SeedData {
		if err := database.SeedProviders(ctx, providers, logger); err != nil {
			logger.Error("Seeding providers failed", zap.Error(err))
		}
	}

	// services.
	tokens, err := utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	userService := &user.DefaultUserService{
		Users:     users,
		Providers: providers,
		Tokens:    tokens,
		Revoker:   utils.NewRedisTokenRevoker(redisClient),
		Logger:    logger,
	}

	classifierLLM, replyLLM, closeLLM, err := newCompleters(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer closeLLM()

	assistant := ai.NewAssistant(
		ai.NewClassifier(classifierLLM),
		replyLLM,
		ai.NewDocumentContextStore(chats),
		providers,
		bookings,
		logger,
	)
	chatService := &chat.DefaultChatService{
		Repo:      chats,
		Assistant: assistant,
		Logger:    logger,
	}

	worker, err := cron.NewWorker(cfg, chatService, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	worker.Start()
	defer worker.Shutdown()

	// handlers.
	health := utils.NewHealthChecker(utils.MongoPing(mongoClient), utils.RedisPing(redisClient), logger)
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(userService),
		handlers.NewProviderHandler(providers),
		handlers.NewBookingHandler(bookings),
		handlers.NewChatHandler(chatService),
		handlers.NewStatusHandler(health),
	)
	router := routes.NewRouter(cfg, handlerBundle, logger)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

// newCompleters picks the text generation backend. OpenAI uses a cheaper
// model for classification; Gemini serves both from one client.
func newCompleters(ctx context.Context, cfg *config.Config) (classifier, replies ai.Completer, closeFn func(), err error) {
	switch cfg.LLMProvider {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, nil, errors.New("OPENAI_API_KEY is required")
		}
		client := openai.NewClient(cfg.OpenAIAPIKey)
		return ai.NewOpenAICompleter(client, cfg.OpenAIClassifierModel),
			ai.NewOpenAICompleter(client, cfg.OpenAIModel),
			func() {}, nil
	case "gemini":
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, nil, err
		}
		return client, client, func() { _ = client.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}
