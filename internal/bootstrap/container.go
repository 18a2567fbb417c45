package bootstrap

import (
	"log"
	"time"

	"ai-bookrec-be/internal/config"
	"ai-bookrec-be/internal/controller"
	"ai-bookrec-be/internal/pkg/logger"
	"ai-bookrec-be/internal/repository/catalog"
	"ai-bookrec-be/internal/repository/memory"
	"ai-bookrec-be/internal/service"
	"ai-bookrec-be/pkg/embedding"
	"ai-bookrec-be/pkg/extractor"
	"ai-bookrec-be/pkg/llm/factory"
	"ai-bookrec-be/pkg/rag"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController           controller.IChatController
	RecommendationController controller.IRecommendationController
	UserController           controller.IUserController

	// Background services (exposed for main.go to run)
	ClassifierService service.IClassifierService
}

func NewContainer(catalogRepo *catalog.Repository, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.LLMBaseURL, cfg.Keys.LLM, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Keys.LLM,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	retrievalClient := rag.NewClient(cfg.Ai.RagBaseURL, time.Duration(cfg.Ai.RagTimeoutSeconds)*time.Second)
	keywordExtractor := extractor.NewLLMExtractor(llmProvider)

	// 4. In-memory storage
	sessionRepo := memory.NewSessionRepository()
	userRepo := memory.NewUserRepository()

	// 5. Services
	chatService := service.NewChatService(
		userRepo,
		sessionRepo,
		catalogRepo,
		keywordExtractor,
		retrievalClient,
		pubSub,
		cfg.Engine,
		sysLogger,
	)
	recommendationService := service.NewRecommendationService(
		userRepo,
		sessionRepo,
		catalogRepo,
		embeddingProvider,
		sysLogger,
	)
	userService := service.NewUserService(userRepo)

	classifierLogger := logger.NewIsolatedLogger("logs/classifier.log")
	classifierService := service.NewClassifierService(
		pubSub,
		cfg.Engine.ClassifyTopicName,
		sessionRepo,
		llmProvider,
		classifierLogger,
	)

	// 6. Controllers
	return &Container{
		ChatController:           controller.NewChatController(chatService),
		RecommendationController: controller.NewRecommendationController(recommendationService),
		UserController:           controller.NewUserController(userService),
		ClassifierService:        classifierService,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.LLMBaseURL
}
