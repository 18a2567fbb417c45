package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Keys   APIKeys
	Ai     AIConfig
	Engine EngineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	LLM string // OpenAI/DeepSeek compatible API key
}

type AIConfig struct {
	LLMProvider       string // "openai", "deepseek", "ollama"
	LLMModel          string // e.g. "gpt-3.5-turbo", "deepseek-chat", "llama3"
	LLMBaseURL        string
	OllamaBaseURL     string
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	RagBaseURL        string
	RagTimeoutSeconds int
}

type EngineConfig struct {
	// Minimum distinct keywords before a recommendation attempt is made.
	// Production runs with 3; an earlier variant used 2.
	ReadyThreshold int
	// When true, messages without book-domain trigger terms are declined
	// before touching the session (the simplest engine variant).
	DomainFilterEnabled bool
	CatalogPath         string
	ClassifyTopicName   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Keys: APIKeys{
			LLM: getEnv("LLM_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			RagBaseURL:        getEnv("RAG_BASE_URL", "http://localhost:9621"),
			RagTimeoutSeconds: getEnvAsInt("RAG_TIMEOUT_SECONDS", 60),
		},
		Engine: EngineConfig{
			ReadyThreshold:      getEnvAsInt("ENGINE_READY_THRESHOLD", 3),
			DomainFilterEnabled: getEnvAsBool("ENGINE_DOMAIN_FILTER", false),
			CatalogPath:         getEnv("CATALOG_PATH", "data/books_keywords.json"),
			ClassifyTopicName:   getEnv("CLASSIFY_USER_TOPIC_NAME", "CLASSIFY_USER_TYPE"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
