package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Keys     APIKeys
	Ai       AIConfig
	Metering MeteringConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
}

type APIKeys struct {
	OpenAI       string
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider    string // "openai" or "ollama"
	LLMModel       string // e.g. "gpt-4o-mini", "llama3"
	SynthesisModel string // heavier model for Analysis and Plan
	OllamaBaseURL  string
	VisionModel    string
	SpeechModel    string
}

type MeteringConfig struct {
	CheckTokenURL  string
	ReportTokenURL string
	FailOpen       bool
	CostPerSection int
}

type PipelineConfig struct {
	MaxAudioBytes    int64
	MaxImageEdge     int
	JpegQuality      int
	CacheCapacity    int
	MaxUploadBytes   int
	DefaultLanguage  string
	DefaultSpecialty string
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			SynthesisModel: getEnv("LLM_SYNTHESIS_MODEL", "gpt-4o"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			VisionModel:    getEnv("VISION_MODEL", "gemini-2.5-flash"),
			SpeechModel:    getEnv("SPEECH_MODEL", "whisper-1"),
		},
		Metering: MeteringConfig{
			CheckTokenURL:  getEnv("CHECK_TOKEN_API_URL", ""),
			ReportTokenURL: getEnv("TOKEN_API_URL", ""),
			FailOpen:       getEnvAsBool("TOKEN_FAIL_OPEN", true),
			CostPerSection: getEnvAsInt("TOKEN_COST_PER_SECTION", 1),
		},
		Pipeline: PipelineConfig{
			MaxAudioBytes:    int64(getEnvAsInt("MAX_AUDIO_MB", 25)) * 1024 * 1024,
			MaxImageEdge:     getEnvAsInt("MAX_IMAGE_EDGE", 2048),
			JpegQuality:      getEnvAsInt("JPEG_QUALITY", 80),
			CacheCapacity:    getEnvAsInt("EXTRACTION_CACHE_CAPACITY", 128),
			MaxUploadBytes:   getEnvAsInt("MAX_UPLOAD_MB", 50) * 1024 * 1024,
			DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "English"),
			DefaultSpecialty: getEnv("DEFAULT_SPECIALTY", "Internal Medicine"),
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
