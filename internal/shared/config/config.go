package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port              string
	CORSAllowOrigin   []string
	ObjectStoreType   string
	LocalStoreDir     string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	LLMProvider       string
	LLMModel          string
	LLMBaseURL        string
	GeminiAPIKey      string
	OpenAIAPIKey      string
	GenerationTimeout int
	Renderer          string
	RateLimitRPS      float64
	RateLimitBurst    int
	DatabaseURL       string
	Env               string
}

// Load reads configuration from environment variables with sensible defaults.
// An optional YAML file named by CONFIG_FILE supplies values the environment leaves unset.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Printf("config file ignored: %v", err)
	}

	env := normalizeEnv(pick("ENV", file.Env, "dev"))
	dbURL := pick("DATABASE_URL", file.DatabaseURL, "")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:              pick("PORT", file.Port, "5000"),
		CORSAllowOrigin:   splitAndTrim(pick("CORS_ALLOW_ORIGINS", strings.Join(file.CORSAllowOrigins, ","), "chrome-extension://*,http://localhost:*")),
		ObjectStoreType:   normalizeStoreType(pick("OBJECT_STORE", file.ObjectStore.Type, "local")),
		LocalStoreDir:     pick("LOCAL_STORE_DIR", file.ObjectStore.LocalDir, "./uploads"),
		AWSRegion:         pick("AWS_REGION", file.ObjectStore.Region, ""),
		S3Bucket:          pick("S3_BUCKET", file.ObjectStore.Bucket, ""),
		S3Prefix:          pick("S3_PREFIX", file.ObjectStore.Prefix, ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		LLMProvider:       normalizeProvider(pick("LLM_PROVIDER", file.LLM.Provider, "gemini")),
		LLMModel:          pick("LLM_MODEL", file.LLM.Model, ""),
		LLMBaseURL:        pick("LLM_BASE_URL", file.LLM.BaseURL, ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GenerationTimeout: atoiOr(pick("GENERATION_TIMEOUT_SECONDS", itoaOrEmpty(file.LLM.TimeoutSeconds), ""), 120),
		Renderer:          normalizeRenderer(pick("RENDERER", file.Renderer, "pdf")),
		RateLimitRPS:      atofOr(pick("RATE_LIMIT_RPS", "", ""), 0.5),
		RateLimitBurst:    atoiOr(pick("RATE_LIMIT_BURST", "", ""), 5),
		DatabaseURL:       dbURL,
		Env:               env,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// pick prefers the environment, then the config file value, then the default.
func pick(key, fileVal, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if strings.TrimSpace(fileVal) != "" {
		return fileVal
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func atoiOr(raw string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
		return v
	}
	return def
}

func atofOr(raw string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v > 0 {
		return v
	}
	return def
}

func itoaOrEmpty(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "gemini", "openai", "ollama":
		return p
	default:
		return "none"
	}
}

func normalizeRenderer(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "chromedp", "chrome", "html":
		return "chromedp"
	default:
		return "pdf"
	}
}
