package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string
	AutoMigrate     bool

	ObjectStoreType  string
	LocalStoreDir    string
	AWSRegion        string
	S3Bucket         string
	S3Prefix         string
	S3Endpoint       string
	S3ForcePathStyle bool
	SSEKMSKeyID      string
	GCSBucket        string
	GCSPrefix        string
	GCSEndpoint      string

	DocumentURLMode   string
	DocumentURLExpiry time.Duration
	PublicBaseURL     string

	QueueType         string
	SQSQueueURL       string
	SQSEndpoint       string
	WorkerConcurrency int
	WorkerQueueSize   int
	InlineContentMax  int

	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	VertexProject   string
	VertexLocation  string
	AnalysisTimeout time.Duration
	ShutdownTimeout time.Duration

	RateLimitEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	if loaded := loadEnvFiles(".env", "cmd/.env"); len(loaded) > 0 {
		log.Printf("config: loaded env files %v", loaded)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	sqsURL := strings.TrimSpace(os.Getenv("SQS_QUEUE_URL"))
	defaultQueue := "local"
	if sqsURL != "" {
		defaultQueue = "sqs"
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Env:             env,
		DatabaseURL:     dbURL,
		AutoMigrate:     getBool("AUTO_MIGRATE", env != "production"),

		ObjectStoreType:  normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_BUCKET", "wealthmgr-documents"),
		S3Prefix:         getEnv("S3_PREFIX", ""),
		S3Endpoint:       getEnv("S3_ENDPOINT_URL", ""),
		S3ForcePathStyle: getBool("S3_FORCE_PATH_STYLE", os.Getenv("S3_ENDPOINT_URL") != ""),
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", ""),
		GCSBucket:        getEnv("GCS_BUCKET", ""),
		GCSPrefix:        getEnv("GCS_PREFIX", ""),
		GCSEndpoint:      getEnv("GCS_ENDPOINT", ""),

		DocumentURLMode:   normalizeURLMode(getEnv("DOCUMENT_URL_MODE", "signed")),
		DocumentURLExpiry: getDuration("DOCUMENT_URL_EXPIRY", time.Hour),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),

		QueueType:         normalizeQueueType(getEnv("QUEUE", defaultQueue)),
		SQSQueueURL:       sqsURL,
		SQSEndpoint:       getEnv("SQS_ENDPOINT_URL", ""),
		WorkerConcurrency: getInt("WORKER_CONCURRENCY", 4),
		WorkerQueueSize:   getInt("WORKER_QUEUE_SIZE", 100),
		InlineContentMax:  getInt("QUEUE_INLINE_CONTENT_MAX", 160<<10),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:        getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		VertexProject:   getEnv("VERTEX_PROJECT", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		VertexLocation:  getEnv("VERTEX_LOCATION", "us-central1"),
		AnalysisTimeout: getDuration("ANALYSIS_TIMEOUT", 0),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		RateLimitEnabled: getBool("RATE_LIMIT_ENABLED", true),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config %s invalid duration: %v", key, err)
		return def
	}
	return val
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

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "gcs":
		return "gcs"
	default:
		return "local"
	}
}

func normalizeQueueType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqs":
		return "sqs"
	case "none", "off":
		return "none"
	default:
		return "local"
	}
}

func normalizeURLMode(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "proxy") {
		return "proxy"
	}
	return "signed"
}
