package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NATSConfig holds the event bus settings. An empty URL disables publishing.
type NATSConfig struct {
	URL     string
	Subject string
}

// StateConfig selects where records, history and session flags are persisted.
// Backend is one of "postgres", "file" or "memory".
type StateConfig struct {
	Backend string
	FileDir string
}

// SimulationConfig selects real or simulated external services and the
// artificial delays the simulated ones use.
type SimulationConfig struct {
	AnchorMode     string // "simulated" or "hashchain"
	ContentBackend string // "simulated", "minio" or "none"
	UploadDelay    time.Duration
	ChainDelay     time.Duration
	IPFSDelay      time.Duration
}

// ResilienceConfig tunes retries and the circuit breaker around external calls.
type ResilienceConfig struct {
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	BreakerEnabled      bool
	BreakerOpenTimeout  time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	Env        string
	LogLevel   string
	Database   DatabaseConfig
	MinIO      MinIOConfig
	NATS       NATSConfig
	State      StateConfig
	Simulation SimulationConfig
	Resilience ResilienceConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "documents.verified"),
		},
		State: StateConfig{
			Backend: getEnv("STATE_BACKEND", "file"),
			FileDir: getEnv("STATE_FILE_DIR", "./data/state"),
		},
		Simulation: SimulationConfig{
			AnchorMode:     getEnv("ANCHOR_MODE", "simulated"),
			ContentBackend: getEnv("CONTENT_BACKEND", "simulated"),
			UploadDelay:    getEnvMillis("SIMULATED_UPLOAD_DELAY_MS", 500),
			ChainDelay:     getEnvMillis("SIMULATED_CHAIN_DELAY_MS", 300),
			IPFSDelay:      getEnvMillis("SIMULATED_IPFS_DELAY_MS", 500),
		},
		Resilience: ResilienceConfig{
			RetryMaxAttempts:    getEnvInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialBackoff: getEnvMillis("RETRY_INITIAL_BACKOFF_MS", 100),
			RetryMaxBackoff:     getEnvMillis("RETRY_MAX_BACKOFF_MS", 400),
			BreakerEnabled:      getEnvBool("BREAKER_ENABLED", true),
			BreakerOpenTimeout:  getEnvMillis("BREAKER_OPEN_TIMEOUT_MS", 30000),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvMillis reads a non-negative millisecond count.
func getEnvMillis(key string, def int) time.Duration {
	ms := getEnvInt(key, def)
	if ms < 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
