package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreJSON     = "json"

	QueueSQL   = "sql"
	QueueRedis = "redis"
	QueueAMQP  = "amqp"

	BlobLocal = "local"
	BlobS3    = "s3"

	TranslateOpenAI = "openai"
	TranslateOllama = "ollama"
)

type Config struct {
	Port          int
	DataDir       string
	PublicBaseURL string
	BehindProxy   bool

	DatabaseURL  string
	QueueBackend string
	RedisURL     string
	AMQPURL      string
	QueueName    string

	BlobBackend string
	S3          S3Config

	OpenAIAPIKey      string
	OpenAIBaseURL     string
	TranscribeModel   string
	TranslateProvider string
	TranslateModel    string
	OllamaURL         string
	OllamaModel       string
	AzureTTSKey       string
	AzureTTSRegion    string
	YtDlpPath         string
	FFmpegPath        string
	FFprobePath       string

	Workers          int
	RateLimitMax     int
	RateLimitWindow  time.Duration
	MaxAttempts      int
	BackoffBase      time.Duration
	BackoffMax       time.Duration
	BackoffFactor    float64
	StageTimeout     time.Duration
	PruneInterval    time.Duration
	QueueLease       time.Duration
	KeepCompleted    int
	KeepCompletedAge time.Duration
	KeepFailed       int
	SubmitRateMax    int

	LogLevel  string
	LogFormat string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// fileConfig mirrors the optional TOML file. Environment variables win.
type fileConfig struct {
	Port          int    `toml:"port"`
	DataDir       string `toml:"data_dir"`
	PublicBaseURL string `toml:"public_base_url"`
	BehindProxy   bool   `toml:"behind_proxy"`
	DatabaseURL   string `toml:"database_url"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`

	Queue struct {
		Backend string `toml:"backend"`
		Name    string `toml:"name"`
		Redis   string `toml:"redis_url"`
		AMQP    string `toml:"amqp_url"`
	} `toml:"queue"`

	Blob struct {
		Backend   string `toml:"backend"`
		Bucket    string `toml:"bucket"`
		Region    string `toml:"region"`
		Endpoint  string `toml:"endpoint"`
		PathStyle bool   `toml:"path_style"`
	} `toml:"blob"`

	Providers struct {
		OpenAIBaseURL     string `toml:"openai_base_url"`
		TranscribeModel   string `toml:"transcribe_model"`
		TranslateProvider string `toml:"translate_provider"`
		TranslateModel    string `toml:"translate_model"`
		OllamaURL         string `toml:"ollama_url"`
		OllamaModel       string `toml:"ollama_model"`
		AzureTTSRegion    string `toml:"azure_tts_region"`
		YtDlpPath         string `toml:"ytdlp_path"`
	} `toml:"providers"`

	Dispatcher struct {
		Workers         int     `toml:"workers"`
		RateLimitMax    int     `toml:"rate_limit_max"`
		RateLimitWindow string  `toml:"rate_limit_window"`
		MaxAttempts     int     `toml:"max_attempts"`
		BackoffBase     string  `toml:"backoff_base"`
		BackoffFactor   float64 `toml:"backoff_multiplier"`
		StageTimeout    string  `toml:"stage_timeout"`
	} `toml:"dispatcher"`
}

// Load reads .env, then the TOML file at path (or VIDLINGO_CONFIG), then the
// environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("VIDLINGO_CONFIG")
	}
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	seedDefaults(&fc)

	cfg := &Config{
		DataDir:           getEnv("DATA_DIR", fc.DataDir),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", fc.PublicBaseURL), "/"),
		DatabaseURL:       getEnv("DATABASE_URL", fc.DatabaseURL),
		QueueBackend:      strings.ToLower(getEnv("QUEUE_BACKEND", fc.Queue.Backend)),
		QueueName:         getEnv("QUEUE_NAME", fc.Queue.Name),
		RedisURL:          getEnv("REDIS_URL", fc.Queue.Redis),
		AMQPURL:           getEnv("AMQP_URL", fc.Queue.AMQP),
		BlobBackend:       strings.ToLower(getEnv("BLOB_BACKEND", fc.Blob.Backend)),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", fc.Providers.OpenAIBaseURL),
		TranscribeModel:   getEnv("TRANSCRIBE_MODEL", fc.Providers.TranscribeModel),
		TranslateProvider: strings.ToLower(getEnv("TRANSLATE_PROVIDER", fc.Providers.TranslateProvider)),
		TranslateModel:    getEnv("TRANSLATE_MODEL", fc.Providers.TranslateModel),
		OllamaURL:         getEnv("OLLAMA_URL", fc.Providers.OllamaURL),
		OllamaModel:       getEnv("OLLAMA_MODEL", fc.Providers.OllamaModel),
		AzureTTSKey:       os.Getenv("AZURE_TTS_KEY"),
		AzureTTSRegion:    getEnv("AZURE_TTS_REGION", fc.Providers.AzureTTSRegion),
		YtDlpPath:         getEnv("YTDLP_PATH", fc.Providers.YtDlpPath),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:       getEnv("FFPROBE_PATH", "ffprobe"),
		LogLevel:          getEnv("LOG_LEVEL", fc.LogLevel),
		LogFormat:         getEnv("LOG_FORMAT", fc.LogFormat),
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", fc.Blob.Bucket),
			Region:    getEnv("S3_REGION", fc.Blob.Region),
			Endpoint:  getEnv("S3_ENDPOINT", fc.Blob.Endpoint),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", fc.Port); err != nil {
		return nil, err
	}
	if cfg.BehindProxy, err = getEnvBool("BEHIND_PROXY", fc.BehindProxy); err != nil {
		return nil, err
	}
	if cfg.S3.PathStyle, err = getEnvBool("S3_PATH_STYLE", fc.Blob.PathStyle); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("WORKERS", fc.Dispatcher.Workers); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = getEnvInt("RATE_LIMIT_MAX", fc.Dispatcher.RateLimitMax); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", fc.Dispatcher.RateLimitWindow); err != nil {
		return nil, err
	}
	if cfg.MaxAttempts, err = getEnvInt("MAX_ATTEMPTS", fc.Dispatcher.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.BackoffBase, err = getEnvDuration("BACKOFF_BASE", fc.Dispatcher.BackoffBase); err != nil {
		return nil, err
	}
	if cfg.BackoffMax, err = getEnvDuration("BACKOFF_MAX", "5m"); err != nil {
		return nil, err
	}
	if cfg.BackoffFactor, err = getEnvFloat("BACKOFF_MULTIPLIER", fc.Dispatcher.BackoffFactor); err != nil {
		return nil, err
	}
	if cfg.StageTimeout, err = getEnvDuration("STAGE_TIMEOUT", fc.Dispatcher.StageTimeout); err != nil {
		return nil, err
	}
	if cfg.PruneInterval, err = getEnvDuration("PRUNE_INTERVAL", "10m"); err != nil {
		return nil, err
	}
	if cfg.QueueLease, err = getEnvDuration("QUEUE_LEASE", "2m"); err != nil {
		return nil, err
	}
	if cfg.KeepCompleted, err = getEnvInt("KEEP_COMPLETED", 100); err != nil {
		return nil, err
	}
	if cfg.KeepCompletedAge, err = getEnvDuration("KEEP_COMPLETED_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.KeepFailed, err = getEnvInt("KEEP_FAILED", 50); err != nil {
		return nil, err
	}
	if cfg.SubmitRateMax, err = getEnvInt("SUBMIT_RATE_MAX", 10); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seedDefaults(fc *fileConfig) {
	setString(&fc.DataDir, "./data")
	setString(&fc.PublicBaseURL, "http://localhost:7890")
	setString(&fc.LogLevel, "info")
	setString(&fc.LogFormat, "auto")
	setString(&fc.Queue.Backend, QueueSQL)
	setString(&fc.Queue.Name, "vidlingo-jobs")
	setString(&fc.Blob.Backend, BlobLocal)
	setString(&fc.Blob.Region, "us-east-1")
	setString(&fc.Providers.OpenAIBaseURL, "https://api.openai.com/v1")
	setString(&fc.Providers.TranscribeModel, "whisper-1")
	setString(&fc.Providers.TranslateProvider, TranslateOpenAI)
	setString(&fc.Providers.TranslateModel, "gpt-4o-mini")
	setString(&fc.Providers.OllamaURL, "http://localhost:11434")
	setString(&fc.Providers.OllamaModel, "llama3.1")
	setString(&fc.Providers.AzureTTSRegion, "eastus")
	setString(&fc.Providers.YtDlpPath, "yt-dlp")
	setString(&fc.Dispatcher.RateLimitWindow, "60s")
	setString(&fc.Dispatcher.BackoffBase, "2s")
	setString(&fc.Dispatcher.StageTimeout, "30m")
	if fc.Port == 0 {
		fc.Port = 7890
	}
	if fc.Dispatcher.Workers == 0 {
		fc.Dispatcher.Workers = 2
	}
	if fc.Dispatcher.RateLimitMax == 0 {
		fc.Dispatcher.RateLimitMax = 5
	}
	if fc.Dispatcher.MaxAttempts == 0 {
		fc.Dispatcher.MaxAttempts = 3
	}
	if fc.Dispatcher.BackoffFactor == 0 {
		fc.Dispatcher.BackoffFactor = 2
	}
}

// Validate reports unknown backends and missing connection settings.
func (c *Config) Validate() error {
	var problems []string

	switch c.StoreDriver() {
	case StoreSQLite, StorePostgres, StoreJSON:
	default:
		problems = append(problems, fmt.Sprintf("unsupported DATABASE_URL scheme in %q", c.DatabaseURL))
	}

	switch c.QueueBackend {
	case QueueSQL:
		if c.StoreDriver() == StoreJSON {
			problems = append(problems, "QUEUE_BACKEND=sql requires a sqlite or postgres DATABASE_URL")
		}
	case QueueRedis:
		if c.RedisURL == "" {
			problems = append(problems, "REDIS_URL is required for QUEUE_BACKEND=redis")
		}
	case QueueAMQP:
		if c.AMQPURL == "" {
			problems = append(problems, "AMQP_URL is required for QUEUE_BACKEND=amqp")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown QUEUE_BACKEND %q", c.QueueBackend))
	}

	switch c.BlobBackend {
	case BlobLocal:
	case BlobS3:
		if c.S3.Bucket == "" {
			problems = append(problems, "S3_BUCKET is required for BLOB_BACKEND=s3")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown BLOB_BACKEND %q", c.BlobBackend))
	}

	switch c.TranslateProvider {
	case TranslateOpenAI, TranslateOllama:
	default:
		problems = append(problems, fmt.Sprintf("unknown TRANSLATE_PROVIDER %q", c.TranslateProvider))
	}

	if c.Workers < 1 {
		problems = append(problems, "WORKERS must be at least 1")
	}
	if c.MaxAttempts < 1 {
		problems = append(problems, "MAX_ATTEMPTS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// StoreDriver derives the job store implementation from DatabaseURL.
func (c *Config) StoreDriver() string {
	switch {
	case c.DatabaseURL == "":
		return StoreSQLite
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return StorePostgres
	case strings.HasPrefix(c.DatabaseURL, "json://"):
		return StoreJSON
	case strings.HasPrefix(c.DatabaseURL, "sqlite://"), strings.HasPrefix(c.DatabaseURL, "file:"):
		return StoreSQLite
	default:
		return ""
	}
}

// SQLitePath returns the database file for the sqlite driver.
func (c *Config) SQLitePath() string {
	if path, ok := strings.CutPrefix(c.DatabaseURL, "sqlite://"); ok && path != "" {
		return path
	}
	if strings.HasPrefix(c.DatabaseURL, "file:") {
		return c.DatabaseURL
	}
	return c.DataDir + "/vidlingo.db"
}

// JSONPath returns the directory used by the json store.
func (c *Config) JSONPath() string {
	return strings.TrimPrefix(c.DatabaseURL, "json://")
}

func (c *Config) RetryPolicy() domain.RetryPolicy {
	return domain.RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		BaseDelay:   c.BackoffBase,
		Multiplier:  c.BackoffFactor,
	}
}

func (c *Config) RetentionPolicy() domain.RetentionPolicy {
	return domain.RetentionPolicy{
		KeepCompleted:    c.KeepCompleted,
		KeepCompletedAge: c.KeepCompletedAge,
		KeepFailed:       c.KeepFailed,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func setString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
