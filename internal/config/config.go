package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Practice PracticeConfig `yaml:"practice"`
	Export   ExportConfig   `yaml:"export"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// LLMRateLimit caps requests per minute per client IP on the
	// model-backed endpoints (enrich, flashcards, translate). Zero disables
	// the limiter.
	LLMRateLimit int `yaml:"llm_rate_limit" env:"SERVER_LLM_RATE_LIMIT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LLMConfig holds inference gateway settings. Provider selects the adapter:
// "ollama" (local, default), "openai", or "anthropic".
type LLMConfig struct {
	Provider          string        `yaml:"provider"            env:"LLM_PROVIDER"            env-default:"ollama"`
	Model             string        `yaml:"model"               env:"LLM_MODEL"               env-default:"llama3.1"`
	Temperature       float64       `yaml:"temperature"         env:"LLM_TEMPERATURE"         env-default:"0.7"`
	MaxTokens         int           `yaml:"max_tokens"          env:"LLM_MAX_TOKENS"          env-default:"1024"`
	RequestTimeout    time.Duration `yaml:"request_timeout"     env:"LLM_REQUEST_TIMEOUT"     env-default:"60s"`
	ReadyProbeTimeout time.Duration `yaml:"ready_probe_timeout" env:"LLM_READY_PROBE_TIMEOUT" env-default:"5s"`
	OllamaBaseURL     string        `yaml:"ollama_base_url"     env:"LLM_OLLAMA_BASE_URL"     env-default:"http://localhost:11434"`
	OpenAIAPIKey      string        `yaml:"openai_api_key"      env:"LLM_OPENAI_API_KEY"`
	AnthropicAPIKey   string        `yaml:"anthropic_api_key"   env:"LLM_ANTHROPIC_API_KEY"`
}

// PracticeConfig holds flashcard session policy.
type PracticeConfig struct {
	// ConfidenceStep is the EMA step fraction applied on review:
	// score += (1-score)*step on correct, score -= score*step on incorrect.
	ConfidenceStep   float64 `yaml:"confidence_step"   env:"PRACTICE_CONFIDENCE_STEP"   env-default:"0.3"`
	FoldDiacritics   bool    `yaml:"fold_diacritics"   env:"PRACTICE_FOLD_DIACRITICS"   env-default:"true"`
	AcceptInfinitive bool    `yaml:"accept_infinitive" env:"PRACTICE_ACCEPT_INFINITIVE" env-default:"true"`
	MaxSessionWords  int     `yaml:"max_session_words" env:"PRACTICE_MAX_SESSION_WORDS" env-default:"50"`
	BatchWordCount   int     `yaml:"batch_word_count"  env:"PRACTICE_BATCH_WORD_COUNT"  env-default:"10"`
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	MaxEntries int `yaml:"max_entries" env:"EXPORT_MAX_ENTRIES" env-default:"10000"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET, POST, PATCH, DELETE, OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type, X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"300"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
