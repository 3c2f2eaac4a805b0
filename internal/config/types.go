package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
// It is resolved once at startup and passed explicitly to components.
type AppConfig struct {
	Port     int                   `yaml:"port"`
	Env      string                `yaml:"env"` // "development" | "production"
	DSN      string                `yaml:"dsn"` // MySQL DSN
	RedisURL string                `yaml:"redis_url"`
	Database DatabaseRuntimeConfig `yaml:"database"`
	Redis    RedisRuntimeConfig    `yaml:"redis"`
	News     NewsConfig            `yaml:"news"`
	LLM      LLMConfig             `yaml:"llm"`
	API      APIConfig             `yaml:"api"`
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
	Scheme   string `yaml:"scheme"`
}

// NewsConfig controls the ingestion pipeline.
type NewsConfig struct {
	APIKey           string        `yaml:"api_key"`
	BaseURL          string        `yaml:"base_url"`
	Categories       string        `yaml:"categories"`
	ArticlesPerRun   int           `yaml:"articles_per_run"`
	MinContentLength int           `yaml:"min_content_length"`
	RequireImage     bool          `yaml:"require_image"`
	FetchInterval    time.Duration `yaml:"fetch_interval"`
	CronSecret       string        `yaml:"cron_secret"`
}

// LLMConfig controls the enrichment backend. An empty APIKey switches the
// enrichment client into deterministic placeholder mode.
type LLMConfig struct {
	APIKey           string  `yaml:"api_key"`
	BaseURL          string  `yaml:"base_url"`
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	VocabularyCount  int     `yaml:"vocabulary_count"`
	ExampleSentences bool    `yaml:"example_sentences"`
}

// APIConfig controls the read-side access gate.
type APIConfig struct {
	Enabled        bool          `yaml:"enabled"`
	KeyRequired    bool          `yaml:"key_required"`
	Key            string        `yaml:"key"`
	RateLimit      int           `yaml:"rate_limit"`
	RateLimitStore string        `yaml:"rate_limit_store"` // "memory" | "redis"
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

type rawAppConfig struct {
	Port        int               `yaml:"port"`
	Env         string            `yaml:"env"`
	NodeEnv     string            `yaml:"node_env"`
	DSN         string            `yaml:"dsn"`
	DatabaseURL string            `yaml:"database_url"`
	RedisURL    string            `yaml:"redis_url"`
	Database    rawDatabaseConfig `yaml:"database"`
	Redis       rawRedisConfig    `yaml:"redis"`
	News        rawNewsConfig     `yaml:"news"`
	LLM         rawLLMConfig      `yaml:"llm"`
	API         rawAPIConfig      `yaml:"api"`
}

type rawDatabaseConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawRedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      *bool  `yaml:"tls"`
	Scheme   string `yaml:"scheme"`
}

type rawNewsConfig struct {
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Categories       string `yaml:"categories"`
	ArticlesPerRun   *int   `yaml:"articles_per_run"`
	MinContentLength *int   `yaml:"min_content_length"`
	RequireImage     *bool  `yaml:"require_image"`
	FetchInterval    string `yaml:"fetch_interval"`
	CronSecret       string `yaml:"cron_secret"`
}

type rawLLMConfig struct {
	APIKey           string   `yaml:"api_key"`
	BaseURL          string   `yaml:"base_url"`
	Model            string   `yaml:"model"`
	Temperature      *float64 `yaml:"temperature"`
	MaxTokens        *int     `yaml:"max_tokens"`
	VocabularyCount  *int     `yaml:"vocabulary_count"`
	ExampleSentences *bool    `yaml:"example_sentences"`
}

type rawAPIConfig struct {
	Enabled        *bool  `yaml:"enabled"`
	KeyRequired    *bool  `yaml:"key_required"`
	Key            string `yaml:"key"`
	RateLimit      *int   `yaml:"rate_limit"`
	RateLimitStore string `yaml:"rate_limit_store"`
	CacheTTL       string `yaml:"cache_ttl"`
}
