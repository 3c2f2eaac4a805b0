package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "easynews"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultNewsBaseURL      = "https://newsdata.io/api/1/news"
	defaultNewsCategories   = "technology,science,health"
	defaultArticlesPerRun   = 5
	defaultMinContentLength = 200
	defaultFetchInterval    = time.Hour

	defaultLLMBaseURL     = "https://api.openai.com/v1"
	defaultLLMModel       = "gpt-3.5-turbo"
	defaultLLMTemperature = 0.5
	defaultLLMMaxTokens   = 500
	defaultVocabularyCnt  = 8

	defaultAPIRateLimit = 100
	defaultAPICacheTTL  = time.Minute
)

// Load reads the YAML config file, applies environment overrides for secrets,
// and returns a validated AppConfig.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		// A missing config file is fine in development: everything has a
		// default or an environment override.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d, expected 1-65535", cfg.Database.Port)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d, expected 1-65535", cfg.Redis.Port)
	}
	if cfg.News.ArticlesPerRun < 1 {
		return nil, fmt.Errorf("invalid news.articles_per_run %d, expected >= 1", cfg.News.ArticlesPerRun)
	}
	if cfg.News.MinContentLength < 0 {
		return nil, fmt.Errorf("invalid news.min_content_length %d, expected >= 0", cfg.News.MinContentLength)
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return nil, fmt.Errorf("invalid llm.temperature %v, expected 0-2", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens < 1 {
		return nil, fmt.Errorf("invalid llm.max_tokens %d, expected >= 1", cfg.LLM.MaxTokens)
	}
	if cfg.API.RateLimit < 1 {
		return nil, fmt.Errorf("invalid api.rate_limit %d, expected >= 1", cfg.API.RateLimit)
	}
	if cfg.API.KeyRequired && strings.TrimSpace(cfg.API.Key) == "" {
		return nil, fmt.Errorf("api.key_required is set but api.key is empty")
	}
	switch cfg.API.RateLimitStore {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("invalid api.rate_limit_store %q, expected memory or redis", cfg.API.RateLimitStore)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		News: NewsConfig{
			BaseURL:          defaultNewsBaseURL,
			Categories:       defaultNewsCategories,
			ArticlesPerRun:   defaultArticlesPerRun,
			MinContentLength: defaultMinContentLength,
			FetchInterval:    defaultFetchInterval,
		},
		LLM: LLMConfig{
			BaseURL:         defaultLLMBaseURL,
			Model:           defaultLLMModel,
			Temperature:     defaultLLMTemperature,
			MaxTokens:       defaultLLMMaxTokens,
			VocabularyCount: defaultVocabularyCnt,
		},
		API: APIConfig{
			Enabled:        true,
			RateLimit:      defaultAPIRateLimit,
			RateLimitStore: "memory",
			CacheTTL:       defaultAPICacheTTL,
		},
	}
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}

	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw)

	if v := strings.TrimSpace(raw.News.APIKey); v != "" {
		cfg.News.APIKey = v
	}
	if v := strings.TrimSpace(raw.News.BaseURL); v != "" {
		cfg.News.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.News.Categories); v != "" {
		cfg.News.Categories = v
	}
	if raw.News.ArticlesPerRun != nil {
		cfg.News.ArticlesPerRun = *raw.News.ArticlesPerRun
	}
	if raw.News.MinContentLength != nil {
		cfg.News.MinContentLength = *raw.News.MinContentLength
	}
	if raw.News.RequireImage != nil {
		cfg.News.RequireImage = *raw.News.RequireImage
	}
	if d, ok := parseDurationField(raw.News.FetchInterval); ok {
		cfg.News.FetchInterval = d
	}
	if v := strings.TrimSpace(raw.News.CronSecret); v != "" {
		cfg.News.CronSecret = v
	}

	if v := strings.TrimSpace(raw.LLM.APIKey); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := strings.TrimSpace(raw.LLM.BaseURL); v != "" {
		cfg.LLM.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.LLM.Model); v != "" {
		cfg.LLM.Model = v
	}
	if raw.LLM.Temperature != nil {
		cfg.LLM.Temperature = *raw.LLM.Temperature
	}
	if raw.LLM.MaxTokens != nil {
		cfg.LLM.MaxTokens = *raw.LLM.MaxTokens
	}
	if raw.LLM.VocabularyCount != nil {
		cfg.LLM.VocabularyCount = *raw.LLM.VocabularyCount
	}
	if raw.LLM.ExampleSentences != nil {
		cfg.LLM.ExampleSentences = *raw.LLM.ExampleSentences
	}

	if raw.API.Enabled != nil {
		cfg.API.Enabled = *raw.API.Enabled
	}
	if raw.API.KeyRequired != nil {
		cfg.API.KeyRequired = *raw.API.KeyRequired
	}
	if v := strings.TrimSpace(raw.API.Key); v != "" {
		cfg.API.Key = v
	}
	if raw.API.RateLimit != nil {
		cfg.API.RateLimit = *raw.API.RateLimit
	}
	if v := strings.ToLower(strings.TrimSpace(raw.API.RateLimitStore)); v != "" {
		cfg.API.RateLimitStore = v
	}
	if d, ok := parseDurationField(raw.API.CacheTTL); ok {
		cfg.API.CacheTTL = d
	}

	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
	cfg.Env = normalizeEnv(cfg.Env)
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawAppConfig) DatabaseRuntimeConfig {
	cfg := current

	if v := strings.TrimSpace(raw.Database.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.Database.URL); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.Database.Host); v != "" {
		cfg.Host = v
	}
	if raw.Database.Port != 0 {
		cfg.Port = raw.Database.Port
	}
	if v := strings.TrimSpace(raw.Database.User); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Database.Username); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Database.Password); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(raw.Database.Name); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Database.DBName); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Database.Charset); v != "" {
		cfg.Charset = v
	}
	if raw.Database.ParseTime != nil {
		cfg.ParseTime = *raw.Database.ParseTime
	}
	if v := strings.TrimSpace(raw.Database.Loc); v != "" {
		cfg.Loc = v
	}
	if raw.Database.Params != nil {
		cfg.Params = copyStringMap(raw.Database.Params)
	}

	return normalizeDatabaseConfig(cfg)
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawAppConfig) RedisRuntimeConfig {
	cfg := current

	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		cfg.Host = v
	}
	if raw.Redis.Port != 0 {
		cfg.Port = raw.Redis.Port
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		cfg.Password = v
	}
	if raw.Redis.DB != nil {
		cfg.DB = *raw.Redis.DB
	}
	if raw.Redis.TLS != nil {
		cfg.TLS = *raw.Redis.TLS
	}
	if v := strings.TrimSpace(raw.Redis.Scheme); v != "" {
		cfg.Scheme = v
	}

	return normalizeRedisConfig(cfg)
}

// applyEnvOverrides maps the deployment environment variables onto the config,
// taking precedence over the YAML file. Secrets usually arrive this way.
func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envString("NEWSDATA_API_KEY"); ok {
		cfg.News.APIKey = v
	}
	if v, ok := envString("NEWS_CATEGORIES"); ok {
		cfg.News.Categories = v
	}
	if v, ok := envInt("ARTICLES_PER_RUN"); ok {
		cfg.News.ArticlesPerRun = v
	}
	if v, ok := envInt("MIN_CONTENT_LENGTH"); ok {
		cfg.News.MinContentLength = v
	}
	if v, ok := envBool("REQUIRE_IMAGE"); ok {
		cfg.News.RequireImage = v
	}
	if v, ok := envString("CRON_SECRET"); ok {
		cfg.News.CronSecret = v
	}

	if v, ok := envString("LLM_API_KEY"); ok {
		cfg.LLM.APIKey = v
	}
	if v, ok := envString("LLM_BASE_URL"); ok {
		cfg.LLM.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := envString("LLM_MODEL"); ok {
		cfg.LLM.Model = v
	}
	if v, ok := envFloat("LLM_TEMPERATURE"); ok {
		cfg.LLM.Temperature = v
	}
	if v, ok := envInt("LLM_MAX_TOKENS"); ok {
		cfg.LLM.MaxTokens = v
	}
	if v, ok := envInt("VOCABULARY_COUNT"); ok {
		cfg.LLM.VocabularyCount = v
	}
	if v, ok := envBool("ENABLE_EXAMPLE_SENTENCES"); ok {
		cfg.LLM.ExampleSentences = v
	}

	if v, ok := envBool("API_ENABLED"); ok {
		cfg.API.Enabled = v
	}
	if v, ok := envBool("API_KEY_REQUIRED"); ok {
		cfg.API.KeyRequired = v
	}
	if v, ok := envString("API_KEY"); ok {
		cfg.API.Key = v
	}
	if v, ok := envInt("API_RATE_LIMIT"); ok {
		cfg.API.RateLimit = v
	}
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func copyStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

func parseDurationField(raw string) (time.Duration, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// IsDev reports whether the process runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// CategoryList splits the configured category set.
func (c NewsConfig) CategoryList() []string {
	parts := strings.Split(c.Categories, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
