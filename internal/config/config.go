package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"placement-pro/internal/domain/skillgap"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Scorer   ScorerConfig
	LLM      LLMConfig
	WS       WSConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	// URL, when set, replaces the DB_* connection fields.
	URL string `env:"DATABASE_URL"`

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	PoolMaxConns          int32         `env:"DB_POOL_MAX_CONNS"`
	PoolMinConns          int32         `env:"DB_POOL_MIN_CONNS"`
	PoolMaxConnLifetime   time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME"`
	PoolMaxConnIdleTime   time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME"`
	PoolHealthCheckPeriod time.Duration `env:"DB_POOL_HEALTH_CHECK_PERIOD"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	// TTLSeconds bounds how long a cached report lives.
	TTLSeconds int `env:"REDIS_TTL" envDefault:"600"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

func (c RedisConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 600 * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

type CatalogConfig struct {
	Source        string `env:"CATALOG_SOURCE" envDefault:"embedded"`
	File          string `env:"CATALOG_FILE"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"placement.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
	RunSeeders    bool   `env:"RUN_SEEDERS" envDefault:"false"`
}

type ScorerConfig struct {
	HighPriorityThreshold int    `env:"GAP_HIGH_THRESHOLD" envDefault:"20"`
	MaxRecommendations    int    `env:"MAX_RECOMMENDATIONS" envDefault:"3"`
	DefaultLevel          string `env:"DEFAULT_STUDENT_LEVEL" envDefault:"intermediate"`
}

func (c ScorerConfig) Options() skillgap.Options {
	return skillgap.Options{
		HighPriorityThreshold: c.HighPriorityThreshold,
		MaxRecommendations:    c.MaxRecommendations,
		DefaultLevel:          c.DefaultLevel,
	}
}

type LLMConfig struct {
	APIKey      string        `env:"LLM_API_KEY"`
	Model       string        `env:"LLM_MODEL" envDefault:"gemini-1.5-flash"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"20s"`
	Concurrency int           `env:"LLM_CONCURRENCY" envDefault:"4"`
}

func (c LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type WSConfig struct {
	// AllowedOrigins limits browser origins on /ws/analyses; empty allows all.
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the server configuration. APP_NAME, APP_ENV and HTTP_PORT are
// required.
func Load() (Config, error) {
	return load(true)
}

// LoadTooling reads the same sections as Load without requiring the HTTP
// settings, for command line tools.
func LoadTooling() (Config, error) {
	return load(false)
}

func load(requireApp bool) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" && requireApp {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	if err := env.Parse(&cfg.Database); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidEnv, err)
	}
	cfg.Database.DBHost = opt("DB_HOST")
	cfg.Database.DBPort = opt("DB_PORT")
	cfg.Database.DBName = opt("DB_NAME")
	cfg.Database.DBUser = opt("DB_USER")
	cfg.Database.DBPassword = opt("DB_PASSWORD")
	cfg.Database.DBSSLMode = opt("DB_SSL_MODE")

	for _, section := range []any{&cfg.Redis, &cfg.Catalog, &cfg.Scorer, &cfg.LLM, &cfg.WS} {
		if err := env.Parse(section); err != nil {
			return Config{}, fmt.Errorf("%w: %v", errInvalidEnv, err)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var problems []string

	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	switch c.Catalog.Source {
	case "embedded", "sqlite":
	case "file":
		if strings.TrimSpace(c.Catalog.File) == "" {
			problems = append(problems, "CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	case "postgres":
		if c.Database.URL == "" && (c.Database.DBHost == "" || c.Database.DBName == "") {
			problems = append(problems, "DATABASE_URL or DB_HOST and DB_NAME are required when CATALOG_SOURCE=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("CATALOG_SOURCE %q must be one of embedded, file, postgres, sqlite", c.Catalog.Source))
	}

	if c.Scorer.HighPriorityThreshold < 0 {
		problems = append(problems, "GAP_HIGH_THRESHOLD must not be negative")
	}
	if c.Scorer.MaxRecommendations < 0 {
		problems = append(problems, "MAX_RECOMMENDATIONS must not be negative")
	}
	if lvl, ok := skillgap.NormalizeLevel(c.Scorer.DefaultLevel); ok {
		c.Scorer.DefaultLevel = lvl
	} else {
		problems = append(problems, fmt.Sprintf("DEFAULT_STUDENT_LEVEL %q must be beginner, intermediate or advanced", c.Scorer.DefaultLevel))
	}

	if c.LLM.Concurrency < 1 {
		problems = append(problems, "LLM_CONCURRENCY must be at least 1")
	}
	if c.LLM.Timeout <= 0 {
		problems = append(problems, "LLM_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(problems, "; "))
	}
	return nil
}
