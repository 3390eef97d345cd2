package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	ChatRateLimit ChatRateLimitConfig
	Session       SessionConfig
	FeatureFlags  FeatureFlagsConfig
	OpenAI        OpenAIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" && !cfg.FeatureFlags.UseSQLite {
		return nil, fmt.Errorf("%s is required", EnvDBDSN)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SECUREWATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"SECUREWATCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SECUREWATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SECUREWATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SECUREWATCH_DB_DSN"`
	Driver string `envconfig:"SECUREWATCH_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"SECUREWATCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SECUREWATCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SECUREWATCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SECUREWATCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SECUREWATCH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SECUREWATCH_REDIS_ADDR"`
	Password     string        `envconfig:"SECUREWATCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"SECUREWATCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SECUREWATCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SECUREWATCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SECUREWATCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SECUREWATCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SECUREWATCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SECUREWATCH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SECUREWATCH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SECUREWATCH_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SECUREWATCH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SECUREWATCH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SECUREWATCH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SECUREWATCH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SECUREWATCH_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SECUREWATCH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SECUREWATCH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SECUREWATCH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// ChatRateLimitConfig throttles the AI-backed endpoints per browser session.
type ChatRateLimitConfig struct {
	Window time.Duration `envconfig:"SECUREWATCH_CHAT_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"SECUREWATCH_CHAT_RATE_LIMIT" default:"10"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"SECUREWATCH_SESSION_COOKIE" default:"sw_session"`
	CookieTTL  time.Duration `envconfig:"SECUREWATCH_SESSION_COOKIE_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SECUREWATCH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SECUREWATCH_AUTO_MIGRATE" default:"false"`
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"SECUREWATCH_OPENAI_API_KEY"`
	BaseURL string        `envconfig:"SECUREWATCH_OPENAI_BASE_URL"`
	Model   string        `envconfig:"SECUREWATCH_OPENAI_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"SECUREWATCH_OPENAI_TIMEOUT" default:"20s"`
}

// Enabled reports whether the assistant integration is configured.
func (o OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(o.APIKey) != ""
}
