package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Discord DiscordConfig
	Store   StoreConfig
	Cache   CacheConfig
	Economy EconomyConfig
	Access  AccessConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"3000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// Rate limiting for the public API (requests per window per IP).
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"200"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"theagency-bot"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.2"`
}

// DiscordConfig holds Discord gateway settings.
type DiscordConfig struct {
	Token   string `envconfig:"DISCORD_TOKEN" default:""`
	GuildID string `envconfig:"DISCORD_GUILD_ID" default:""` // empty = register commands globally
}

// StoreConfig holds document store settings.
type StoreConfig struct {
	Type string `envconfig:"STORE_TYPE" default:"sqlite"` // sqlite, mysql, or memory
	Path string `envconfig:"STORE_PATH" default:"./data/bot.db"`
	// MySQL settings
	Host     string `envconfig:"STORE_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"STORE_DB_PORT" default:"3306"`
	Name     string `envconfig:"STORE_DB_NAME" default:"theagency"`
	User     string `envconfig:"STORE_DB_USER" default:"root"`
	Password string `envconfig:"STORE_DB_PASS" default:""`
}

// CacheConfig holds cache settings for the public API responses.
type CacheConfig struct {
	Type string `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// EconomyConfig holds reward policy settings. These are policy knobs, not
// architecture; the defaults match the bot's historical behavior.
type EconomyConfig struct {
	DailyCooldown time.Duration `envconfig:"DAILY_COOLDOWN" default:"12h"`
	DailyMin      int64         `envconfig:"DAILY_MIN_REWARD" default:"1000"`
	DailyMax      int64         `envconfig:"DAILY_MAX_REWARD" default:"3000"`
	WorkCooldown  time.Duration `envconfig:"WORK_COOLDOWN" default:"1h"`
	WorkMin       int64         `envconfig:"WORK_MIN_REWARD" default:"50"`
	WorkMax       int64         `envconfig:"WORK_MAX_REWARD" default:"200"`
}

// AccessConfig holds permission allowlists. Both are comma-separated user ID
// lists; operational policy lives here instead of being compiled in.
type AccessConfig struct {
	// Superusers pass every admin check regardless of configured roles.
	Superusers []string `envconfig:"SUPERUSER_IDS" default:""`
	// SensitiveUsers is the stricter allowlist for currency-granting actions.
	// Admin role membership is necessary but not sufficient for those.
	SensitiveUsers []string `envconfig:"SENSITIVE_COMMAND_USER_IDS" default:""`
}

// MySQLDSN returns the MySQL data source name.
func (s *StoreConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.User, s.Password, s.Host, s.Port, s.Name)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
