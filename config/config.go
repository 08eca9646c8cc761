package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	devSecret = "dev-secret-change-me"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Maintenance MaintenanceConfig
	App         AppConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" env-default:"postgres"`
	Host       string `env:"DB_HOST" env-default:"localhost"`
	Port       int    `env:"DB_PORT" env-default:"5432"`
	User       string `env:"DB_USER" env-default:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" env-default:"snapcourse"`
	SSLMode    string `env:"DB_SSLMODE" env-default:"disable"`
	MaxConns   int32  `env:"DB_MAX_CONNS" env-default:"10"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"snapcourse.db"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	JWTIssuer     string        `env:"JWT_ISSUER" env-default:"snapcourse"`
	JWTTTL        time.Duration `env:"JWT_TTL" env-default:"24h"`
	SessionSecret string        `env:"SESSION_SECRET" env-default:"dev-secret-change-me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"168h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" env-default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type RateLimitConfig struct {
	LoginPerMinute int `env:"LOGIN_RATE_PER_MIN" env-default:"10"`
	LoginBurst     int `env:"LOGIN_BURST" env-default:"5"`
}

type MaintenanceConfig struct {
	PurgeSchedule  string        `env:"PURGE_SCHEDULE" env-default:"0 0 3 * * *"`
	PurgeRetention time.Duration `env:"PURGE_RETENTION" env-default:"720h"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	Version     string `env:"APP_VERSION" env-default:"1.0.0"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.IsProduction() {
		if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == devSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Auth.SessionSecret == "" || c.Auth.SessionSecret == devSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
	}

	return nil
}
