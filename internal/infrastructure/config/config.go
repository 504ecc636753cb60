package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Minio     MinioConfig
	Admin     AdminConfig
}

type AuthConfig struct {
	JWTSecret          string   `env:"JWT_SECRET"`
	JWTExpiresIn       Lifetime `env:"JWT_EXPIRES_IN,       default=7d"`
	BcryptCost         int      `env:"BCRYPT_SALT_ROUNDS,   default=12"`
	CookieExpiresDays  int      `env:"COOKIE_EXPIRES_DAYS,  default=7"`
	CookieRememberDays int      `env:"COOKIE_REMEMBER_DAYS, default=30"`
}

type HTTPConfig struct {
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173,http://localhost:3000"`
	BodyLimit      string        `env:"BODY_LIMIT,           default=10M"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,      default=30s"`
}

type RateLimitConfig struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=15m"`
	Max    int           `env:"RATE_LIMIT_MAX,    default=100"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mustardworks"`
}

// RedisConfig is optional: with an empty Addr rate-limit counters are kept
// in process memory. Addr may also be a redis:// URL.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MinioConfig is optional: with an empty Endpoint image uploads are disabled.
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET,     default=gallery"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
	PublicURL string `env:"MINIO_PUBLIC_URL"`
}

// AdminConfig is read by the seed tool only.
type AdminConfig struct {
	Email     string `env:"ADMIN_EMAIL"`
	Password  string `env:"ADMIN_PASSWORD"`
	FirstName string `env:"ADMIN_FIRST_NAME, default=Admin"`
	LastName  string `env:"ADMIN_LAST_NAME,  default=User"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate enforces the settings the server cannot run without. A missing
// JWT secret is fatal in production only.
func (c *Config) Validate() error {
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Lifetime is a duration that also accepts day counts ("7d") and bare
// seconds ("3600") in addition to Go duration strings.
type Lifetime time.Duration

func (l *Lifetime) EnvDecode(val string) error {
	val = strings.TrimSpace(val)
	if days, ok := strings.CutSuffix(val, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid lifetime %q", val)
		}
		*l = Lifetime(time.Duration(n) * 24 * time.Hour)
		return nil
	}
	if secs, err := strconv.Atoi(val); err == nil {
		*l = Lifetime(time.Duration(secs) * time.Second)
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid lifetime %q: %w", val, err)
	}
	*l = Lifetime(d)
	return nil
}

func (l Lifetime) Duration() time.Duration { return time.Duration(l) }
