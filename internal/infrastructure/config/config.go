package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth      AuthConfig
	Cookie    CookieConfig
	Gate      GateConfig
	Frontend  FrontendConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Stripe    StripeConfig
	RateLimit RateLimitConfig

	PaymentWorkers int `env:"PAYMENT_WORKERS, default=8"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET, required"`
	Issuer         string        `env:"JWT_ISSUER,           default=fundbridge"`
	TokenTTL       time.Duration `env:"AUTH_TOKEN_TTL,       default=8760h"`
	ResolverPolicy string        `env:"AUTH_RESOLVER_POLICY, default=fail-open"`
	ResetTokenTTL  time.Duration `env:"AUTH_RESET_TTL,       default=30m"`
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name     string        `env:"COOKIE_NAME,      default=AccessToken"`
	MaxAge   time.Duration `env:"COOKIE_MAX_AGE,   default=8760h"`
	Secure   bool          `env:"COOKIE_SECURE,    default=true"`
	HTTPOnly bool          `env:"COOKIE_HTTP_ONLY, default=true"`
	Domain   string        `env:"COOKIE_DOMAIN"`
}

// GateConfig configures the page gate's status round-trip. StatusURL
// defaults to this server's own status endpoint on PORT.
type GateConfig struct {
	StatusURL string        `env:"GATE_STATUS_URL"`
	Timeout   time.Duration `env:"GATE_STATUS_TIMEOUT, default=3s"`
	Retries   int           `env:"GATE_STATUS_RETRIES, default=1"`
}

type FrontendConfig struct {
	// URL of the page renderer gated requests are proxied to. Empty serves
	// a JSON placeholder.
	URL string `env:"FRONTEND_URL"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=fundbridge"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// StorageConfig points at an S3 compatible bucket. Endpoint is set for MinIO
// and left empty for AWS.
type StorageConfig struct {
	Bucket         string `env:"S3_BUCKET,           default=fundbridge"`
	Region         string `env:"S3_REGION,           default=us-east-1"`
	Endpoint       string `env:"S3_ENDPOINT"`
	AccessKey      string `env:"S3_ACCESS_KEY"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	PublicBaseURL  string `env:"S3_PUBLIC_BASE_URL"`
	MaxUploadBytes int64  `env:"S3_MAX_UPLOAD_BYTES, default=10485760"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency      string `env:"STRIPE_CURRENCY, default=usd"`
}

// RateLimitConfig bounds the unauthenticated auth endpoints per client IP.
type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
	Burst    int           `env:"RATE_LIMIT_BURST,    default=10"`

	// TrustedProxies are CIDRs whose X-Forwarded-For is honoured. Empty
	// keys clients by their connection address.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}

	if cfg.Gate.StatusURL == "" {
		cfg.Gate.StatusURL = "http://localhost:" + cfg.Port + "/api/auth/status"
	}
	if cfg.IsProduction() {
		if !cfg.Cookie.Secure {
			return nil, fmt.Errorf("config: COOKIE_SECURE must be true in production")
		}
		cfg.LogPretty = false
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
