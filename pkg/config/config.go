package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ares"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "ARES_APP_ENV"
	EnvDBDSN  = "ARES_DB_DSN"
	EnvDBHost = "ARES_DB_HOST"
	EnvDBUser = "ARES_DB_USER"
	EnvDBName = "ARES_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Assets        AssetsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARES_APP_ENV" required:"true"`
	Port         string `envconfig:"ARES_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ARES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ARES_DB_DSN"`

	LegacyHost     string `envconfig:"ARES_DB_HOST"`
	LegacyPort     int    `envconfig:"ARES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ARES_DB_USER"`
	LegacyPassword string `envconfig:"ARES_DB_PASSWORD"`
	LegacyName     string `envconfig:"ARES_DB_NAME"`
	LegacySSLMode  string `envconfig:"ARES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ARES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ARES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ARES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ARES_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	PingRetries int `envconfig:"ARES_DB_PING_RETRIES" default:"5"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ARES_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ARES_REDIS_ADDR"`
	Password     string        `envconfig:"ARES_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ARES_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ARES_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ARES_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"ARES_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARES_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ARES_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ARES_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ARES_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARES_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ARES_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ARES_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ARES_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ARES_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ARES_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ARES_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ARES_AUTO_MIGRATE" default:"false"`
}

// AssetsConfig controls how stored image references are rendered as URLs.
type AssetsConfig struct {
	BaseURL          string `envconfig:"ARES_ASSETS_BASE_URL" default:"http://localhost:8080"`
	ProductPath      string `envconfig:"ARES_ASSETS_PRODUCT_PATH" default:"/storage/products"`
	PlaceholderImage string `envconfig:"ARES_ASSETS_PLACEHOLDER" default:"/images/placeholder.jpg"`
}

// ProductImageURL resolves a stored product image reference to a public URL,
// falling back to the placeholder when the reference is empty.
func (a AssetsConfig) ProductImageURL(ref *string) string {
	base := strings.TrimRight(a.BaseURL, "/")
	if ref == nil || strings.TrimSpace(*ref) == "" {
		return base + a.PlaceholderImage
	}
	return base + strings.TrimRight(a.ProductPath, "/") + "/" + strings.TrimLeft(*ref, "/")
}

// StaticImageURL resolves a site-relative static asset path.
func (a AssetsConfig) StaticImageURL(path string) string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
