package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "LOOPSTACK"

	AppEnvDev     = "development"
	AppEnvStaging = "staging"
	AppEnvProd    = "production"

	EnvAppEnv   = "LOOPSTACK_APP_ENV"
	EnvPort     = "LOOPSTACK_APP_PORT"
	EnvDBDSN    = "LOOPSTACK_DB_DSN"
	EnvDBHost   = "LOOPSTACK_DB_HOST"
	EnvDBUser   = "LOOPSTACK_DB_USER"
	EnvDBName   = "LOOPSTACK_DB_NAME"
	EnvRedisURL = "LOOPSTACK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"LOOPSTACK_APP_ENV" required:"true"`
	Port         string `envconfig:"LOOPSTACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LOOPSTACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOOPSTACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LOOPSTACK_DB_DSN"`
	Driver string `envconfig:"LOOPSTACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LOOPSTACK_DB_HOST"`
	LegacyPort     int    `envconfig:"LOOPSTACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LOOPSTACK_DB_USER"`
	LegacyPassword string `envconfig:"LOOPSTACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"LOOPSTACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"LOOPSTACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LOOPSTACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LOOPSTACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LOOPSTACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOOPSTACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LOOPSTACK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LOOPSTACK_REDIS_ADDR"`
	Password     string        `envconfig:"LOOPSTACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOOPSTACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOOPSTACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOOPSTACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOOPSTACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOOPSTACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LOOPSTACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig tunes shopper cart sessions. The per-cart entry cap is a product
// rule, not deployment tuning, so it lives next to the cart store itself.
type CartConfig struct {
	SessionTTL time.Duration `envconfig:"LOOPSTACK_CART_SESSION_TTL" default:"720h"`
}

// PricingConfig carries the order summary policy constants. Decimal strings keep
// money math out of binary floats.
type PricingConfig struct {
	TaxRate               decimal.Decimal `envconfig:"LOOPSTACK_PRICING_TAX_RATE" default:"0.08"`
	FreeShippingThreshold decimal.Decimal `envconfig:"LOOPSTACK_PRICING_FREE_SHIPPING_THRESHOLD" default:"100"`
	ShippingFee           decimal.Decimal `envconfig:"LOOPSTACK_PRICING_SHIPPING_FEE" default:"9.99"`
}

type CheckoutConfig struct {
	CurrencySymbol  string `envconfig:"LOOPSTACK_CHECKOUT_CURRENCY_SYMBOL" default:"₹"`
	FallbackContact string `envconfig:"LOOPSTACK_CHECKOUT_FALLBACK_CONTACT"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LOOPSTACK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LOOPSTACK_AUTO_MIGRATE" default:"false"`
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
