package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	CORSOrigins []string
	Storage     StorageConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Catalog     CatalogConfig
	Pricing     PricingConfig
	Checkout    CheckoutConfig
}

// StorageConfig selects where shopper state is persisted
type StorageConfig struct {
	Driver string // memory, file or postgres
	Dir    string // file driver only
	Key    string // entry name; sessions are stored as "<key>:<session id>"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret  string
	TTL     time.Duration
	IdleTTL time.Duration // in-memory store lifetime without requests; 0 keeps stores forever
}

type CatalogConfig struct {
	File         string // empty means the built-in catalog
	PageSize     int
	RelatedLimit int
}

// PricingConfig holds the cart business rules. None of these are fixed;
// storefront variants disagree on them.
type PricingConfig struct {
	ShippingFee           int64
	FreeShippingThreshold int64
	TaxRate               decimal.Decimal
}

type CheckoutConfig struct {
	Delay time.Duration
}

// Load reads configuration from the environment and an optional .env file
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("STORAGE_DIR", "./data")
	v.SetDefault("STORAGE_KEY", "my-shop-storage")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "storefront")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("SESSION_IDLE_TTL", "30m")

	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("PAGE_SIZE", 16)
	v.SetDefault("RELATED_LIMIT", 4)

	v.SetDefault("SHIPPING_FEE", 100)
	v.SetDefault("FREE_SHIPPING_THRESHOLD", 2000)
	v.SetDefault("TAX_RATE", "0.10")

	v.SetDefault("CHECKOUT_DELAY", "0s")
}

func fromViper(v *viper.Viper) (*Config, error) {
	taxRate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("TAX_RATE")))
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			Dir:    v.GetString("STORAGE_DIR"),
			Key:    strings.TrimSpace(v.GetString("STORAGE_KEY")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Session: SessionConfig{
			Secret:  strings.TrimSpace(v.GetString("SESSION_SECRET")),
			TTL:     v.GetDuration("SESSION_TTL"),
			IdleTTL: v.GetDuration("SESSION_IDLE_TTL"),
		},
		Catalog: CatalogConfig{
			File:         strings.TrimSpace(v.GetString("CATALOG_FILE")),
			PageSize:     v.GetInt("PAGE_SIZE"),
			RelatedLimit: v.GetInt("RELATED_LIMIT"),
		},
		Pricing: PricingConfig{
			ShippingFee:           v.GetInt64("SHIPPING_FEE"),
			FreeShippingThreshold: v.GetInt64("FREE_SHIPPING_THRESHOLD"),
			TaxRate:               taxRate,
		},
		Checkout: CheckoutConfig{
			Delay: v.GetDuration("CHECKOUT_DELAY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("STORAGE_KEY is required")
	}
	if c.Session.Secret == "" {
		if c.IsProduction() {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		c.Session.Secret = "dev-session-secret-change-this"
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("SESSION_IDLE_TTL cannot be negative")
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Catalog.PageSize)
	}
	if c.Pricing.ShippingFee < 0 || c.Pricing.FreeShippingThreshold < 0 {
		return fmt.Errorf("SHIPPING_FEE and FREE_SHIPPING_THRESHOLD cannot be negative")
	}
	if c.Pricing.TaxRate.IsNegative() {
		return fmt.Errorf("TAX_RATE cannot be negative")
	}
	if c.Checkout.Delay < 0 {
		return fmt.Errorf("CHECKOUT_DELAY cannot be negative")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
