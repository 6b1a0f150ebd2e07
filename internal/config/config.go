package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/mysql"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

type Config struct {
	Port        string
	StoreDriver string

	MongoURI      string
	MongoDatabase string
	MySQL         mysql.Config

	RedisHost   string
	RabbitMQURL string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	StripeSecretKey     string
	StripeWebhookSecret string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	BaseURL     string
	Currency    string
	CORSOrigins []string

	// DeliveryFee is added to every order, in minor units.
	DeliveryFee int64
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates the required keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", "4000"),
		StoreDriver:   strings.ToLower(get("STORE_DRIVER", DriverMongo)),
		MongoURI:      get("MONGODB_URI", ""),
		MongoDatabase: get("MONGODB_DATABASE", "e-commerce"),
		MySQL: mysql.Config{
			User:     get("MYSQL_USER", "root"),
			Password: get("MYSQL_PASSWORD", ""),
			Host:     get("MYSQL_HOST", "localhost"),
			Port:     get("MYSQL_PORT", "3306"),
			Database: get("MYSQL_DATABASE", ""),
		},
		RedisHost:             get("REDIS_HOST", ""),
		RabbitMQURL:           get("RABBITMQ_URL", ""),
		JWTSecret:             get("JWT_SECRET", ""),
		AdminEmail:            get("ADMIN_EMAIL", ""),
		AdminPassword:         get("ADMIN_PASSWORD", ""),
		StripeSecretKey:       get("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:   get("STRIPE_WEBHOOK_SECRET", ""),
		RazorpayKeyID:         get("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     get("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: get("RAZORPAY_WEBHOOK_SECRET", ""),
		BaseURL:               strings.TrimRight(get("BASE_URL", "http://localhost:5173"), "/"),
		Currency:              strings.ToUpper(get("CURRENCY", "INR")),
		CORSOrigins:           splitList(get("CORS_ORIGINS", "")),
	}

	fee, err := decimal.NewFromString(get("DELIVERY_FEE", "10"))
	if err == nil {
		cfg.DeliveryFee, err = domain.ToMinor(fee)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_FEE: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !domain.SupportedCurrency(c.Currency) {
		return fmt.Errorf("unsupported CURRENCY %q", c.Currency)
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required")
		}
	case DriverMySQL:
		if c.MySQL.Database == "" {
			return errors.New("MYSQL_DATABASE is required")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
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
