package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ORDERS_"

type Config struct {
	App struct {
		Name         string `koanf:"name"`
		HTTPAddr     string `koanf:"http_addr"`
		LogFile      string `koanf:"log_file"`
		SeedDemoData bool   `koanf:"seed_demo_data"`
		EnsureTables bool   `koanf:"ensure_tables"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
	} `koanf:"http"`

	AWS struct {
		Region          string `koanf:"region"`
		AccessKeyID     string `koanf:"access_key_id"`
		SecretAccessKey string `koanf:"secret_access_key"`
		SessionToken    string `koanf:"session_token"`
		Endpoint        string `koanf:"endpoint"`
	} `koanf:"aws"`

	DynamoDB struct {
		CustomersTable string `koanf:"customers_table"`
		ProductsTable  string `koanf:"products_table"`
		OrdersTable    string `koanf:"orders_table"`
		PaymentsTable  string `koanf:"payments_table"`
	} `koanf:"dynamodb"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Ledger struct {
		MaxAttempts int `koanf:"max_attempts"`
	} `koanf:"ledger"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":                 "order-management",
		"app.http_addr":            ":8080",
		"app.log_file":             "./logs/app.log",
		"app.seed_demo_data":       true,
		"app.ensure_tables":        true,
		"http.read_timeout":        "10s",
		"http.write_timeout":       "10s",
		"http.idle_timeout":        "60s",
		"http.request_timeout":     "5s",
		"aws.region":               "us-east-1",
		"aws.access_key_id":        "local",
		"aws.secret_access_key":    "local",
		"dynamodb.customers_table": "customers",
		"dynamodb.products_table":  "products",
		"dynamodb.orders_table":    "orders",
		"dynamodb.payments_table":  "payments",
		"redis.db":                 0,
		"idempotency.ttl":          "24h",
		"ledger.max_attempts":      3,
	}
}

// Load layers defaults, then the YAML file at path (skipped when path is empty or missing),
// then ORDERS_* environment variables, with "__" separating nested keys
// (ORDERS_DYNAMODB__ORDERS_TABLE, ORDERS_REDIS__ADDR).
func Load(path string) (Config, error) {
	k := koanf.New(".")

	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return Config{}, fmt.Errorf("default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.DynamoDB.CustomersTable == "" || c.DynamoDB.ProductsTable == "" ||
		c.DynamoDB.OrdersTable == "" || c.DynamoDB.PaymentsTable == "" {
		return fmt.Errorf("dynamodb table names required")
	}
	if c.Ledger.MaxAttempts < 1 {
		return fmt.Errorf("ledger.max_attempts must be at least 1")
	}
	return nil
}
