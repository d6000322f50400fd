package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverPebble   = "pebble"
)

type Config struct {
	HTTPPort            string `mapstructure:"HTTP_PORT"`
	StorageDriver       string `mapstructure:"STORAGE_DRIVER"`
	DBHost              string `mapstructure:"DB_HOST"`
	DBPort              string `mapstructure:"DB_PORT"`
	DBUser              string `mapstructure:"DB_USER"`
	DBPassword          string `mapstructure:"DB_PASSWORD"`
	DBName              string `mapstructure:"DB_NAME"`
	DBSslMode           string `mapstructure:"DB_SSLMODE"`
	PebbleDir           string `mapstructure:"PEBBLE_DIR"`
	KafkaHost           string `mapstructure:"KAFKA_HOST"`
	KafkaAwardsTopic    string `mapstructure:"KAFKA_AWARDS_TOPIC"`
	OutboxRelaySchedule string `mapstructure:"OUTBOX_RELAY_SCHEDULE"`
	ReconcileSchedule   string `mapstructure:"RECONCILE_SCHEDULE"`
	OpenAPIValidation   bool   `mapstructure:"OPENAPI_VALIDATION"`
}

var configDefaults = map[string]any{
	"HTTP_PORT":             "8080",
	"STORAGE_DRIVER":        StorageDriverPostgres,
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "",
	"DB_NAME":               "tendering",
	"DB_SSLMODE":            "disable",
	"PEBBLE_DIR":            "data/pebble",
	"KAFKA_HOST":            "localhost:9092",
	"KAFKA_AWARDS_TOPIC":    "tendering.events",
	"OUTBOX_RELAY_SCHEDULE": "*/5 * * * * *",
	"RECONCILE_SCHEDULE":    "0 */10 * * * *",
	"OPENAPI_VALIDATION":    true,
}

// LoadConfig reads an optional .env file into the environment and binds the
// environment on top of the defaults. Real environment variables win over
// the .env file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errors.New("HTTP_PORT is required"))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errList = append(errList, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	case StorageDriverPebble:
		if c.PebbleDir == "" {
			errList = append(errList, errors.New("PEBBLE_DIR is required for the pebble driver"))
		}
	default:
		errList = append(errList, fmt.Errorf("STORAGE_DRIVER %q is not one of %q, %q",
			c.StorageDriver, StorageDriverPostgres, StorageDriverPebble))
	}
	if c.KafkaHost == "" || c.KafkaAwardsTopic == "" {
		errList = append(errList, errors.New("KAFKA_HOST and KAFKA_AWARDS_TOPIC are required"))
	}
	return errors.Join(errList...)
}

// DatabaseURL returns the postgres:// URL used by both gorm and the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
