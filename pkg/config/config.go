package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "wishlists"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	Seed         SeedConfig
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
	Env          string `envconfig:"WISHLISTS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"WISHLISTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WISHLISTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WISHLISTS_DB_DSN"`
	Driver string `envconfig:"WISHLISTS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WISHLISTS_DB_HOST"`
	Port     int    `envconfig:"WISHLISTS_DB_PORT" default:"5432"`
	User     string `envconfig:"WISHLISTS_DB_USER"`
	Password string `envconfig:"WISHLISTS_DB_PASSWORD"`
	Name     string `envconfig:"WISHLISTS_DB_NAME"`
	SSLMode  string `envconfig:"WISHLISTS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WISHLISTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WISHLISTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WISHLISTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WISHLISTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a DSN from discrete host settings when one is not
// provided explicitly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either WISHLISTS_DB_DSN or WISHLISTS_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WISHLISTS_FEATURE_AUTO_MIGRATE" default:"false"`
}

type SeedConfig struct {
	Enabled bool  `envconfig:"WISHLISTS_SEED_ENABLED" default:"false"`
	UserID  int64 `envconfig:"WISHLISTS_SEED_USER_ID" default:"1"`
}
