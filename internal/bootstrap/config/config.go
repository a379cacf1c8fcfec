package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Identifiers IdentifiersConfig `mapstructure:"identifiers"`
	Callbacks   CallbacksConfig   `mapstructure:"callbacks"`
	Activity    ActivityConfig    `mapstructure:"activity"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type IdentifiersConfig struct {
	// AllowDegraded issues ULID-based ids when the counter transaction fails.
	AllowDegraded bool `mapstructure:"allow_degraded"`
}

type CallbacksConfig struct {
	PurgeAfter time.Duration `mapstructure:"purge_after"`
}

type ActivityConfig struct {
	RetainPerTenant int `mapstructure:"retain_per_tenant"`
}

type MaintenanceConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("allow_degraded_ids", cfg.Identifiers.AllowDegraded),
		slog.Duration("callback_purge_after", cfg.Callbacks.PurgeAfter),
	)

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Callbacks.PurgeAfter <= 0 {
		return errors.New("callbacks.purge_after must be positive")
	}
	if c.Activity.RetainPerTenant < 0 {
		return errors.New("activity.retain_per_tenant must not be negative")
	}
	if c.Maintenance.Interval <= 0 {
		return errors.New("maintenance.interval must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "workshop")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".data/workshop.sqlite")
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("identifiers.allow_degraded", true)
	v.SetDefault("callbacks.purge_after", "720h")
	v.SetDefault("activity.retain_per_tenant", 500)
	v.SetDefault("maintenance.interval", "1h")
	v.SetDefault("metrics.addr", "")
}
