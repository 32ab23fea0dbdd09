package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress       = ":8080"
	defaultLogLevel         = "info"
	defaultUpstreamURL      = "https://nakhsal-event.onrender.com"
	defaultUpstreamResource = "record"
	defaultUpstreamTimeout  = 10 * time.Second
	defaultActionableStatus = "pending"
	defaultViewTTL          = 15 * time.Minute
	defaultSweepInterval    = time.Minute
	defaultViewMaxEntries   = 10000
)

type Config struct {
	Env      string
	Server   server
	Upstream upstream
	View     view
	Logger   logger
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type upstream struct {
	BaseURL  string        `env:"UPSTREAM_URL"`
	Resource string        `env:"UPSTREAM_RESOURCE"`
	Timeout  time.Duration `env:"UPSTREAM_TIMEOUT"`
}

type view struct {
	ActionableStatus string        `env:"ACTIONABLE_STATUS"`
	TTL              time.Duration `env:"VIEW_TTL"`
	SweepInterval    time.Duration `env:"VIEW_SWEEP_INTERVAL"`
	MaxEntries       int           `env:"VIEW_MAX_ENTRIES"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present), the optional config file and the
// environment. configFile may be empty.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("upstream_url", defaultUpstreamURL)
	v.SetDefault("upstream_resource", defaultUpstreamResource)
	v.SetDefault("upstream_timeout", defaultUpstreamTimeout)
	v.SetDefault("actionable_status", defaultActionableStatus)
	v.SetDefault("view_ttl", defaultViewTTL)
	v.SetDefault("view_sweep_interval", defaultSweepInterval)
	v.SetDefault("view_max_entries", defaultViewMaxEntries)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", configFile, err)
			}
		}
	}

	cfg := &Config{
		Env: v.GetString("app_env"),
		Server: server{
			RunAddress: v.GetString("run_address"),
		},
		Upstream: upstream{
			BaseURL:  v.GetString("upstream_url"),
			Resource: v.GetString("upstream_resource"),
			Timeout:  v.GetDuration("upstream_timeout"),
		},
		View: view{
			ActionableStatus: v.GetString("actionable_status"),
			TTL:              v.GetDuration("view_ttl"),
			SweepInterval:    v.GetDuration("view_sweep_interval"),
			MaxEntries:       v.GetInt("view_max_entries"),
		},
		Logger: logger{LogLevel: v.GetString("log_level")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.RunAddress == "" {
		return fmt.Errorf("run_address must not be empty")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream_url must not be empty")
	}
	if c.Upstream.Resource == "" {
		return fmt.Errorf("upstream_resource must not be empty")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream_timeout must be positive, got %s", c.Upstream.Timeout)
	}
	if c.View.ActionableStatus == "" {
		return fmt.Errorf("actionable_status must not be empty")
	}
	if c.View.TTL <= 0 || c.View.SweepInterval <= 0 {
		return fmt.Errorf("view_ttl and view_sweep_interval must be positive")
	}
	if c.View.MaxEntries <= 0 {
		return fmt.Errorf("view_max_entries must be positive, got %d", c.View.MaxEntries)
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
