package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnvironmentVariable names the environment variable that may point to a custom config file.
const ConfigFileEnvironmentVariable = "MANQIYOU_CONFIG"

// Config is the root configuration of the service.
type Config struct {
	Core struct {
		// Services lists the API service groups that get mounted. Empty means all services.
		Services []string `yaml:"services"`
		// AdminUser defines the default cms administrator account that will be created
		AdminUser     string `yaml:"admin_user"`
		AdminPassword string `yaml:"admin_password"`
	} `yaml:"core"`

	Advanced struct {
		LogLevel  string `yaml:"log_level"`
		LogPretty bool   `yaml:"log_pretty"`
		LogJson   bool   `yaml:"log_json"`
		// StartupTimeout limits the time spent on database bootstrapping.
		StartupTimeout time.Duration `yaml:"startup_timeout"`
		// CodeTTL is the lifetime of a phone verification code.
		CodeTTL time.Duration `yaml:"code_ttl"`
		// CodeSweepInterval is the interval in which expired verification codes get removed.
		CodeSweepInterval time.Duration `yaml:"code_sweep_interval"`
	} `yaml:"advanced"`

	Statistics StatisticsConfig `yaml:"statistics"`

	Auth Auth `yaml:"auth"`

	Database DatabaseConfig `yaml:"database"`

	Web WebConfig `yaml:"web"`
}

// StatisticsConfig contains the configuration for the prometheus metrics endpoint.
type StatisticsConfig struct {
	// Enabled starts the metrics server.
	Enabled bool `yaml:"enabled"`
	// ListeningAddress is the address and port for the metrics server.
	ListeningAddress string `yaml:"listening_address"`
}

// LogStartupValues logs the most important configuration values at startup.
func (c *Config) LogStartupValues() {
	slog.Debug("configuration loaded", "logLevel", c.Advanced.LogLevel)

	slog.Debug("config features",
		"services", c.Core.Services,
		"metricsEnabled", c.Statistics.Enabled,
		"bypassCodeEnabled", c.Auth.BypassCode != "",
		"exposeCode", c.Auth.ExposeCode,
	)

	slog.Debug("config settings",
		"databaseType", c.Database.Type,
		"listeningAddress", c.Web.ListeningAddress,
		"corsOrigins", c.Web.CorsOrigins,
	)
}

// ServiceEnabled reports whether the named service group should be mounted.
func (c *Config) ServiceEnabled(name string) bool {
	if len(c.Core.Services) == 0 {
		return true
	}
	for _, s := range c.Core.Services {
		if s == name {
			return true
		}
	}
	return false
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Core.AdminUser = "admin"
	cfg.Core.AdminPassword = "manqiyou"

	cfg.Database = DatabaseConfig{
		Type: DatabaseSQLite,
		DSN:  "data/sqlite.db",
	}

	cfg.Web = WebConfig{
		RequestLogging:   false,
		ListeningAddress: ":8080",
		CorsOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://www.manqiyou.cn",
			"https://manqiyou.cn",
			"http://www.manqiyou.cn",
			"http://manqiyou.cn",
		},
	}

	cfg.Auth = Auth{
		JwtSecret:              "manqiyou-secret-key-must-be-at-least-256-bits-long",
		TokenExpiration:        24 * time.Hour,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		BypassCode:             "",
		ExposeCode:             false,
	}

	cfg.Advanced.LogLevel = "info"
	cfg.Advanced.StartupTimeout = 30 * time.Second
	cfg.Advanced.CodeTTL = 5 * time.Minute
	cfg.Advanced.CodeSweepInterval = time.Minute

	cfg.Statistics.Enabled = false
	cfg.Statistics.ListeningAddress = ":8787"

	return cfg
}

// GetConfig returns the configuration with the default values overridden by the config file.
// A missing config file is not an error, the defaults are used in that case.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	// override config values from YAML file

	cfgFileName := "config.yml"
	cfgFileNameFallback := "config.yaml"
	if envCfgFileName := os.Getenv(ConfigFileEnvironmentVariable); envCfgFileName != "" {
		cfgFileName = envCfgFileName
		cfgFileNameFallback = envCfgFileName
	}

	// check if the config file exists, otherwise use the fallback file name
	if _, err := os.Stat(cfgFileName); os.IsNotExist(err) {
		cfgFileName = cfgFileNameFallback
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	cfg.Web.Sanitize()
	if err := cfg.Auth.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth configuration: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("config file does not exist, using defaults", "file", filename)
			return nil
		}

		return fmt.Errorf("envsubst error: %w", err)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("yaml error: %w", err)
	}

	return nil
}
