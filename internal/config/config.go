package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// defaultBaseURL is the fixed remote address used when no override is set.
const defaultBaseURL = "https://wl8c8h8m-3002.use2.devtunnels.ms/api"

// Config holds all application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Report ReportConfig `mapstructure:"report"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// APIConfig holds the remote endpoint configuration
type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	SubmitTimeout   time.Duration `mapstructure:"submit_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// ReportConfig holds report download configuration
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from an optional file and environment variables.
// Environment values always win over file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("api.submit_timeout", 10*time.Second)
	v.SetDefault("api.download_timeout", 30*time.Second)

	v.SetDefault("report.output_dir", "reports")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.base_url", "VIATICOS_API_URL")
	v.BindEnv("report.output_dir", "VIATICOS_REPORT_DIR")
	v.BindEnv("logger.level", "VIATICOS_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url is not a valid URL: %s", c.API.BaseURL)
	}
	if c.API.SubmitTimeout <= 0 {
		return fmt.Errorf("api.submit_timeout must be positive")
	}
	if c.API.DownloadTimeout <= 0 {
		return fmt.Errorf("api.download_timeout must be positive")
	}
	return nil
}
