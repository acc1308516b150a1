package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level daycheck configuration.
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	AI      AI     `mapstructure:"ai"`
	Serve   Serve  `mapstructure:"serve"`
	Output  Output `mapstructure:"output"`
}

// AI selects the text-generation provider for checkups.
type AI struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	APIURL   string `mapstructure:"api_url"`
	Model    string `mapstructure:"model"`
}

// Serve configures the hosted checkup endpoint.
type Serve struct {
	Addr       string `mapstructure:"addr"`
	DailyLimit int    `mapstructure:"daily_limit"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. The API key may also come
// from the DAYCHECK_API_KEY environment variable, which wins over the file.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("data_dir", DefaultConfigDir)
	v.SetDefault("ai.provider", DefaultAI.Provider)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.api_url", "")
	v.SetDefault("ai.model", DefaultAI.Model)
	v.SetDefault("serve.addr", DefaultServeAddr)
	v.SetDefault("serve.daily_limit", DefaultDailyLimit)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	_ = v.BindEnv("ai.api_key", "DAYCHECK_API_KEY")

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}
