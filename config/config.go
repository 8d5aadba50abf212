package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BLOGWRITER"

// The global, read-only config variable.
var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads the optional config file, environment and command line flags,
// and initializes the global cfg variable. It ensures that the configuration is set only once.
func LoadConfig(cli *CliConfig) (*Config, error) {
	var err error
	once.Do(func() {
		var configuration *Config
		configuration, err = load(viper.New(), cli)
		if err != nil {
			return
		}
		cfg = configuration
	})

	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, errors.New("configuration was not set")
	}

	return cfg, nil
}

func load(v *viper.Viper, cli *CliConfig) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cli != nil {
		if cli.ConfigFile != "" {
			v.SetConfigFile(cli.ConfigFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		if cli.Listen != "" {
			v.Set("listen_address", cli.Listen)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bucket", "sagemakermobbucket555")
	v.SetDefault("key_prefix", "blogs")
	v.SetDefault("model_id", "meta.llama3-8b-instruct-v1:0")
	v.SetDefault("region", "ap-south-1")
	v.SetDefault("storage_region", "")
	v.SetDefault("read_timeout", 60*time.Second)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("log_format", "json")
}

func (c *Config) validate() error {
	switch {
	case c.Bucket == "":
		return errors.New("bucket is required")
	case c.ModelID == "":
		return errors.New("model_id is required")
	case c.Region == "":
		return errors.New("region is required")
	case c.ReadTimeout <= 0:
		return errors.New("read_timeout must be positive")
	case c.MaxAttempts < 1:
		return errors.New("max_attempts must be at least 1")
	}
	return nil
}

// GetConfig returns the loaded configuration.
// It panics if the configuration has not been set.
func GetConfig() *Config {
	if cfg == nil {
		panic("Config has not been set! Call LoadConfig first.")
	}
	return cfg
}
