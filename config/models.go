package config

import "time"

// Config holds the application configuration.
type Config struct {
	Bucket        string        `mapstructure:"bucket"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	ModelID       string        `mapstructure:"model_id"`
	Region        string        `mapstructure:"region"`
	StorageRegion string        `mapstructure:"storage_region"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	ListenAddress string        `mapstructure:"listen_address"`
	LogFormat     string        `mapstructure:"log_format"`
}
