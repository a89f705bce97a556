// Package config loads service and training settings from an optional file
// and ATTRITION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"attrition/internal/models"
	"attrition/internal/training"
	"attrition/pkg/utils"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Forest   ForestConfig   `mapstructure:"forest"`
	Training TrainingConfig `mapstructure:"training"`
}

type ServerConfig struct {
	Port   int    `mapstructure:"port"    validate:"required,min=1,max=65535"`
	APIKey string `mapstructure:"api_key"`
	Mode   string `mapstructure:"mode"    validate:"oneof=debug release test"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"        validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
	Compress   bool   `mapstructure:"compress"`
}

type ForestConfig struct {
	NEstimators     int    `mapstructure:"n_estimators"      validate:"min=1,max=500"`
	MaxDepth        int    `mapstructure:"max_depth"         validate:"min=1,max=64"`
	MinSamplesSplit int    `mapstructure:"min_samples_split" validate:"min=2"`
	MaxFeatures     string `mapstructure:"max_features"`
}

type TrainingConfig struct {
	TestFraction float64 `mapstructure:"test_fraction" validate:"gt=0,lt=1"`
	// Seed 0 seeds from the clock.
	Seed    int64 `mapstructure:"seed"`
	Workers int   `mapstructure:"workers" validate:"min=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("forest.n_estimators", 15)
	v.SetDefault("forest.max_depth", 10)
	v.SetDefault("forest.min_samples_split", 2)
	v.SetDefault("forest.max_features", string(models.MaxFeaturesSqrt))
	v.SetDefault("training.test_fraction", 0.2)
	v.SetDefault("training.seed", 0)
	v.SetDefault("training.workers", 0)
}

// Load reads path when non-empty, then applies environment overrides such as
// ATTRITION_SERVER_PORT or ATTRITION_FOREST_MAX_DEPTH.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ATTRITION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := models.ParseMaxFeatures(c.Forest.MaxFeatures); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) TrainerConfig() training.Config {
	mf, _ := models.ParseMaxFeatures(c.Forest.MaxFeatures)
	return training.Config{
		NEstimators:     c.Forest.NEstimators,
		MaxDepth:        c.Forest.MaxDepth,
		MinSamplesSplit: c.Forest.MinSamplesSplit,
		MaxFeatures:     mf,
		TestFraction:    c.Training.TestFraction,
		Workers:         c.Training.Workers,
	}
}

func (c *Config) LogOptions() utils.LogOptions {
	return utils.LogOptions{
		File:       c.Log.File,
		Level:      c.Log.Level,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}

func (c *Config) Rand() *rand.Rand {
	seed := c.Training.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
