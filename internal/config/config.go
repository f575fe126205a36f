// Package config loads optional ambient defaults for a Preprocess call
// from a YAML file and/or environment variables, grounded on the
// teacher's internal/config.LoadConfig (same viper setup: config.yaml in
// the working directory, AutomaticEnv, explicit API-key env binding).
// Nothing in this package is required — the root façade's defaults apply
// when no config file or env vars are present.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the subset of ambient settings this library accepts from
// the environment: chunking defaults, PII masking defaults, and the
// OpenAI credential the semantic strategy's embedder needs.
type Config struct {
	Chunking struct {
		Strategy    string  `mapstructure:"strategy"`
		TargetSize  int     `mapstructure:"target_size"`
		MinSize     int     `mapstructure:"min_size"`
		MaxSize     int     `mapstructure:"max_size"`
		OverlapSize int     `mapstructure:"overlap_size"`
		Language    string  `mapstructure:"language"`
		Threshold   float64 `mapstructure:"similarity_threshold"`
	} `mapstructure:"chunking"`

	PII struct {
		Enabled  bool   `mapstructure:"enabled"`
		Strategy string `mapstructure:"mask_strategy"`
	} `mapstructure:"pii"`

	Embedding struct {
		OpenAIAPIKey string `mapstructure:"openai_api_key"`
		Model        string `mapstructure:"model"`
	} `mapstructure:"embedding"`
}

// Load reads config.yaml from the working directory if present, binds
// OPENAI_API_KEY and RAGPREP_* environment variables, and unmarshals the
// result. A missing file is not an error — the zero Config (paired with
// the façade's own defaults) is a valid outcome.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RAGPREP")
	v.AutomaticEnv()
	v.BindEnv("embedding.openai_api_key", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
