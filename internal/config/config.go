// Package config loads the small set of knobs the interaction-network core
// itself consumes. Resource registries, fetch credentials and identifier
// mapper configuration are external collaborators and are not modeled here.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime settings for ingest and network maintenance.
type Config struct {
	// Logging mirrors internal/logging.Config's shape at the field level.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Snapshot holds a default file path for snapshot.Save/snapshot.Load.
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`

	// Ingest carries default ingest policy knobs a resource's InputSchema
	// can still override per-field.
	Ingest IngestConfig `yaml:"ingest" mapstructure:"ingest"`

	// Organisms is the default organism allow-list for Network.OrganismsCheck.
	Organisms []int `yaml:"organisms" mapstructure:"organisms"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
	JSONFormat bool   `yaml:"json_format" mapstructure:"json_format"`
}

type SnapshotConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type IngestConfig struct {
	// KeepNoref, when true, overrides every schema's MustHaveReferences,
	// keeping rows that would otherwise be dropped for lacking a reference.
	KeepNoref bool `yaml:"keep_noref" mapstructure:"keep_noref"`

	// HTPThreshold is the default threshold passed to Network.RemoveHTP
	// when a caller doesn't supply one explicitly.
	HTPThreshold int `yaml:"htp_threshold" mapstructure:"htp_threshold"`
}

// Default returns sensible defaults: INFO logging to stdout, snapshot path
// "network.snapshot", HTP threshold of 50, keep_noref off.
func Default() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info", JSONFormat: false},
		Snapshot: SnapshotConfig{Path: "network.snapshot"},
		Ingest:   IngestConfig{KeepNoref: false, HTPThreshold: 50},
	}
}

// Load reads configuration layered over Default(): a YAML file at
// configPath (if non-empty and present), then environment variables
// prefixed INTERLACE_, which take precedence over the file. A .env file at
// envPath (if non-empty and present) is loaded into the environment first,
// so its values count as environment variables. Missing files are not
// errors; malformed ones are.
func Load(envPath, configPath string) (Config, error) {
	cfg := Default()

	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return cfg, fmt.Errorf("load env file %s: %w", envPath, err)
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix("INTERLACE")
	v.AutomaticEnv()
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.output_file", cfg.Logging.OutputFile)
	v.SetDefault("logging.json_format", cfg.Logging.JSONFormat)
	v.SetDefault("snapshot.path", cfg.Snapshot.Path)
	v.SetDefault("ingest.keep_noref", cfg.Ingest.KeepNoref)
	v.SetDefault("ingest.htp_threshold", cfg.Ingest.HTPThreshold)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				if !os.IsNotExist(err) {
					return cfg, fmt.Errorf("read config file %s: %w", configPath, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
