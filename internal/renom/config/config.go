// Package config loads renom's configuration from an embedded default, an
// optional file, and environment overrides, grounded on the teacher's
// internal/utils.ConfigurationLoader (viper) and cmd/cli.default_configuration.go
// (go:embed default) wiring.
package config

import (
	"bytes"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationNameConstant       = "renom"
	configurationTypeConstant       = "yaml"
	environmentPrefixConstant       = "RENOM"
	configurationReadErrorTemplate  = "failed to read configuration: %w"
	configurationMergeErrorTemplate = "failed to merge embedded configuration: %w"
	configurationParseErrorTemplate = "failed to parse configuration: %w"
)

// IdentifierConfiguration carries the length caps §3's Identifier invariant
// depends on, overridable for projects with nonstandard naming policies.
type IdentifierConfiguration struct {
	ProjectMaxLength int `mapstructure:"project_max_length"`
	EntityMaxLength  int `mapstructure:"entity_max_length"`
}

// Configuration is renom's fully-resolved runtime configuration: embedded
// defaults, overlaid by an optional config file, overlaid by RENOM_*
// environment variables, overlaid by explicit CLI flags.
type Configuration struct {
	LogLevel               string                  `mapstructure:"log_level"`
	LogFormat              string                  `mapstructure:"log_format"`
	AssumeYes              bool                    `mapstructure:"assume_yes"`
	DryRun                 bool                    `mapstructure:"dry_run"`
	RequireCleanDescriptor bool                    `mapstructure:"require_clean_descriptor"`
	BackupDirectoryName    string                  `mapstructure:"backup_directory_name"`
	Identifier             IdentifierConfiguration `mapstructure:"identifier"`
}

// Load resolves a Configuration from the embedded default, an optional
// configurationFilePath (ignored when empty), and RENOM_*-prefixed
// environment variables.
func Load(configurationFilePath string) (Configuration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(configurationNameConstant)
	viperInstance.SetConfigType(configurationTypeConstant)

	if mergeError := viperInstance.MergeConfig(bytes.NewReader(defaultConfigurationBytes)); mergeError != nil {
		return Configuration{}, fmt.Errorf(configurationMergeErrorTemplate, mergeError)
	}

	viperInstance.SetEnvPrefix(environmentPrefixConstant)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
		if readError := viperInstance.MergeInConfig(); readError != nil {
			return Configuration{}, fmt.Errorf(configurationReadErrorTemplate, readError)
		}
	}

	var resolved Configuration
	decoderOptions := func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.ErrorUnused = false
	}
	if unmarshalError := viperInstance.Unmarshal(&resolved, decoderOptions); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplate, unmarshalError)
	}

	return resolved, nil
}
