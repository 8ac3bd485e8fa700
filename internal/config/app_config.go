// Package config loads optional application defaults from configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the configuration file looked up in both locations.
	ConfigFileName = "epistle.yaml"
	// GlobalConfigDirectoryName is the per-user configuration directory.
	GlobalConfigDirectoryName = ".epistle"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
}

// ApplicationConfiguration holds defaults that command-line flags override.
type ApplicationConfiguration struct {
	Format           string   `mapstructure:"format"`
	Persona          string   `mapstructure:"persona"`
	Output           string   `mapstructure:"output"`
	Clipboard        *bool    `mapstructure:"clipboard"`
	Exclude          []string `mapstructure:"exclude"`
	Include          []string `mapstructure:"include"`
	MaxFileSizeBytes int64    `mapstructure:"max_file_size"`
}

// Merge overlays non-zero fields of overlay onto the receiver and returns the result.
func (base ApplicationConfiguration) Merge(overlay ApplicationConfiguration) ApplicationConfiguration {
	merged := base
	if overlay.Format != "" {
		merged.Format = overlay.Format
	}
	if overlay.Persona != "" {
		merged.Persona = overlay.Persona
	}
	if overlay.Output != "" {
		merged.Output = overlay.Output
	}
	if overlay.Clipboard != nil {
		merged.Clipboard = overlay.Clipboard
	}
	if len(overlay.Exclude) > 0 {
		merged.Exclude = append(merged.Exclude, overlay.Exclude...)
	}
	if len(overlay.Include) > 0 {
		merged.Include = append(merged.Include, overlay.Include...)
	}
	if overlay.MaxFileSizeBytes > 0 {
		merged.MaxFileSizeBytes = overlay.MaxFileSizeBytes
	}
	return merged
}

// LoadApplicationConfiguration merges the global configuration file from the
// user's home directory with the local one in the working directory. Missing
// files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := filepath.Join(workingDirectory, ConfigFileName)
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		return ApplicationConfiguration{}, nil
	}

	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("reading configuration %s: %w", configurationPath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parsing configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}
