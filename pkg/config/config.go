package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// ConfigPath is where Load looks for the configuration file; the CLI points it next to its executable
var ConfigPath = "config.json"

type Config struct {
	SeatsPerBench int    `mapstructure:"seatsPerBench"`
	Mode          string `mapstructure:"mode"`
	OutputDir     string `mapstructure:"outputDir"`
	LogLevel      string `mapstructure:"logLevel"`
	LogFormat     string `mapstructure:"logFormat"`
}

func Default() Config {
	return Config{
		SeatsPerBench: 2,
		Mode:          "Column Alternating",
		OutputDir:     "outputs",
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Load reads ConfigPath over the defaults. A missing file is not an error
func Load() (Config, error) {
	config := Default()

	bytes, err := os.ReadFile(ConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file: %w", err)
	}

	// Keys absent from the file keep their default values
	if err := mapstructure.Decode(configJson, &config); err != nil {
		return Config{}, fmt.Errorf("cannot decode config file: %w", err)
	}
	return config, nil
}
