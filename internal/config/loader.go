package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".docx-cleaner"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file format. It carries defaults that
// would otherwise be repeated on every invocation; CLI flags always win
// over file values.
type File struct {
	// Suffix overrides the default output suffix.
	Suffix string `yaml:"suffix"`

	// Rules is the path to a JSON rule payload.
	Rules string `yaml:"rules"`

	// Strict rejects multi-character rule keys.
	Strict bool `yaml:"strict"`

	// History toggles recording runs in the history database.
	// A pointer distinguishes "unset" from an explicit false.
	History *bool `yaml:"history"`

	// Batch overrides the default batch size.
	Batch int `yaml:"batch"`
}

// LoadConfigFile loads tool defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following
// order:
//  1. If configPath is specified, use it directly
//  2. Look for .docx-cleaner in the current directory
//  3. Look for .docx-cleaner in the user's home directory
//
// Returns the path if found, or empty string if not.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
