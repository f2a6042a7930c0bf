// Package config provides configuration structures and utilities for
// docx-cleaner. It defines the options for cleaning runs, replacement rule
// loading, report output, and history storage, populated from CLI flags
// and an optional YAML configuration file.
package config
