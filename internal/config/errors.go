package config

import "errors"

// Configuration validation errors.
// Package-level sentinel errors let callers use errors.Is for programmatic
// handling while keeping human-readable messages.
var (
	// ErrNoInput is returned when no input document is specified.
	ErrNoInput = errors.New("no input specified: provide one or more .docx files")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrOutputWithMultipleInputs is returned when an explicit output path
	// is combined with more than one input; the path can only name one
	// destination.
	ErrOutputWithMultipleInputs = errors.New("invalid output: --output requires exactly one input file")

	// ErrEmptySuffix is returned when neither an output path nor a suffix
	// is given. Without either, the cleaned document would overwrite its
	// source.
	ErrEmptySuffix = errors.New("invalid suffix: must be non-empty unless --output is given")
)
