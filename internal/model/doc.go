// Package model defines the data structures shared across the cleaning
// pipeline, report writers, and history storage.
//
// The central type is CleanReport, which accumulates the outcome of one
// document pass: traversal statistics, per-character removal rows, and
// totals. Keeping the models in their own package avoids import cycles
// between the pipeline, report, and database packages, and the types
// serialize to JSON for report output and history storage.
package model
