// Package pipeline orchestrates the cleaning of documents as a sequence of
// steps.
//
// Each document is processed as a Job that carries the open document, its
// cleaner, and its counter store through the steps: open, clean, save. The
// pipeline pattern keeps error handling and logging uniform across steps
// and lets the batch processor run many documents concurrently with a
// bounded errgroup, each with its own counter store.
package pipeline
