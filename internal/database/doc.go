// Package database provides SQLite-based storage for cleaning-run history.
//
// Every completed cleaning pass can be recorded with its paths, traversal
// statistics, and per-character removal rows, so past runs can be listed
// and compared later. The database lives under the user's XDG data
// directory by default and uses modernc.org/sqlite, a pure-Go driver that
// keeps the binary free of cgo.
package database
