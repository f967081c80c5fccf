// Package memory provides in-memory implementations of the storage ports.
// Used by service tests and for running without a database.
package memory
