// Package driven defines the outbound ports of the toolkit: interfaces the
// core services depend on, implemented by adapters (GitHub connector, TOML
// config store, SQLite version cache, in-memory test doubles).
package driven
