/*
Package storage defines the persistence contracts of the desktop and
builds the configured back ends.

# Record stores

A RecordStore holds VFS entries keyed by path:

  - memory: ordered B-tree index (github.com/tidwall/btree)
  - sqlite: single table with parent/type indexes (modernc.org/sqlite)
  - postgres: same schema on a pgx connection pool (github.com/jackc/pgx/v5)

# KV stores

A KV holds string slots for the spreadsheet and the notepad autosave:

  - memory: B-tree map
  - sqlite: kv table in the same database file
  - consul: Consul KV under a configurable prefix (github.com/hashicorp/consul/api)

# Resilience

Network back ends are wrapped by Guard, which routes every call through a
resilience.Breaker. While the breaker is open, calls fail fast with an error
wrapping ErrUnavailable.

# Usage

	records, err := storage.NewRecordStore(storage.Options{Driver: "sqlite", DSN: "lumin.db"}, logger)
	if err != nil {
	    return err
	}
	if err := records.Open(ctx); err != nil {
	    return err
	}
*/
package storage
