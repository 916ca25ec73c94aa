// Package sqlite provides a local archive sink backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Rows are stored in the tweets table in
// arrival order; every process run gets its own run id so restarts can be told apart.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as NNN_name.up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.tweetwatch/data/tweets.db
package sqlite
