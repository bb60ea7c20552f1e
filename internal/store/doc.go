// Package store provides SQLite-backed durable storage for recipes.
//
// One row per recipe lives in the recipes table, keyed by id. Tags are
// stored twice: as a JSON array on the row (display order) and as rows of
// recipe_tags (the lookup index). Put rewrites both in one transaction.
//
// # Indexes
//
//   - recipes.id: primary key
//   - is_favorite, date_added, cuisine, difficulty, name: secondary indexes
//   - recipe_tags(tag): tag lookups
//
// # Failure Semantics
//
// Every backend failure is returned as a *StorageError so callers can tell
// "the change may not have persisted" apart from validation problems:
//
//   - QUOTA_EXCEEDED: the database is full (SQLITE_FULL, or Options.MaxPageCount reached)
//   - UNAVAILABLE: the database cannot be opened or written (permissions, read-only, locked, I/O, closed)
//   - FAILED: anything else, including context cancellation
//
// Operations addressing a missing id are no-ops, never errors.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: recipe_tags rows cascade with their recipe
package store
