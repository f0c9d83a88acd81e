// Package store persists cleaned price observations to Postgres.
//
// The Recorder:
//   - Accepts observations from command handlers without blocking them
//   - Batches rows and flushes on size or interval
//   - Deduplicates on (item_id, location, observed_at) via ON CONFLICT
//
// The store is optional; when disabled nothing in the bot touches a
// database.
package store
