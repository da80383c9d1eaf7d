// Package postgres provides PostgreSQL implementations of the store
// interfaces: the item catalog, the answer ledger, learner progress, and the
// read-only account lookups. It also embeds the goose migrations that create
// the schema.
//
// Stores accept a store.DBTX so the same code runs against a pool or inside
// a transaction obtained through store.RunInTransaction.
package postgres
