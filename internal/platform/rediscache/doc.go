// Package rediscache provides a Redis read-through cache in front of the
// item catalog. Catalog rows change only on import, so section listings are
// cached with a TTL and every other lookup passes straight through.
package rediscache
