// Package localstore implements the store interfaces over a local
// key-value directory, the desktop analog of browser local storage.
//
// Each key is a single JSON document on disk. Collections are decoded once
// at construction, normalized record by record (legacy field names are
// backfilled, unknown roles degrade to "user"), and held in memory; every
// mutation rewrites the whole document atomically. A document that fails to
// decode is cleared and treated as empty state — corruption recovery is
// local and never surfaces to callers.
package localstore
