// Package metadata is the client's durable key/value store: a single
// metadata table in the local SQLite database, plus the TokenStore view of
// it that keeps the session token across restarts.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
)

// Repository reads and writes opaque values by key.
//
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// RepositoryFactory binds a Repository to a database handle or transaction.
type RepositoryFactory func(db dbx.DBTX) Repository

// SQLite is the RepositoryFactory for the local SQLite database.
func SQLite(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}
