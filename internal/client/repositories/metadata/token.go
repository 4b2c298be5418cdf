package metadata

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
)

// savedAtKey records when the current token was written.
const savedAtKey = common.AuthTokenKey + "SavedAt"

// TokenStore keeps the session token under common.AuthTokenKey as plain
// text. Writes and removals also maintain the saved-at timestamp in the
// same transaction.
type TokenStore struct {
	db   *sql.DB
	repo RepositoryFactory
	now  func() time.Time
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, repo: SQLite, now: time.Now}
}

// Load returns the persisted token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save replaces the persisted token.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	savedAt := s.now().UTC().Format(time.RFC3339)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.AuthTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, []byte(savedAt))
	})
}

// Remove deletes the persisted token. Removing an absent token is not an
// error.
func (s *TokenStore) Remove(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, common.AuthTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, savedAtKey)
	})
}

// SavedAt reports when the current token was written. It returns
// common.ErrorNotFound when no token is stored.
func (s *TokenStore) SavedAt(ctx context.Context) (time.Time, error) {
	v, err := s.repo(s.db).Get(ctx, savedAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if v == nil {
		return time.Time{}, common.ErrorNotFound
	}
	return time.Parse(time.RFC3339, string(v))
}
