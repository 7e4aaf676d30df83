package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/contactdir"
)

var _ contactdir.GuessCache = (*GuessCache)(nil)

// GuessCache implements contactdir.GuessCache using SQLite.
type GuessCache struct {
	db *DB
}

// NewGuessCache creates a new GuessCache.
func NewGuessCache(db *DB) *GuessCache {
	return &GuessCache{db: db}
}

// Get returns the cached output for input, or ENOTFOUND.
func (c *GuessCache) Get(ctx context.Context, kind contactdir.GuessKind, input string) (string, error) {
	var output string
	err := c.db.QueryRowContext(ctx, `
		SELECT output FROM guesses WHERE kind = ? AND input = ?
	`, string(kind), input).Scan(&output)
	if errors.Is(err, sql.ErrNoRows) {
		return "", contactdir.Errorf(contactdir.ENOTFOUND, "no cached %s for %q", kind, input)
	}
	if err != nil {
		return "", err
	}
	return output, nil
}

// Put stores output for input, replacing any earlier value.
func (c *GuessCache) Put(ctx context.Context, kind contactdir.GuessKind, input, output string) error {
	if strings.TrimSpace(input) == "" {
		return contactdir.Errorf(contactdir.EINVALID, "input required")
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO guesses (kind, input, output, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, input) DO UPDATE SET
			output = excluded.output,
			updated_at = excluded.updated_at
	`, string(kind), input, output, time.Now().UTC().Format(time.RFC3339))
	return err
}
