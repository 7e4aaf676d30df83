package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/contactdir"
)

var _ contactdir.NamesDataset = (*NameService)(nil)

// NameService stores the given names dataset and implements
// contactdir.NamesDataset. Latin spellings are matched case-insensitively.
type NameService struct {
	db *DB
}

// NewNameService creates a new NameService.
func NewNameService(db *DB) *NameService {
	return &NameService{db: db}
}

// Lookup returns the Hebrew spelling of latin, or ENOTFOUND.
func (s *NameService) Lookup(ctx context.Context, latin string) (string, error) {
	key := normalizeLatin(latin)
	if key == "" {
		return "", contactdir.Errorf(contactdir.EINVALID, "name required")
	}
	var hebrew string
	err := s.db.QueryRowContext(ctx, `
		SELECT hebrew FROM given_names WHERE latin = ?
	`, key).Scan(&hebrew)
	if errors.Is(err, sql.ErrNoRows) {
		return "", contactdir.Errorf(contactdir.ENOTFOUND, "name %q not in dataset", latin)
	}
	if err != nil {
		return "", err
	}
	return hebrew, nil
}

// ReplaceAll replaces the stored dataset with names, a map from Latin to
// Hebrew spelling, in one transaction.
func (s *NameService) ReplaceAll(ctx context.Context, names map[string]string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM given_names`); err != nil {
		return fmt.Errorf("clearing names: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO given_names (latin, hebrew) VALUES (?, ?)
		ON CONFLICT (latin) DO UPDATE SET hebrew = excluded.hebrew
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for latin, hebrew := range names {
		key := normalizeLatin(latin)
		hebrew = strings.TrimSpace(hebrew)
		if key == "" || hebrew == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, key, hebrew); err != nil {
			return fmt.Errorf("inserting %q: %w", latin, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored names.
func (s *NameService) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM given_names`).Scan(&n)
	return n, err
}

func normalizeLatin(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
