package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/mock"
	cdslog "github.com/fwojciec/contactdir/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingContactStore(t *testing.T) {
	t.Parallel()

	t.Run("logs results totals", func(t *testing.T) {
		t.Parallel()

		set := contactdir.NewContactSet()
		set.Add(&contactdir.Contact{Name: "משה כהן", Email: "moshe@akko.muni.il"})
		results := contactdir.Results{"עכו": set, "אילת": nil}

		var buf bytes.Buffer
		inner := &mock.ContactStore{
			LoadResultsFn: func(ctx context.Context) (contactdir.Results, error) { return results, nil },
		}

		store := cdslog.NewLoggingContactStore(inner, newLogger(&buf))
		got, err := store.LoadResults(context.Background())

		require.NoError(t, err)
		assert.Equal(t, results, got)
		output := buf.String()
		assert.Contains(t, output, `msg="load results"`)
		assert.Contains(t, output, "localities=2")
		assert.Contains(t, output, "contacts=1")
	})

	t.Run("logs failed locality save", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ContactStore{
			SaveLocalityFn: func(ctx context.Context, locality string, set *contactdir.ContactSet) error {
				return errors.New("disk full")
			},
		}

		store := cdslog.NewLoggingContactStore(inner, newLogger(&buf))
		err := store.SaveLocality(context.Background(), "עכו", contactdir.NewContactSet())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "locality=עכו")
		assert.Contains(t, output, `err="disk full"`)
	})

	t.Run("save results delegates", func(t *testing.T) {
		t.Parallel()

		var saved contactdir.Results
		inner := &mock.ContactStore{
			SaveResultsFn: func(ctx context.Context, results contactdir.Results) error {
				saved = results
				return nil
			},
		}

		store := cdslog.NewLoggingContactStore(inner, newLogger(&bytes.Buffer{}))
		require.NoError(t, store.SaveResults(context.Background(), contactdir.Results{"עכו": nil}))
		assert.Contains(t, saved, "עכו")
	})
}
