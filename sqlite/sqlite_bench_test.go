package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkGuessCache simulates a crawl hitting the cache for every span:
// mostly reads with a write per miss.
func BenchmarkGuessCache(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	cache := sqlite.NewGuessCache(db)

	for i := 0; b.Loop(); i++ {
		key := fmt.Sprintf("span-%d", i%500)
		if _, err := cache.Get(ctx, contactdir.GuessDepartment, key); err != nil {
			require.NoError(b, cache.Put(ctx, contactdir.GuessDepartment, key, "רווחה"))
		}
	}
}
