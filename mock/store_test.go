package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactStore_SaveLocality(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveLocalityFn", func(t *testing.T) {
		t.Parallel()

		var gotLocality string
		var gotSet *contactdir.ContactSet
		s := &mock.ContactStore{
			SaveLocalityFn: func(_ context.Context, locality string, set *contactdir.ContactSet) error {
				gotLocality = locality
				gotSet = set
				return nil
			},
		}

		set := contactdir.NewContactSet()
		err := s.SaveLocality(context.Background(), "חיפה", set)

		require.NoError(t, err)
		assert.Equal(t, "חיפה", gotLocality)
		assert.Same(t, set, gotSet)
	})
}
