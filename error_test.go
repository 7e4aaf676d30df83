package contactdir_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/contactdir"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := contactdir.Errorf(contactdir.ENOTFOUND, "locality %q not found", "חיפה")

	assert.Equal(t, contactdir.ENOTFOUND, contactdir.ErrorCode(err))
	assert.Equal(t, "locality \"חיפה\" not found", contactdir.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, contactdir.ErrorCode(nil))
		assert.Empty(t, contactdir.ErrorMessage(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("lookup: %w", contactdir.Errorf(contactdir.EUNAVAILABLE, "no api key"))

		assert.Equal(t, contactdir.EUNAVAILABLE, contactdir.ErrorCode(err))
		assert.Equal(t, "no api key", contactdir.ErrorMessage(err))
	})

	t.Run("foreign error is internal", func(t *testing.T) {
		t.Parallel()

		err := errors.New("disk on fire")

		assert.Equal(t, contactdir.EINTERNAL, contactdir.ErrorCode(err))
		assert.Equal(t, "Internal error", contactdir.ErrorMessage(err))
	})
}
