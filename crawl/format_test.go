package crawl_test

import (
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/contactdir/crawl"
	"github.com/stretchr/testify/assert"
)

func TestDisplayURL(t *testing.T) {
	t.Parallel()

	t.Run("decodes hebrew path", func(t *testing.T) {
		t.Parallel()
		got := crawl.DisplayURL("https://x.il/%D7%A6%D7%95%D7%A8-%D7%A7%D7%A9%D7%A8", 50)
		assert.Equal(t, "https://x.il/צור-קשר", got)
	})

	t.Run("truncates by runes keeping the end", func(t *testing.T) {
		t.Parallel()
		got := crawl.DisplayURL("https://x.il/%D7%A6%D7%95%D7%A8-%D7%A7%D7%A9%D7%A8", 10)
		assert.Equal(t, "...צור-קשר", got)
		assert.Equal(t, 10, utf8.RuneCountInString(got))
	})

	t.Run("invalid escapes shown raw", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.il/%zz", crawl.DisplayURL("https://x.il/%zz", 50))
	})

	t.Run("non-positive max", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.DisplayURL("https://x.il", 0))
		assert.Empty(t, crawl.DisplayURL("https://x.il", -1))
	})

	t.Run("tiny max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", crawl.DisplayURL("https://x.il/abc", 3))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, crawl.ComputeHash("שלום"), crawl.ComputeHash("שלום"))
	assert.NotEqual(t, crawl.ComputeHash("שלום"), crawl.ComputeHash("שלום!"))
}
