package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	link := contactdir.DiscoveredLink{URL: "https://city.muni.il/contact", Depth: 1}

	assert.True(t, f.Push(link), "first push should succeed")
	assert.False(t, f.Push(link), "duplicate URL should be rejected")
	assert.False(t, f.Push(contactdir.DiscoveredLink{URL: "https://city.muni.il/contact#top", Depth: 2}),
		"fragment variant should be rejected")
}

func TestFrontier_Push_accepts_every_distinct_URL_when_filter_saturates(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1, 0.5)

	for i := range 200 {
		url := fmt.Sprintf("https://city.muni.il/page/%d", i)
		assert.True(t, f.Push(contactdir.DiscoveredLink{URL: url}), url)
	}
	assert.Equal(t, 200, f.Len())
	assert.False(t, f.Seen("https://city.muni.il/other"))
}

func TestFrontier_Pop_returns_shallowest_first(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/deep", Depth: 2})
	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/a", Depth: 1})
	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/root", Depth: 0})
	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/b", Depth: 1})

	var got []string
	for {
		link, ok := f.Pop()
		if !ok {
			break
		}
		got = append(got, link.URL)
	}

	assert.Equal(t, []string{
		"https://x.il/root",
		"https://x.il/a",
		"https://x.il/b",
		"https://x.il/deep",
	}, got)
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/a"})
	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/b"})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Seen_tracks_all_pushed_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.False(t, f.Seen("https://x.il/page"), "unseen URL should return false")

	f.Push(contactdir.DiscoveredLink{URL: "https://x.il/page"})
	f.Pop()

	assert.True(t, f.Seen("https://x.il/page"), "popped URL should still be seen")
	assert.True(t, f.Seen("https://x.il/page#section"))
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const workers = 10
	const ops = 100

	var wg sync.WaitGroup
	wg.Add(workers * 2)

	for i := range workers {
		go func(id int) {
			defer wg.Done()
			for j := range ops {
				f.Push(contactdir.DiscoveredLink{URL: fmt.Sprintf("https://x.il/%d/%d", id, j), Depth: j % 3})
			}
		}(i)
	}
	for range workers {
		go func() {
			defer wg.Done()
			for range ops {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	for i := range workers {
		for j := range ops {
			url := fmt.Sprintf("https://x.il/%d/%d", i, j)
			assert.True(t, f.Seen(url), "pushed URL %s should be seen", url)
		}
	}
}
