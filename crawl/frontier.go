package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/bloom"
)

// Compile-time interface verification.
var _ contactdir.URLFrontier = (*Frontier)(nil)

// Frontier is the per-locality crawl queue. Links come out shallowest
// first and, within a depth, in the order they were discovered. A URL is
// queued at most once. A Bloom filter answers for URLs never pushed; its
// positives are confirmed against the exact set, so no page is skipped by
// a false positive. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	filter  *bloom.Filter
	visited map[string]struct{}
	queue   *linkHeap
	seq     int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		filter:  bloom.NewFilter(n, fpRate),
		visited: make(map[string]struct{}),
		queue:   h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URLs differing only by fragment are considered duplicates.
func (f *Frontier) Push(link contactdir.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen(url) {
		return false
	}
	f.filter.Add(url)
	f.visited[url] = struct{}{}

	link.URL = url
	heap.Push(f.queue, queued{link: link, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the next link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (contactdir.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return contactdir.DiscoveredLink{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen(stripFragment(rawURL))
}

func (f *Frontier) seen(url string) bool {
	if !f.filter.Test(url) {
		return false
	}
	_, ok := f.visited[url]
	return ok
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

type queued struct {
	link contactdir.DiscoveredLink
	seq  int
}

// linkHeap orders links by depth, then by discovery order.
type linkHeap []queued

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Depth != h[j].link.Depth {
		return h[i].link.Depth < h[j].link.Depth
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
