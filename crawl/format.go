package crawl

import (
	"fmt"
	"net/url"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash of content as hex. The crawler uses it to
// skip pages whose text it has already extracted.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// DisplayURL decodes percent-escapes, which Hebrew paths are full of, and
// shortens the result to maxLen runes keeping the informative end.
func DisplayURL(rawURL string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s := rawURL
	if decoded, err := url.PathUnescape(rawURL); err == nil {
		s = decoded
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return "..." + string(r[len(r)-maxLen+3:])
}
