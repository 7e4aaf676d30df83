package extract

import "strings"

// Segmenter splits page text into spans that each plausibly describe one
// contact.
//
// With Window zero, lines are buffered and the buffer is flushed as a span
// at every line carrying an email or phone, so each marker lands in exactly
// one span. With Window > 0, every marker line yields the span of Window
// lines centered on it.
type Segmenter struct {
	Window int
}

// Segment returns the candidate spans of text, lines joined by spaces.
func (s Segmenter) Segment(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if s.Window > 0 {
		return s.windows(lines)
	}

	var spans, buf []string
	for _, l := range lines {
		buf = append(buf, l)
		if HasContactMarker(l) {
			spans = append(spans, strings.Join(buf, " "))
			buf = buf[:0]
		}
	}
	return spans
}

func (s Segmenter) windows(lines []string) []string {
	var spans []string
	half := s.Window / 2
	for i, l := range lines {
		if !HasContactMarker(l) {
			continue
		}
		lo := max(0, i-half)
		hi := min(len(lines), lo+s.Window)
		spans = append(spans, strings.Join(lines[lo:hi], " "))
	}
	return spans
}
