// Package extract turns free-form page text into contact records.
//
// Everything here is synchronous and CPU-bound. External collaborators
// (name and department guessers, the names dataset) are reached through the
// interfaces of the root package and may be absent.
package extract

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

	// phoneRe matches Israeli numbers: a leading 0 or an international
	// +972/972 prefix, a one or two digit area or mobile prefix, then seven
	// digits split 3+4 with optional dash or space separators.
	phoneRe = regexp.MustCompile(`(?:(\+972|\b972)[-\s]?|\b0)([2-9]\d?)[-\s]?(\d{3})[-\s]?(\d{4})\b`)
)

// Phones holds the phone numbers found in one span, digits only.
type Phones struct {
	Mobile string
	Office string
}

// MatchEmail returns the first email address in span, or "".
func MatchEmail(span string) string {
	return emailRe.FindString(span)
}

// MatchPhones finds every phone number in span and classifies it.
// A number is mobile if it starts with 05 or was written in international
// form; otherwise it is an office number. When a span holds several numbers
// of the same class the last one wins.
func MatchPhones(span string) Phones {
	var p Phones
	for _, m := range phoneRe.FindAllStringSubmatch(span, -1) {
		number := "0" + m[2] + m[3] + m[4]
		if m[1] != "" || strings.HasPrefix(number, "05") {
			p.Mobile = number
		} else {
			p.Office = number
		}
	}
	return p
}

// HasContactMarker reports whether line contains an email sign or a phone
// number.
func HasContactMarker(line string) bool {
	return strings.Contains(line, "@") || phoneRe.MatchString(line)
}
