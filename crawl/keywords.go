package crawl

import (
	"net/url"
	"strings"
)

// ContactKeywords mark anchors that lead to contact, staff or department
// listings. Matched as substrings of anchor text and href.
var ContactKeywords = []string{
	"צור_קשר", "צור-קשר", "צור קשר",
	"מחלקות", "אנשי קשר", "טלפונים",
	"הנהלה", "עובדים", "צוות",
	"staff", "contacts", "directory",
	"אגפים", "אגף", "אגפיה", "שירותים",
	"שירותי", "דברו איתנו", "דברו",
	"מחלקה",
	"מועצה", "חברי מועצה", "תפקידי מועצה",
}

// IsContactLink reports whether an anchor's text or href contains a contact
// keyword. Percent-encoded hrefs are also checked in decoded form.
func IsContactLink(text, href string) bool {
	candidates := []string{text, href}
	if decoded, err := url.PathUnescape(href); err == nil && decoded != href {
		candidates = append(candidates, decoded)
	}
	for _, c := range candidates {
		lower := strings.ToLower(c)
		for _, kw := range ContactKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
