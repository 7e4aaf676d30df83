package extract

import "strings"

// RoleTokens are substrings that mark a word as a job title.
var RoleTokens = []string{
	"רכז", "רכזת",
	"מנהל", "מנהלת",
	"יועץ", "יועצת",
	"מפקח", "מפקחת",
	"אחראי", "אחראית",
	`יו"ר`,
	"עובד", "עובדת",
	"סגן",
	"ראש",
	`מנכ"ל`,
}

// ExtractRole returns the first whitespace-delimited word of span that
// contains a role token, unchanged, or "".
func ExtractRole(span string) string {
	for _, word := range strings.Fields(span) {
		for _, tok := range RoleTokens {
			if strings.Contains(word, tok) {
				return word
			}
		}
	}
	return ""
}
