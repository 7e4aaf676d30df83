package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/fwojciec/contactdir"
)

// NonNamePhrases never appear in personal names. A span containing one also
// disables deriving a name from its email address.
var NonNamePhrases = []string{
	"לפרטים נוספים",
	"כתובת דואר אלקטרוני",
	"דואר אלקטרוני",
	`דוא"ל`,
	"דוא",
	"לשכה",
	"אגף",
}

// NonPersonalUsernames are mailbox words that mark an address as shared
// rather than personal. Matched case-insensitively as substrings of names.
var NonPersonalUsernames = []string{
	"info", "contact", "office", "admin", "support", "service", "team",
	"mail", "email", "example", "lishka", "agaf", "department",
}

var (
	hebrewFullNameRe = regexp.MustCompile(`[א-ת]{2,}(?:\s+[א-ת"׳״]{2,})+`)
	hebrewWordRe     = regexp.MustCompile(`[א-ת]{2,}`)
	englishNameRe    = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`)
	localPartSplitRe = regexp.MustCompile(`[._-]+`)
	nameLetterRe     = regexp.MustCompile(`[A-Za-zא-ת]`)
	digitRe          = regexp.MustCompile(`\d`)
	hebrewLetterRe   = regexp.MustCompile(`[א-ת]`)
	hebrewOnlyRe     = regexp.MustCompile(`^[א-ת]+(?:\s+[א-ת]+)*$`)
)

// IsValidName reports whether name could be a personal name.
func IsValidName(name string) bool {
	if name == "" || digitRe.MatchString(name) {
		return false
	}
	for _, p := range NonNamePhrases {
		if strings.Contains(name, p) {
			return false
		}
	}
	lower := strings.ToLower(name)
	for _, w := range NonPersonalUsernames {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return len(nameLetterRe.FindAllString(name, 2)) >= 2
}

// NameInput is what the name strategies look at.
type NameInput struct {
	Span  string
	Email string
	Role  string
}

// NameStrategy returns a name for the input, or "".
type NameStrategy func(ctx context.Context, in NameInput) string

// NameResolver resolves a contact name by trying strategies in order; the
// first non-empty answer wins. If none answers, the sentinel name is used.
type NameResolver struct {
	Strategies []NameStrategy
}

// NewNameResolver returns a resolver with the pattern strategies followed
// by guesser. guesser may be nil.
func NewNameResolver(guesser contactdir.NameGuesser) *NameResolver {
	return &NameResolver{
		Strategies: []NameStrategy{
			HebrewFullName,
			HebrewSingleName,
			EnglishName,
			EmailName,
			GuessedName(guesser),
		},
	}
}

// Resolve returns the name for in. It never returns "".
func (r *NameResolver) Resolve(ctx context.Context, in NameInput) string {
	for _, s := range r.Strategies {
		if name := s(ctx, in); name != "" {
			return name
		}
	}
	return contactdir.SentinelName(in.Role)
}

// HebrewFullName returns the first run of two or more Hebrew words, if it
// is a valid name.
func HebrewFullName(_ context.Context, in NameInput) string {
	m := hebrewFullNameRe.FindString(in.Span)
	if m == "" || !IsValidName(m) {
		return ""
	}
	return m
}

// HebrewSingleName returns the first standalone Hebrew word, if the span has
// no multi-word Hebrew run and the word is a valid name.
func HebrewSingleName(_ context.Context, in NameInput) string {
	if hebrewFullNameRe.MatchString(in.Span) {
		return ""
	}
	w := firstHebrewWord(in.Span)
	if w == "" || !IsValidName(w) {
		return ""
	}
	return w
}

// EnglishName returns the first run of capitalized Latin words that is a
// valid name. Runs may overlap, so "Contact John Doe" yields "John Doe".
// Spans that offered a Hebrew candidate are left to the later strategies
// even when that candidate was rejected.
func EnglishName(_ context.Context, in NameInput) string {
	if hebrewFullNameRe.MatchString(in.Span) || firstHebrewWord(in.Span) != "" {
		return ""
	}
	for i := 0; i < len(in.Span); i++ {
		if c := in.Span[i]; c < 'A' || c > 'Z' {
			continue
		}
		if m := englishNameRe.FindString(in.Span[i:]); m != "" && IsValidName(m) {
			return m
		}
	}
	return ""
}

// EmailName derives a name from the email local part. Shared mailboxes
// resolve to the sentinel name directly. Spans that mention an email or
// office phrase are skipped since their address is rarely personal.
func EmailName(_ context.Context, in NameInput) string {
	if in.Email == "" {
		return ""
	}
	for _, p := range NonNamePhrases {
		if strings.Contains(in.Span, p) {
			return ""
		}
	}
	local, _, _ := strings.Cut(in.Email, "@")
	if isNonPersonalUsername(local) {
		return contactdir.SentinelName(in.Role)
	}
	return NameFromEmail(in.Email)
}

// NameFromEmail decomposes the local part of email into a title-cased
// name, or returns "". A lone piece loses its last letter, which is
// usually a surname initial ("noamk" becomes "Noam"). A local part with
// any account word in it ("dani.office") is a shared mailbox and yields "".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	var parts []string
	for _, p := range localPartSplitRe.Split(local, -1) {
		if isNonPersonalUsername(p) {
			return ""
		}
		if p == "" || !isAlpha(p) {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 1 {
		parts[0] = parts[0][:len(parts[0])-1]
	}
	var words []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, strings.ToUpper(p[:1])+strings.ToLower(p[1:]))
	}
	name := strings.Join(words, " ")
	if !IsValidName(name) {
		return ""
	}
	return name
}

// GuessedName asks g to find a name in the raw span. Errors and an
// unavailable guesser yield "".
func GuessedName(g contactdir.NameGuesser) NameStrategy {
	return func(ctx context.Context, in NameInput) string {
		if g == nil || !g.Available() {
			return ""
		}
		name, err := g.GuessName(ctx, in.Span)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(name)
	}
}

// HasHebrew reports whether s contains a Hebrew letter.
func HasHebrew(s string) bool {
	return hebrewLetterRe.MatchString(s)
}

// IsHebrewName reports whether s consists only of Hebrew words.
func IsHebrewName(s string) bool {
	return hebrewOnlyRe.MatchString(s)
}

// firstHebrewWord returns the first Hebrew word of at least two letters
// that is not glued to other letters or digits.
func firstHebrewWord(s string) string {
	for _, loc := range hebrewWordRe.FindAllStringIndex(s, -1) {
		if loc[0] > 0 && isWordRune(lastRune(s[:loc[0]])) {
			continue
		}
		if loc[1] < len(s) && isWordRune(firstRune(s[loc[1]:])) {
			continue
		}
		return s[loc[0]:loc[1]]
	}
	return ""
}

func isNonPersonalUsername(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range NonPersonalUsernames {
		if lower == w {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}
