package extract

import (
	"context"
	"strings"
	"unicode"

	"github.com/fwojciec/contactdir"
)

// Builder turns text spans into contact records.
type Builder struct {
	Names          *NameResolver
	Departments    *DepartmentClassifier
	Transliterator *Transliterator
	Segmenter      Segmenter
}

// NewBuilder returns a Builder wired to the given collaborators, any of
// which may be nil.
func NewBuilder(names contactdir.NameGuesser, departments contactdir.DepartmentGuesser, translit *Transliterator) *Builder {
	return &Builder{
		Names:          NewNameResolver(names),
		Departments:    NewDepartmentClassifier(departments),
		Transliterator: translit,
	}
}

// Build extracts one contact from span. It always returns a record, even
// when the span holds no contact details; callers drop those with
// Contact.HasContactInfo.
func (b *Builder) Build(ctx context.Context, span, locality, sourceURL string) *contactdir.Contact {
	email := MatchEmail(span)
	phones := MatchPhones(span)
	role := ExtractRole(span)

	draft := contactdir.Contact{
		Role:        role,
		Locality:    locality,
		Email:       email,
		PhoneMobile: phones.Mobile,
		PhoneOffice: phones.Office,
		SourceURL:   sourceURL,
		Department: b.Departments.Classify(ctx, DepartmentInput{
			Span:  span,
			URL:   sourceURL,
			Email: email,
		}),
		Name: b.Names.Resolve(ctx, NameInput{
			Span:  span,
			Email: email,
			Role:  role,
		}),
	}

	c := b.Repair(ctx, draft)
	c.Name = CleanText(c.Name)
	c.Role = CleanText(c.Role)
	c.Department = CleanText(c.Department)
	if c.Name == "" {
		c.Name = contactdir.SentinelName(c.Role)
	}
	return &c
}

// Repair fixes Latin-script names. When an email is present the name is
// re-derived from it; if that transliterates to a Hebrew name, the Hebrew
// spelling is used and a differing original candidate, usually a job title
// picked up in place of a name, is added to the role. Otherwise the candidate
// itself is transliterated when possible.
func (b *Builder) Repair(ctx context.Context, c contactdir.Contact) contactdir.Contact {
	if contactdir.IsSentinelName(c.Name) || HasHebrew(c.Name) {
		return c
	}

	if c.Email != "" {
		if derived := NameFromEmail(c.Email); derived != "" {
			if heb := b.Transliterator.Transliterate(ctx, derived); IsHebrewName(heb) {
				if c.Name != derived {
					c.Role = joinRole(c.Role, c.Name)
				}
				c.Name = heb
				return c
			}
		}
	}

	if heb := b.Transliterator.Transliterate(ctx, c.Name); heb != "" {
		c.Name = heb
	}
	return c
}

// joinRole appends a relegated name candidate to an extracted role.
func joinRole(role, candidate string) string {
	if role == "" {
		return candidate
	}
	return role + ", " + candidate
}

// ExtractText segments text and builds a contact per span, keeping only
// contacts with an email or phone.
func (b *Builder) ExtractText(ctx context.Context, text, locality, sourceURL string) []*contactdir.Contact {
	var out []*contactdir.Contact
	for _, span := range b.Segmenter.Segment(text) {
		if c := b.Build(ctx, span, locality, sourceURL); c.HasContactInfo() {
			out = append(out, c)
		}
	}
	return out
}

// CleanText collapses runs of whitespace and trims surrounding spaces and
// punctuation. Closing parentheses are kept.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimFunc(s, func(r rune) bool {
		if r == '(' || r == ')' {
			return false
		}
		return unicode.IsSpace(r) || unicode.IsPunct(r) || r == '|'
	})
}
