package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/contactdir"
)

// Keyword maps a term found in text to a canonical department label.
type Keyword struct {
	Term       string
	Department string
}

// HebrewDepartments is scanned against the raw span in declaration order.
var HebrewDepartments = []Keyword{
	{"נוער", "מחלקת נוער"},
	{"צעירים", "מחלקת צעירים"},
	{"תרבות", "מחלקת תרבות"},
	{"אירועים", "מחלקת אירועים"},
	{"חינוך", "מחלקת חינוך"},
	{"קהילה", "מחלקת קהילה"},
	{"רווחה", "מחלקת רווחה"},
	{"עובד סוציאלי", "מחלקת רווחה"},
	{"קליטה", "מחלקת קליטה"},
	{"עולים", "מחלקת קליטה"},
	{"סביבה", "מחלקת איכות סביבה"},
	{"קיימות", "מחלקת איכות סביבה"},
	{"וותיקים", "מחלקת אזרחים וותיקים"},
	{"ותיקים", "מחלקת אזרחים וותיקים"},
	{"הגיל השלישי", "מחלקת אזרחים וותיקים"},
}

// EnglishDepartments is matched against lower-cased spans, emails and URLs.
// Longer terms that contain a shorter one come first.
var EnglishDepartments = []Keyword{
	{"youth", "מחלקת נוער"},
	{"young", "מחלקת צעירים"},
	{"culture", "מחלקת תרבות"},
	{"events", "מחלקת אירועים"},
	{"education", "מחלקת חינוך"},
	{"community", "מחלקת קהילה"},
	{"welfare", "מחלקת רווחה"},
	{"absorption", "מחלקת קליטה"},
	{"environment", "מחלקת איכות סביבה"},
	{"veterans", "מחלקת אזרחים וותיקים"},
	{"transport", "מחלקת תחבורה"},
	{"traffic", "מחלקת תחבורה"},
	{"sports", "מחלקת ספורט"},
	{"sport", "מחלקת ספורט"},
	{"finances", "מחלקת כספים"},
	{"finance", "מחלקת כספים"},
	{"engineering", "מחלקת הנדסה"},
	{"security", "מחלקת ביטחון"},
}

var (
	adHocDepartmentRe = regexp.MustCompile(`(מחלק(?:ה|ת)|אגף)\s*[א-ת\s]{2,20}`)
	separatorRe       = regexp.MustCompile(`[-_.]+`)
)

// DepartmentInput is what the department strategies look at.
type DepartmentInput struct {
	Span  string
	URL   string
	Email string
}

// DepartmentStrategy returns a department label for the input, or "".
type DepartmentStrategy func(ctx context.Context, in DepartmentInput) string

// DepartmentClassifier resolves a department by trying strategies in order;
// the first non-empty answer wins.
type DepartmentClassifier struct {
	Strategies []DepartmentStrategy
}

// NewDepartmentClassifier returns a classifier with the keyword strategies
// followed by guesser as the last resort. guesser may be nil.
func NewDepartmentClassifier(guesser contactdir.DepartmentGuesser) *DepartmentClassifier {
	return &DepartmentClassifier{
		Strategies: []DepartmentStrategy{
			HebrewKeywordDepartment,
			AdHocDepartment,
			EnglishKeywordDepartment,
			EmailDepartment,
			URLDepartment,
			GuessedDepartment(guesser),
		},
	}
}

// Classify returns the department for in, or "" if no strategy matched.
func (c *DepartmentClassifier) Classify(ctx context.Context, in DepartmentInput) string {
	for _, s := range c.Strategies {
		if d := s(ctx, in); d != "" {
			return d
		}
	}
	return ""
}

// HebrewKeywordDepartment scans the span for Hebrew department terms.
func HebrewKeywordDepartment(_ context.Context, in DepartmentInput) string {
	return lookupKeyword(HebrewDepartments, in.Span)
}

// AdHocDepartment picks up phrases like "אגף הנדסה" or "מחלקה לשירותים
// חברתיים" that no table lists. The indefinite מחלקה is rewritten to
// the construct form מחלקת.
func AdHocDepartment(_ context.Context, in DepartmentInput) string {
	m := adHocDepartmentRe.FindString(in.Span)
	if m == "" {
		return ""
	}
	m = strings.Join(strings.Fields(m), " ")
	if rest, ok := strings.CutPrefix(m, "מחלקה"); ok {
		m = "מחלקת" + rest
	}
	return m
}

// EnglishKeywordDepartment matches English terms in the lower-cased span.
func EnglishKeywordDepartment(_ context.Context, in DepartmentInput) string {
	return lookupKeyword(EnglishDepartments, strings.ToLower(in.Span))
}

// EmailDepartment matches English terms in the email address, with dots,
// dashes and underscores read as word breaks.
func EmailDepartment(_ context.Context, in DepartmentInput) string {
	if in.Email == "" {
		return ""
	}
	return lookupKeyword(EnglishDepartments, foldSeparators(in.Email))
}

// URLDepartment matches English terms in the source URL.
func URLDepartment(_ context.Context, in DepartmentInput) string {
	if in.URL == "" {
		return ""
	}
	return lookupKeyword(EnglishDepartments, foldSeparators(in.URL))
}

// GuessedDepartment asks g for a department. Its answer is taken as is.
// Errors and an unavailable guesser yield "".
func GuessedDepartment(g contactdir.DepartmentGuesser) DepartmentStrategy {
	return func(ctx context.Context, in DepartmentInput) string {
		if g == nil || !g.Available() {
			return ""
		}
		d, err := g.GuessDepartment(ctx, in.Span, in.URL)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(d)
	}
}

func lookupKeyword(table []Keyword, text string) string {
	for _, kw := range table {
		if strings.Contains(text, kw.Term) {
			return kw.Department
		}
	}
	return ""
}

func foldSeparators(s string) string {
	return separatorRe.ReplaceAllString(strings.ToLower(s), " ")
}
