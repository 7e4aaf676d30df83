package contactdir

import "context"

// NameGuesser proposes a Hebrew personal name for free text, typically by
// asking a language model.
//
// Implementations must be safe for concurrent use. When Available reports
// false the guesser is treated as always returning nothing for the whole run.
type NameGuesser interface {
	Available() bool
	GuessName(ctx context.Context, text string) (string, error)
}

// DepartmentGuesser proposes a department label for a text span and the URL
// it was found on. The same availability contract as NameGuesser applies.
type DepartmentGuesser interface {
	Available() bool
	GuessDepartment(ctx context.Context, text, url string) (string, error)
}

// NamesDataset maps Latin-script given names to Hebrew spellings.
type NamesDataset interface {
	// Lookup returns the Hebrew spelling of latin.
	// Returns ENOTFOUND if the name is not in the dataset.
	Lookup(ctx context.Context, latin string) (string, error)
}

// GuessKind distinguishes cached guess families.
type GuessKind string

// Guess kinds stored in a GuessCache.
const (
	GuessTransliteration GuessKind = "transliteration"
	GuessName            GuessKind = "name"
	GuessDepartment      GuessKind = "department"
)

// GuessCache remembers collaborator answers across runs. Writes are
// last-writer-wins.
type GuessCache interface {
	// Get returns the cached output for input.
	// Returns ENOTFOUND on a miss.
	Get(ctx context.Context, kind GuessKind, input string) (string, error)

	// Put stores output for input, replacing any previous value.
	Put(ctx context.Context, kind GuessKind, input, output string) error
}
