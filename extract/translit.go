package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/contactdir"
)

// Transliterator resolves Latin-script names to Hebrew spellings. It
// consults the cache, then the names dataset, then the name guesser, and
// caches whatever the latter two produce. Every collaborator is optional.
type Transliterator struct {
	Cache   contactdir.GuessCache
	Dataset contactdir.NamesDataset
	Guesser contactdir.NameGuesser
}

// Transliterate returns the Hebrew spelling of latin, or "" if no source
// knows it.
func (t *Transliterator) Transliterate(ctx context.Context, latin string) string {
	latin = strings.TrimSpace(latin)
	if t == nil || latin == "" {
		return ""
	}

	if t.Cache != nil {
		if heb, err := t.Cache.Get(ctx, contactdir.GuessTransliteration, latin); err == nil && heb != "" {
			return heb
		}
	}

	heb := t.lookup(ctx, latin)
	if heb == "" && t.Guesser != nil && t.Guesser.Available() {
		if guess, err := t.Guesser.GuessName(ctx, latin); err == nil {
			heb = strings.TrimSpace(guess)
		}
	}

	if heb != "" && t.Cache != nil {
		_ = t.Cache.Put(ctx, contactdir.GuessTransliteration, latin, heb)
	}
	return heb
}

func (t *Transliterator) lookup(ctx context.Context, latin string) string {
	if t.Dataset == nil {
		return ""
	}
	heb, err := t.Dataset.Lookup(ctx, strings.ToLower(latin))
	if err != nil {
		return ""
	}
	return heb
}

var digraphs = []struct{ latin, hebrew string }{
	{"sch", "ש"},
	{"sh", "ש"},
	{"ch", "ח"},
	{"ph", "פ"},
	{"th", "ת"},
	{"tz", "צ"},
	{"oo", "ו"},
	{"ee", "י"},
	{"ai", "יי"},
	{"ei", "יי"},
}

var letters = map[rune]string{
	'a': "א", 'b': "ב", 'c': "ק", 'd': "ד", 'e': "", 'f': "פ", 'g': "ג",
	'h': "ה", 'i': "י", 'j': "ג", 'k': "ק", 'l': "ל", 'm': "מ", 'n': "נ",
	'o': "ו", 'p': "פ", 'q': "ק", 'r': "ר", 's': "ס", 't': "ט", 'u': "ו",
	'v': "ו", 'w': "ו", 'x': "קס", 'y': "י", 'z': "ז",
}

var finalForms = map[rune]rune{
	'מ': 'ם',
	'נ': 'ן',
	'פ': 'ף',
	'צ': 'ץ',
	'כ': 'ך',
}

// BasicTransliterate spells a Latin name in Hebrew letters using a small
// digraph and letter table. Vowels are mostly dropped and each word ends
// with a final letter form where one exists. It is a last resort for
// offline tools, not a substitute for the dataset.
func BasicTransliterate(latin string) string {
	words := strings.Fields(strings.ToLower(latin))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if heb := transliterateWord(w); heb != "" {
			out = append(out, heb)
		}
	}
	return strings.Join(out, " ")
}

func transliterateWord(w string) string {
	var sb strings.Builder
outer:
	for i := 0; i < len(w); {
		for _, dg := range digraphs {
			if strings.HasPrefix(w[i:], dg.latin) {
				sb.WriteString(dg.hebrew)
				i += len(dg.latin)
				continue outer
			}
		}
		sb.WriteString(letters[rune(w[i])])
		i++
	}
	r := []rune(sb.String())
	if n := len(r); n > 0 {
		if f, ok := finalForms[r[n-1]]; ok {
			r[n-1] = f
		}
	}
	return string(r)
}
