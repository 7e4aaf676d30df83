// Package gemini implements the name and department guessers with Google
// Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/contactdir"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// System instructions.
const (
	nameInstruction       = "Return only the best Hebrew personal name for the provided text. Do not explain."
	departmentInstruction = "Return only the best matching Hebrew department name for the given text or URL. Be concise and do not explain."
)

// Compile-time interface verification.
var (
	_ contactdir.NameGuesser       = (*Guesser)(nil)
	_ contactdir.DepartmentGuesser = (*Guesser)(nil)
)

// Guesser asks Gemini for Hebrew names and department labels. Answers are
// remembered in the optional cache, so a span is sent at most once across
// runs.
type Guesser struct {
	client *genai.Client
	cache  contactdir.GuessCache
}

// NewGuesser creates a Guesser. A nil client yields a guesser that reports
// itself unavailable; cache may be nil.
func NewGuesser(client *genai.Client, cache contactdir.GuessCache) *Guesser {
	return &Guesser{client: client, cache: cache}
}

// Available reports whether the guesser has a client.
func (g *Guesser) Available() bool {
	return g != nil && g.client != nil
}

// GuessName returns Gemini's best Hebrew personal name for text.
func (g *Guesser) GuessName(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", contactdir.Errorf(contactdir.EINVALID, "text required")
	}
	return g.guess(ctx, contactdir.GuessName, text, BuildNameConfig())
}

// GuessDepartment returns Gemini's best Hebrew department label for text
// found at url. Either may be empty, not both.
func (g *Guesser) GuessDepartment(ctx context.Context, text, url string) (string, error) {
	prompt := BuildDepartmentPrompt(text, url)
	if prompt == "" {
		return "", contactdir.Errorf(contactdir.EINVALID, "text or URL required")
	}
	return g.guess(ctx, contactdir.GuessDepartment, prompt, BuildDepartmentConfig())
}

func (g *Guesser) guess(ctx context.Context, kind contactdir.GuessKind, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, kind, prompt); err == nil {
			return cached, nil
		}
	}
	if !g.Available() {
		return "", contactdir.Errorf(contactdir.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", contactdir.Errorf(contactdir.EINTERNAL, "gemini returned nil result")
	}

	answer := CleanAnswer(result.Text())
	if answer == "" {
		return "", contactdir.Errorf(contactdir.ENOTFOUND, "gemini returned no %s", kind)
	}
	if g.cache != nil {
		// Cache failures only cost a repeated request.
		_ = g.cache.Put(ctx, kind, prompt, answer)
	}
	return answer, nil
}

// BuildNameConfig returns the GenerateContentConfig for name guesses.
func BuildNameConfig() *genai.GenerateContentConfig {
	return buildConfig(nameInstruction, 0.2)
}

// BuildDepartmentConfig returns the GenerateContentConfig for department
// guesses.
func BuildDepartmentConfig() *genai.GenerateContentConfig {
	return buildConfig(departmentInstruction, 0.3)
}

func buildConfig(instruction string, temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: &temperature,
	}
}

// BuildDepartmentPrompt joins the span text and a "URL: " line, skipping
// whichever is empty.
func BuildDepartmentPrompt(text, url string) string {
	var parts []string
	if text = strings.TrimSpace(text); text != "" {
		parts = append(parts, text)
	}
	if url = strings.TrimSpace(url); url != "" {
		parts = append(parts, "URL: "+url)
	}
	return strings.Join(parts, "\n")
}

// CleanAnswer keeps the first line of a model answer without surrounding
// quotes, punctuation or markdown emphasis.
func CleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, " \t\"'`*.:״׳")
}
