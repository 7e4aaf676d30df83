package extract_test

import (
	"context"
	"testing"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/extract"
	"github.com/fwojciec/contactdir/mock"
	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"info", "user123", "לפרטים נוספים", "", "א", "Office Manager", "אגף הרווחה"} {
		assert.False(t, extract.IsValidName(name), name)
	}
	for _, name := range []string{"דני", "John Smith", "יוסי כהן", `בן ג'ו`} {
		assert.True(t, extract.IsValidName(name), name)
	}
}

func TestNameResolver_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := extract.NewNameResolver(nil)

	tests := []struct {
		name string
		in   extract.NameInput
		want string
	}{
		{
			name: "hebrew full name",
			in:   extract.NameInput{Span: "יוסי כהן example@example.com 05-1234567 02-7654321", Email: "example@example.com"},
			want: "יוסי כהן",
		},
		{
			name: "single hebrew word",
			in:   extract.NameInput{Span: "דני dani@test.org 05-8765432", Email: "dani@test.org"},
			want: "דני",
		},
		{
			name: "single hebrew word with phone only",
			in:   extract.NameInput{Span: "צבי 05-5555555"},
			want: "צבי",
		},
		{
			name: "english name after rejected run",
			in:   extract.NameInput{Span: "Contact John Doe for info"},
			want: "John Doe",
		},
		{
			name: "shared mailbox resolves to sentinel",
			in:   extract.NameInput{Span: "info@example.org", Email: "info@example.org"},
			want: contactdir.NotFoundName,
		},
		{
			name: "shared mailbox keeps role in sentinel",
			in:   extract.NameInput{Span: "lishka@city.il", Email: "lishka@city.il", Role: "מנהלת"},
			want: "לא נמצא שם (מנהלת)",
		},
		{
			name: "non-name phrase suppresses email name",
			in:   extract.NameInput{Span: "כתובת דואר אלקטרוני info@test.com", Email: "info@test.com"},
			want: contactdir.NotFoundName,
		},
		{
			name: "for more details phrase",
			in:   extract.NameInput{Span: "לפרטים נוספים: john.smith@test.com", Email: "john.smith@test.com"},
			want: contactdir.NotFoundName,
		},
		{
			name: "email decomposition",
			in:   extract.NameInput{Span: "noa_adari@city.org.il", Email: "noa_adari@city.org.il"},
			want: "Noa Adari",
		},
		{
			name: "lone email piece loses initial",
			in:   extract.NameInput{Span: "noamk@city.org.il", Email: "noamk@city.org.il"},
			want: "Noam",
		},
		{
			name: "mailbox with account word resolves to sentinel",
			in:   extract.NameInput{Span: "info.sales@city.gov.il 050-1234567", Email: "info.sales@city.gov.il"},
			want: contactdir.NotFoundName,
		},
		{
			name: "hebrew candidate rejected skips english layer",
			in:   extract.NameInput{Span: "לשכה John Smith 02-1234567"},
			want: contactdir.NotFoundName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, r.Resolve(ctx, tt.in))
		})
	}
}

func TestNameResolver_Guesser(t *testing.T) {
	t.Parallel()

	t.Run("guesser sees raw span", func(t *testing.T) {
		t.Parallel()

		var got string
		g := &mock.NameGuesser{
			AvailableFn: func() bool { return true },
			GuessNameFn: func(_ context.Context, text string) (string, error) {
				got = text
				return "רונית", nil
			},
		}
		r := extract.NewNameResolver(g)

		name := r.Resolve(context.Background(), extract.NameInput{Span: "לשכה 02-1234567"})

		assert.Equal(t, "רונית", name)
		assert.Equal(t, "לשכה 02-1234567", got)
	})

	t.Run("unavailable guesser falls through to sentinel", func(t *testing.T) {
		t.Parallel()

		g := &mock.NameGuesser{AvailableFn: func() bool { return false }}
		r := extract.NewNameResolver(g)

		name := r.Resolve(context.Background(), extract.NameInput{Span: "02-1234567", Role: "רכז"})

		assert.Equal(t, "לא נמצא שם (רכז)", name)
	})
}

func TestNameFromEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Dana Levi", extract.NameFromEmail("dana.levi@x.il"))
	assert.Equal(t, "Dana Levi", extract.NameFromEmail("DANA-LEVI@x.il"))
	assert.Empty(t, extract.NameFromEmail("office.levir@x.il"))
	assert.Empty(t, extract.NameFromEmail("info.sales@x.com"))
	assert.Empty(t, extract.NameFromEmail("dani.office@x.com"))
	assert.Empty(t, extract.NameFromEmail("a@x.il"))
	assert.Empty(t, extract.NameFromEmail("123@x.il"))
}

func TestHebrewHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.HasHebrew("Dana דנה"))
	assert.False(t, extract.HasHebrew("Dana"))
	assert.True(t, extract.IsHebrewName("נוא דרי"))
	assert.False(t, extract.IsHebrewName("נוא Adari"))
	assert.False(t, extract.IsHebrewName(""))
}
