package decklist

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/cards/cardstest"
)

// countingResolver records every name it is asked to resolve.
type countingResolver struct {
	next  Resolver
	names []string
}

func (c *countingResolver) Resolve(name string) (cards.Entity, error) {
	c.names = append(c.names, name)
	return c.next.Resolve(name)
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{
			name:  "count with x suffix",
			input: "2x Snapcaster Mage",
			want:  []Line{{Number: 1, Count: 2, Name: "Snapcaster Mage"}},
		},
		{
			name:  "count without x",
			input: "4 Lightning Bolt",
			want:  []Line{{Number: 1, Count: 4, Name: "Lightning Bolt"}},
		},
		{
			name:  "spaced x",
			input: "3 x Island",
			want:  []Line{{Number: 1, Count: 3, Name: "Island"}},
		},
		{
			name:  "compact x",
			input: "3xIsland",
			want:  []Line{{Number: 1, Count: 3, Name: "Island"}},
		},
		{
			name:  "uppercase X",
			input: "10X Mountain",
			want:  []Line{{Number: 1, Count: 10, Name: "Mountain"}},
		},
		{
			name:  "no count defaults to one",
			input: "Island",
			want:  []Line{{Number: 1, Count: 1, Name: "Island"}},
		},
		{
			name:  "name starting with x keeps its x",
			input: "2 Xenagos, the Reveler",
			want:  []Line{{Number: 1, Count: 2, Name: "Xenagos, the Reveler"}},
		},
		{
			name:  "split notation keeps first half",
			input: "1 Fire / Ice",
			want:  []Line{{Number: 1, Count: 1, Name: "Fire"}},
		},
		{
			name:  "double slash split notation",
			input: "Fire // Ice",
			want:  []Line{{Number: 1, Count: 1, Name: "Fire"}},
		},
		{
			name:  "arena set suffix",
			input: "4 Lightning Bolt (M21) 123",
			want:  []Line{{Number: 1, Count: 4, Name: "Lightning Bolt"}},
		},
		{
			name:  "whitespace and blank lines",
			input: "\n   2x   Snapcaster Mage   \n\n\t\n1 Island\r\n",
			want: []Line{
				{Number: 2, Count: 2, Name: "Snapcaster Mage"},
				{Number: 5, Count: 1, Name: "Island"},
			},
		},
		{
			name:  "headers and comments",
			input: "Deck\n// burn\n4 Lightning Bolt\n\nSideboard:\n# answers\n2 Fire / Ice",
			want: []Line{
				{Number: 3, Count: 4, Name: "Lightning Bolt"},
				{Number: 7, Count: 2, Name: "Fire"},
			},
		},
		{
			name:  "empty input",
			input: "  \n\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLines(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLines_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantText string
	}{
		{name: "bare count", input: "4", wantLine: 1, wantText: "4"},
		{name: "bare count with x", input: "Island\n4x", wantLine: 2, wantText: "4x"},
		{name: "zero count", input: "0 Island", wantLine: 1, wantText: "0 Island"},
		{name: "overflowing count", input: "99999999999999999999 Island", wantLine: 1, wantText: "99999999999999999999 Island"},
		{name: "punctuation only", input: "2 ?!", wantLine: 1, wantText: "2 ?!"},
		{name: "empty first half", input: "1 / Ice", wantLine: 1, wantText: "1 / Ice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLines(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrDecklistParse))

			var lineErr *LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.wantLine, lineErr.Number)
			assert.Equal(t, tt.wantText, lineErr.Line)
		})
	}
}

func TestParse_ResolvesInOrder(t *testing.T) {
	r := cardstest.Resolver(t)

	got, err := Parse(r, "2x Snapcaster Mage\nIsland\n3 Jace, the Mind Sculptor", 60)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Snapcaster Mage", got[0].Entity.CardName())
	assert.IsType(t, cards.Creature{}, got[0].Entity)

	assert.Equal(t, 1, got[1].Count)
	assert.Equal(t, "Island", got[1].Entity.CardName())

	assert.Equal(t, 3, got[2].Count)
	assert.IsType(t, cards.Planeswalker{}, got[2].Entity)

	assert.Equal(t, 6, TotalCount(got))
}

func TestParse_CountMatchesLine(t *testing.T) {
	r := cardstest.Resolver(t)

	for _, n := range []int{1, 2, 4, 17, 60} {
		got, err := Parse(r, strconv.Itoa(n)+"x Lightning Bolt", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, n, got[0].Count)
		assert.Equal(t, "Lightning Bolt", got[0].Entity.CardName())
	}
}

func TestParse_TooManyCardsShortCircuits(t *testing.T) {
	r := &countingResolver{next: cardstest.Resolver(t)}

	got, err := Parse(r, "3x Island\n3x Mountain\n1 Not A Real Card", 4)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrTooManyCards))

	var limitErr *LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, LimitError{Limit: 4, Total: 6, Number: 2}, *limitErr)

	assert.Equal(t, []string{"Island"}, r.names, "Mountain must never be resolved")
}

func TestParse_LimitIsInclusive(t *testing.T) {
	r := cardstest.Resolver(t)

	got, err := Parse(r, "2 Island\n2 Mountain", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, TotalCount(got))
}

func TestParse_NoLimit(t *testing.T) {
	r := cardstest.Resolver(t)

	got, err := Parse(r, "1000 Island", 0)
	require.NoError(t, err)
	assert.Equal(t, 1000, TotalCount(got))
}

func TestParseLines_LeadingDigitsAreACount(t *testing.T) {
	got, err := ParseLines("1996 World Champion\n1 1996 World Champion\n1x1996 World Champion")
	require.NoError(t, err)

	want := []Line{
		{Number: 1, Count: 1996, Name: "World Champion"},
		{Number: 2, Count: 1, Name: "1996 World Champion"},
		{Number: 3, Count: 1, Name: "1996 World Champion"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseLines() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HardCeiling(t *testing.T) {
	r := cardstest.Resolver(t)

	tests := []struct {
		name  string
		input string
		max   int
		want  LimitError
	}{
		{
			name:  "limit disabled",
			input: strconv.Itoa(MaxCards+1) + " Island",
			max:   0,
			want:  LimitError{Limit: MaxCards, Total: MaxCards + 1, Number: 1},
		},
		{
			name:  "limit above ceiling",
			input: strconv.Itoa(MaxCards) + " Island\n1 Mountain",
			max:   MaxCards * 2,
			want:  LimitError{Limit: MaxCards, Total: MaxCards + 1, Number: 2},
		},
		{
			name:  "count near max int",
			input: "9223372036854775807 Island\n1 Island",
			max:   0,
			want:  LimitError{Limit: MaxCards, Total: math.MaxInt, Number: 1},
		},
		{
			name:  "running total saturates",
			input: "5 Island\n9223372036854775807 Island",
			max:   0,
			want:  LimitError{Limit: MaxCards, Total: math.MaxInt, Number: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(r, tt.input, tt.max)
			assert.Nil(t, got)

			var limitErr *LimitError
			require.True(t, errors.As(err, &limitErr))
			assert.Equal(t, tt.want, *limitErr)
		})
	}
}

func TestParse_ResolutionErrorsPropagate(t *testing.T) {
	r := cardstest.Resolver(t)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown card", input: "1x Not A Real Card", wantErr: cards.ErrInvalidCardName},
		{name: "malformed composite", input: "1 Only One", wantErr: cards.ErrMulticardMalformedNames},
		{name: "composite without names", input: "Nameless Flip", wantErr: cards.ErrMulticardNoNames},
		{name: "second line fails", input: "4 Island\n1 Not A Real Card", wantErr: cards.ErrInvalidCardName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(r, tt.input, 60)
			require.Error(t, err)
			assert.Nil(t, got, "no partial results")
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_InvalidNameIsSanitized(t *testing.T) {
	_, err := Parse(cardstest.Resolver(t), "1x Not A Real Card", 60)

	var nameErr *cards.NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, "not a real card", nameErr.Name)
}

func TestParse_SplitCardResolvesWhole(t *testing.T) {
	got, err := Parse(cardstest.Resolver(t), "2 Fire // Ice", 60)
	require.NoError(t, err)
	require.Len(t, got, 1)

	tp, ok := got[0].Entity.(cards.TwoPart)
	require.True(t, ok)
	assert.Equal(t, cards.Split, tp.Kind)
	assert.Equal(t, "Fire // Ice", tp.CardName())
}

func TestParse_ParseErrorBeforeResolution(t *testing.T) {
	r := &countingResolver{next: cardstest.Resolver(t)}

	_, err := Parse(r, "1 Island\n4x\n1 Mountain", 60)
	assert.True(t, errors.Is(err, ErrDecklistParse))
	assert.Equal(t, []string{"Island"}, r.names)
}

func TestParseDecklist(t *testing.T) {
	store := cardstest.Store(t)

	got, err := ParseDecklist(store, "Island", 60)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := cards.Plain{Name: "Island", Typeline: "Basic Land — Island", Text: "({T}: Add {U}.)"}
	if diff := cmp.Diff(want, got[0].Entity); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(cardstest.Resolver(t), "", 60)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrimaryName(t *testing.T) {
	tests := map[string]string{
		"Fire // Ice":       "Fire",
		"Fire/Ice":          "Fire",
		"  Lightning Bolt ": "Lightning Bolt",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, PrimaryName(in), "PrimaryName(%q)", in)
	}
}
