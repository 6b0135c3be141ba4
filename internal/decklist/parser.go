// Package decklist parses free-text decklists and resolves every line to a
// card entity.
package decklist

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ramonehamilton/proxygen/internal/cards"
)

var (
	// ErrDecklistParse is returned for a line with no recognizable count/name structure.
	ErrDecklistParse = errors.New("could not parse decklist line")

	// ErrTooManyCards is returned once the running card count exceeds the limit.
	ErrTooManyCards = errors.New("too many cards")
)

// LineError reports the decklist line that failed to parse.
type LineError struct {
	Number int
	Line   string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v: line %d: %q", ErrDecklistParse, e.Number, e.Line)
}

func (e *LineError) Unwrap() error {
	return ErrDecklistParse
}

// LimitError reports where the card limit was exceeded.
type LimitError struct {
	Limit  int
	Total  int
	Number int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%v: %d requested by line %d, limit is %d", ErrTooManyCards, e.Total, e.Number, e.Limit)
}

func (e *LimitError) Unwrap() error {
	return ErrTooManyCards
}

// MaxCards bounds every decklist, including ones parsed with the configured
// limit disabled.
const MaxCards = 10000

// Line is one parsed decklist line before resolution.
type Line struct {
	Number int // 1-based line number in the input
	Count  int
	Name   string
}

// Entry is a resolved decklist line.
type Entry struct {
	Count  int
	Entity cards.Entity
}

// Resolver resolves a card name to an entity. *cards.Resolver satisfies it.
type Resolver interface {
	Resolve(name string) (cards.Entity, error)
}

var (
	// "4 Lightning Bolt", "4x Lightning Bolt", "4 x Lightning Bolt"
	countedLine = regexp.MustCompile(`^(\d+)(?:\s*[xX])?\s+(.+)$`)

	// "4xLightning Bolt"
	compactLine = regexp.MustCompile(`^(\d+)[xX](\S.*)$`)

	// A lone count with nothing after it: "4", "4x".
	bareCount = regexp.MustCompile(`^\d+\s*[xX]?$`)

	// Arena exports append "(M21) 123" after the name.
	setSuffix = regexp.MustCompile(`\s+\([A-Za-z0-9]{2,6}\)(?:\s+[A-Za-z0-9-]+)?$`)
)

var sectionHeaders = map[string]bool{
	"deck":       true,
	"mainboard":  true,
	"main deck":  true,
	"sideboard":  true,
	"commander":  true,
	"companion":  true,
	"maybeboard": true,
}

// ParseLines splits text into counted card names without resolving them.
// Blank lines, comments ("//" or "#") and section headers such as
// "Sideboard" are skipped. A name written in split notation ("Fire / Ice")
// is reduced to its first half.
func ParseLines(text string) ([]Line, error) {
	var lines []Line
	err := eachLine(text, func(l Line) error {
		lines = append(lines, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Parse parses text and resolves every line in order. Parsing stops at the
// first error: a malformed line, the running total exceeding maxTotalCount,
// or a resolution failure, which is returned unchanged. Lines after the
// failing one are never resolved. maxTotalCount <= 0, or a value above
// MaxCards, falls back to MaxCards.
func Parse(r Resolver, text string, maxTotalCount int) ([]Entry, error) {
	limit := maxTotalCount
	if limit <= 0 || limit > MaxCards {
		limit = MaxCards
	}

	entries := make([]Entry, 0)
	total := 0

	err := eachLine(text, func(l Line) error {
		if l.Count > limit-total {
			return &LimitError{Limit: limit, Total: addCapped(total, l.Count), Number: l.Number}
		}
		total += l.Count

		entity, err := r.Resolve(l.Name)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Count: l.Count, Entity: entity})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// addCapped adds two non-negative counts, saturating at math.MaxInt.
func addCapped(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func eachLine(text string, fn func(Line) error) error {
	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if skipLine(line) {
			continue
		}

		parsed, err := parseLine(line)
		if err != nil {
			return &LineError{Number: i + 1, Line: line}
		}
		parsed.Number = i + 1

		if err := fn(parsed); err != nil {
			return err
		}
	}
	return nil
}

// ParseDecklist resolves text against store. It is the per-request entry
// point for hosts that only hold a Store.
func ParseDecklist(store *cards.Store, text string, maxTotalCount int) ([]Entry, error) {
	return Parse(cards.NewResolver(store), text, maxTotalCount)
}

// TotalCount sums the counts of entries.
func TotalCount(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func skipLine(line string) bool {
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
		return true
	}
	header := strings.TrimSuffix(strings.ToLower(line), ":")
	return sectionHeaders[strings.TrimSpace(header)]
}

func parseLine(line string) (Line, error) {
	if bareCount.MatchString(line) {
		return Line{}, ErrDecklistParse
	}

	count := 1
	name := line
	if m := countedLine.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Line{}, err
		}
		count, name = n, m[2]
	} else if m := compactLine.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Line{}, err
		}
		count, name = n, m[2]
	}

	if count < 1 {
		return Line{}, ErrDecklistParse
	}

	name = setSuffix.ReplaceAllString(name, "")
	name = PrimaryName(name)
	if cards.Sanitize(name) == "" {
		return Line{}, ErrDecklistParse
	}

	return Line{Count: count, Name: name}, nil
}

// PrimaryName returns the first half of a name written in split notation
// ("Fire // Ice" becomes "Fire"). Other names are returned trimmed.
func PrimaryName(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
