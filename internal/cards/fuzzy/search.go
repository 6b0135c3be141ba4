// Package fuzzy suggests dataset card names for misspelled lookups.
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ramonehamilton/proxygen/internal/cards"
)

// MaxQueryRunes is the longest query Suggest compares. Longer names are cut
// before scoring; no dataset name comes close to this length.
const MaxQueryRunes = 64

// Match is a candidate name with its similarity score (0-100).
type Match struct {
	Name  string
	Score int
	Index int
}

// Options configures a search.
type Options struct {
	// MaxResults limits the number of matches returned (0 = unlimited).
	MaxResults int
	// MinScore drops candidates scoring below this threshold.
	MinScore int
}

// DefaultOptions returns options tuned for "did you mean" suggestions.
func DefaultOptions() Options {
	return Options{
		MaxResults: 5,
		MinScore:   60,
	}
}

// Search scores every candidate against query and returns the matches sorted
// by score, best first. Ties keep candidate order. Both query and candidates
// are expected to be sanitized already.
func Search(query string, candidates []string, opts Options) []Match {
	matches := make([]Match, 0)
	if query == "" {
		return matches
	}

	for i, c := range candidates {
		got := score(query, c, opts.MinScore)
		if got < opts.MinScore {
			continue
		}
		matches = append(matches, Match{Name: c, Score: got, Index: i})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if opts.MaxResults > 0 && len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

// Suggest returns up to n dataset names that resemble name. The returned
// names are the canonical dataset spellings.
func Suggest(store *cards.Store, name string, n int) []string {
	opts := DefaultOptions()
	opts.MaxResults = n

	matches := Search(truncate(cards.Sanitize(name), MaxQueryRunes), store.Keys(), opts)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if rec, ok := store.Get(m.Name); ok {
			out = append(out, rec.Name)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// Score rates how closely target resembles query, from 0 to 100.
func Score(query, target string) int {
	return score(query, target, 0)
}

// score is Score, except that a target whose length alone keeps it below
// minScore gets 0 without running the edit distance.
func score(query, target string, minScore int) int {
	if query == target {
		return 100
	}
	if query == "" || target == "" {
		return 0
	}

	q, t := []rune(query), []rune(target)

	if strings.HasPrefix(target, query) {
		return 90 + len(q)*9/len(t)
	}
	if strings.Contains(target, query) {
		return 80 + len(q)*10/len(t)
	}

	// The edit distance is at least the difference in length.
	longest := max(len(q), len(t))
	if 100-abs(len(q)-len(t))*100/longest < minScore {
		return 0
	}

	distance := levenshtein(q, t)
	return 100 - distance*100/longest
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// levenshtein is the minimum number of single-rune edits turning a into b.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
