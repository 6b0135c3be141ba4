// Package cardstest provides a small reference dataset for tests.
package cardstest

import (
	_ "embed"
	"testing"

	"github.com/ramonehamilton/proxygen/internal/cards"
)

//go:embed allcards.json
var dataset []byte

// Dataset returns the raw fixture dataset in AllCards format.
func Dataset() []byte {
	out := make([]byte, len(dataset))
	copy(out, dataset)
	return out
}

// Store loads the fixture dataset, failing the test on error.
func Store(tb testing.TB, opts ...cards.LoadOption) *cards.Store {
	tb.Helper()

	store, err := cards.Load(dataset, opts...)
	if err != nil {
		tb.Fatalf("load fixture dataset: %v", err)
	}
	return store
}

// Resolver returns a resolver over the fixture dataset.
func Resolver(tb testing.TB, opts ...cards.LoadOption) *cards.Resolver {
	tb.Helper()
	return cards.NewResolver(Store(tb, opts...))
}
