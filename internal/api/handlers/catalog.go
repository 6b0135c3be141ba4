// Package handlers implements the HTTP endpoints of the proxy server.
package handlers

import (
	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/cards/fuzzy"
	"github.com/ramonehamilton/proxygen/internal/decklist"
)

// Catalog is the read-only view of the reference dataset the handlers use.
type Catalog interface {
	decklist.Resolver

	// Suggest returns up to n dataset names resembling name.
	Suggest(name string, n int) []string

	// Len returns the number of indexed records.
	Len() int
}

type storeCatalog struct {
	*cards.Resolver
	store *cards.Store
}

// NewCatalog wraps a Store for use by the handlers.
func NewCatalog(store *cards.Store) Catalog {
	return &storeCatalog{Resolver: cards.NewResolver(store), store: store}
}

func (c *storeCatalog) Suggest(name string, n int) []string {
	return fuzzy.Suggest(c.store, name, n)
}

func (c *storeCatalog) Len() int {
	return c.store.Len()
}
