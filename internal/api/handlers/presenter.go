package handlers

import "github.com/ramonehamilton/proxygen/internal/cards"

// Entity kinds in JSON payloads.
const (
	kindCreature      = "creature"
	kindPlaneswalker  = "planeswalker"
	kindPlain         = "plain"
	kindTwoPart       = "two_part"
	kindUnimplemented = "unimplemented"
)

// CardJSON is the wire form of a resolved entity.
type CardJSON struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	ManaCost  string `json:"mana_cost,omitempty"`
	Typeline  string `json:"typeline,omitempty"`
	Text      string `json:"text,omitempty"`
	Power     string `json:"power,omitempty"`
	Toughness string `json:"toughness,omitempty"`
	Loyalty   string `json:"loyalty,omitempty"`

	// TwoPart only.
	TwoPartKind string     `json:"two_part_kind,omitempty"`
	Faces       []CardJSON `json:"faces,omitempty"`

	// Unimplemented only.
	Layout string `json:"layout,omitempty"`
}

// EntryJSON is one resolved decklist line.
type EntryJSON struct {
	Count int      `json:"count"`
	Card  CardJSON `json:"card"`
}

// DecklistJSON is the parse endpoint result.
type DecklistJSON struct {
	Entries []EntryJSON `json:"entries"`
	Total   int         `json:"total"`
}

func presentCard(e cards.Entity) CardJSON {
	switch c := e.(type) {
	case cards.Creature:
		return CardJSON{
			Kind: kindCreature, Name: c.Name, ManaCost: c.ManaCost, Typeline: c.Typeline,
			Text: c.Text, Power: c.Power, Toughness: c.Toughness,
		}
	case cards.Planeswalker:
		return CardJSON{
			Kind: kindPlaneswalker, Name: c.Name, ManaCost: c.ManaCost, Typeline: c.Typeline,
			Text: c.Text, Loyalty: c.Loyalty,
		}
	case cards.Plain:
		return CardJSON{Kind: kindPlain, Name: c.Name, ManaCost: c.ManaCost, Typeline: c.Typeline, Text: c.Text}
	case cards.TwoPart:
		return CardJSON{
			Kind:        kindTwoPart,
			Name:        c.CardName(),
			TwoPartKind: c.Kind.String(),
			Faces:       []CardJSON{presentCard(c.First), presentCard(c.Second)},
		}
	case cards.Unimplemented:
		return CardJSON{Kind: kindUnimplemented, Name: c.Name, Layout: c.Layout}
	}
	return CardJSON{Name: e.CardName()}
}
