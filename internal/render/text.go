package render

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/decklist"
)

// Text renders e as plain text for terminals.
func Text(e cards.Entity) string {
	var b strings.Builder

	switch c := e.(type) {
	case cards.TwoPart:
		fmt.Fprintf(&b, "[%s]\n", kindLabel(c.Kind))
		writeTextFace(&b, c.First)
		b.WriteString("----\n")
		writeTextFace(&b, c.Second)
	case cards.Unimplemented:
		fmt.Fprintf(&b, "%s\n(%s layout not yet supported)\n", c.Name, c.Layout)
	default:
		writeTextFace(&b, e)
	}

	return b.String()
}

func writeTextFace(b *strings.Builder, e cards.Entity) {
	line := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}

	switch c := e.(type) {
	case cards.Creature:
		line(strings.TrimSpace(c.Name + " " + c.ManaCost))
		line(c.Typeline)
		line(c.Text)
		if c.Power != "" || c.Toughness != "" {
			line(c.Power + "/" + c.Toughness)
		}
	case cards.Planeswalker:
		line(strings.TrimSpace(c.Name + " " + c.ManaCost))
		line(c.Typeline)
		line(c.Text)
		line("Loyalty: " + c.Loyalty)
	case cards.Plain:
		line(strings.TrimSpace(c.Name + " " + c.ManaCost))
		line(c.Typeline)
		line(c.Text)
	default:
		line(e.CardName())
	}
}

// TextList renders a resolved decklist, one "count name" line per entry.
func TextList(entries []decklist.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d %s\n", e.Count, e.Entity.CardName())
	}
	return b.String()
}
