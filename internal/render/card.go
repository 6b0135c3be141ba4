// Package render turns resolved card entities into printable markup.
package render

import (
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/ramonehamilton/proxygen/internal/cards"
)

// Reminder text is the parenthesised explanation printed in italics.
var reminderText = regexp.MustCompile(`\([^()]+\)`)

// HTML renders a single proxy for e.
func HTML(e cards.Entity) template.HTML {
	var b strings.Builder

	switch c := e.(type) {
	case cards.TwoPart:
		fmt.Fprintf(&b, `<div class="card two-part %s">`, c.Kind)
		fmt.Fprintf(&b, `<p class="kind">%s</p>`, html.EscapeString(kindLabel(c.Kind)))
		writeFace(&b, c.First)
		b.WriteString(`<hr>`)
		writeFace(&b, c.Second)
		b.WriteString(`</div>`)
	case cards.Unimplemented:
		b.WriteString(`<div class="card unimplemented">`)
		fmt.Fprintf(&b, `<p><b>%s</b></p>`, html.EscapeString(c.Name))
		fmt.Fprintf(&b, `<p class="placeholder">The %s layout is not yet supported.</p>`, html.EscapeString(c.Layout))
		b.WriteString(`</div>`)
	default:
		b.WriteString(`<div class="card">`)
		writeFace(&b, e)
		b.WriteString(`</div>`)
	}

	return template.HTML(b.String())
}

func writeFace(b *strings.Builder, e cards.Entity) {
	var name, cost, typeline, text, corner string

	switch c := e.(type) {
	case cards.Creature:
		name, cost, typeline, text = c.Name, c.ManaCost, c.Typeline, c.Text
		if c.Power != "" || c.Toughness != "" {
			corner = c.Power + "/" + c.Toughness
		}
	case cards.Planeswalker:
		name, cost, typeline, text = c.Name, c.ManaCost, c.Typeline, c.Text
		corner = c.Loyalty
	case cards.Plain:
		name, cost, typeline, text = c.Name, c.ManaCost, c.Typeline, c.Text
	default:
		name = e.CardName()
	}

	fmt.Fprintf(b, `<p class="title"><b>%s</b> %s</p>`, html.EscapeString(name), html.EscapeString(cost))
	fmt.Fprintf(b, `<p class="typeline">%s</p>`, formatTypeline(typeline))
	fmt.Fprintf(b, `<p class="text">%s</p>`, formatText(text))
	fmt.Fprintf(b, `<p class="corner" style="text-align: right;">%s</p>`, html.EscapeString(corner))
}

func formatTypeline(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "—", "&mdash;")
}

func formatText(s string) string {
	s = html.EscapeString(s)
	s = reminderText.ReplaceAllString(s, "<i>$0</i>")
	return strings.ReplaceAll(s, "\n", "<br>")
}

func kindLabel(k cards.TwoPartKind) string {
	switch k {
	case cards.DoubleFaced:
		return "Double-faced"
	case cards.Split:
		return "Split"
	case cards.Flip:
		return "Flip"
	case cards.Meld:
		return "Meld"
	}
	return k.String()
}
