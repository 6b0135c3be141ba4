// Package cards indexes the reference card dataset and resolves card names
// into renderable entities.
package cards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Layout is the structural category of a dataset record.
type Layout int

const (
	LayoutUnsupported Layout = iota
	LayoutNormal
	LayoutLeveler
	LayoutSplit
	LayoutFlip
	LayoutDoubleFaced
	LayoutMeld
)

var layoutNames = map[string]Layout{
	"normal":       LayoutNormal,
	"leveler":      LayoutLeveler,
	"split":        LayoutSplit,
	"flip":         LayoutFlip,
	"double-faced": LayoutDoubleFaced,
	"meld":         LayoutMeld,
}

// ParseLayout maps a dataset layout string to its Layout. Unknown values map
// to LayoutUnsupported.
func ParseLayout(s string) Layout {
	if l, ok := layoutNames[s]; ok {
		return l
	}
	return LayoutUnsupported
}

// Composite reports whether records of this layout are assembled from two
// linked records.
func (l Layout) Composite() bool {
	switch l {
	case LayoutSplit, LayoutFlip, LayoutDoubleFaced, LayoutMeld:
		return true
	}
	return false
}

func (l Layout) String() string {
	for name, v := range layoutNames {
		if v == l {
			return name
		}
	}
	return "unsupported"
}

// RawRecord is one entry of the reference dataset (mtgjson AllCards format).
type RawRecord struct {
	Layout     string   `json:"layout"`
	Name       string   `json:"name"`
	ManaCost   string   `json:"manaCost,omitempty"`
	Supertypes []string `json:"supertypes,omitempty"`
	Types      []string `json:"types,omitempty"`
	Subtypes   []string `json:"subtypes,omitempty"`
	Text       string   `json:"text,omitempty"`
	Power      *string  `json:"power,omitempty"`
	Toughness  *string  `json:"toughness,omitempty"`
	Loyalty    *Loyalty `json:"loyalty,omitempty"`

	// Names lists the linked records of a composite card, in order.
	Names []string `json:"names,omitempty"`

	kind Layout
}

// Kind returns the layout decided when the record was indexed.
func (r *RawRecord) Kind() Layout {
	return r.kind
}

func (r *RawRecord) hasType(t string) bool {
	for _, v := range r.Types {
		if v == t {
			return true
		}
	}
	return false
}

// Loyalty is a planeswalker's starting loyalty. Older dataset dumps encode it
// as a number and newer ones as a string ("X" is legal), so both are accepted.
type Loyalty string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Loyalty) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Loyalty(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("loyalty: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("loyalty %q: %w", n, err)
	}
	*l = Loyalty(n.String())
	return nil
}
