package cards

import "strings"

const emDash = "—"

// Resolver turns card names into entities using a shared Store. Resolver
// holds no state beyond the store and is safe for concurrent use.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver backed by store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Store returns the backing store.
func (r *Resolver) Store() *Store {
	return r.store
}

// Resolve looks up name and builds its entity. Composite layouts resolve both
// linked names as single-faced cards. A record with an unsupported layout
// resolves to Unimplemented rather than failing.
func (r *Resolver) Resolve(name string) (Entity, error) {
	key := Sanitize(name)
	rec, ok := r.store.records[key]
	if !ok {
		return nil, nameError(ErrInvalidCardName, key)
	}

	switch kind := rec.Kind(); {
	case kind == LayoutNormal || kind == LayoutLeveler:
		return single(rec), nil
	case kind.Composite():
		return r.composite(rec)
	default:
		return Unimplemented{Name: rec.Name, Layout: rec.Layout}, nil
	}
}

// ResolveNormal resolves name as if its layout were normal, whatever layout
// the record actually has.
func (r *Resolver) ResolveNormal(name string) (Entity, error) {
	key := Sanitize(name)
	rec, ok := r.store.records[key]
	if !ok {
		return nil, nameError(ErrInvalidCardName, key)
	}
	return single(rec), nil
}

func (r *Resolver) composite(rec *RawRecord) (Entity, error) {
	if rec.Names == nil {
		return nil, nameError(ErrMulticardNoNames, rec.Name)
	}
	if len(rec.Names) != 2 {
		return nil, nameError(ErrMulticardMalformedNames, rec.Name)
	}

	first, err := r.ResolveNormal(rec.Names[0])
	if err != nil {
		return nil, err
	}
	second, err := r.ResolveNormal(rec.Names[1])
	if err != nil {
		return nil, err
	}

	return TwoPart{
		Kind:   twoPartKind(rec.Kind()),
		First:  first,
		Second: second,
	}, nil
}

func single(rec *RawRecord) Entity {
	typeline := Typeline(rec.Supertypes, rec.Types, rec.Subtypes)

	switch {
	case rec.hasType("Creature"):
		return Creature{
			Name:      rec.Name,
			ManaCost:  rec.ManaCost,
			Typeline:  typeline,
			Text:      rec.Text,
			Power:     deref(rec.Power),
			Toughness: deref(rec.Toughness),
		}
	case rec.hasType("Planeswalker"):
		loyalty := "0"
		if rec.Loyalty != nil {
			loyalty = string(*rec.Loyalty)
		}
		return Planeswalker{
			Name:     rec.Name,
			ManaCost: rec.ManaCost,
			Typeline: typeline,
			Text:     rec.Text,
			Loyalty:  loyalty,
		}
	default:
		return Plain{
			Name:     rec.Name,
			ManaCost: rec.ManaCost,
			Typeline: typeline,
			Text:     rec.Text,
		}
	}
}

// Typeline joins supertypes and types with spaces, followed by an em-dash and
// the subtypes when there are any: "Legendary Creature — Human Wizard".
func Typeline(supertypes, types, subtypes []string) string {
	parts := make([]string, 0, len(supertypes)+len(types)+1+len(subtypes))
	parts = append(parts, supertypes...)
	parts = append(parts, types...)
	if len(subtypes) > 0 {
		parts = append(parts, emDash)
		parts = append(parts, subtypes...)
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
