package cards

// Entity is a resolved, renderable card. The concrete type is one of
// Creature, Planeswalker, Plain, TwoPart or Unimplemented.
type Entity interface {
	CardName() string
	entity()
}

// Creature is a single-faced card whose types include Creature.
type Creature struct {
	Name      string
	ManaCost  string
	Typeline  string
	Text      string
	Power     string
	Toughness string
}

// Planeswalker is a single-faced card whose types include Planeswalker.
type Planeswalker struct {
	Name     string
	ManaCost string
	Typeline string
	Text     string
	Loyalty  string
}

// Plain is any other single-faced card.
type Plain struct {
	Name     string
	ManaCost string
	Typeline string
	Text     string
}

// TwoPartKind identifies how the halves of a TwoPart card relate.
type TwoPartKind int

const (
	DoubleFaced TwoPartKind = iota + 1
	Split
	Flip
	Meld
)

func (k TwoPartKind) String() string {
	switch k {
	case DoubleFaced:
		return "double-faced"
	case Split:
		return "split"
	case Flip:
		return "flip"
	case Meld:
		return "meld"
	}
	return "unknown"
}

func twoPartKind(l Layout) TwoPartKind {
	switch l {
	case LayoutDoubleFaced:
		return DoubleFaced
	case LayoutSplit:
		return Split
	case LayoutFlip:
		return Flip
	case LayoutMeld:
		return Meld
	}
	return 0
}

// TwoPart is a composite card. First and Second are always single-faced
// entities; a TwoPart never nests another TwoPart.
type TwoPart struct {
	Kind   TwoPartKind
	First  Entity
	Second Entity
}

// Unimplemented stands in for a record whose layout cannot be rendered yet.
type Unimplemented struct {
	Name   string
	Layout string
}

func (c Creature) CardName() string      { return c.Name }
func (c Planeswalker) CardName() string  { return c.Name }
func (c Plain) CardName() string         { return c.Name }
func (c Unimplemented) CardName() string { return c.Name }

// CardName joins the names of both halves, "Fire // Ice".
func (c TwoPart) CardName() string {
	return c.First.CardName() + " // " + c.Second.CardName()
}

func (Creature) entity()      {}
func (Planeswalker) entity()  {}
func (Plain) entity()         {}
func (TwoPart) entity()       {}
func (Unimplemented) entity() {}
