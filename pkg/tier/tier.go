package tier

import (
	"strings"
)

// Tier is one node of the syllable-structure hierarchy.
type Tier struct {
	name     string
	children []*Tier
	parents  []*Tier
	has      Predicate
	lacks    Predicate
}

// Hierarchy is the complete set of tiers, in leaf-first order.
type Hierarchy struct {
	Segment  *Tier
	Onset    *Tier
	Nucleus  *Tier
	Coda     *Tier
	Rime     *Tier
	Syllable *Tier

	all []*Tier
}

// build creates the tier graph. Children are always created before the
// tiers that contain them.
func build() *Hierarchy {
	h := &Hierarchy{}
	h.Segment = h.add("segment")
	h.Onset = h.add("onset", h.Segment)
	h.Nucleus = h.add("nucleus", h.Segment)
	h.Coda = h.add("coda", h.Segment)
	h.Rime = h.add("rime", h.Nucleus, h.Coda)
	h.Syllable = h.add("syllable", h.Onset, h.Rime)
	return h
}

func (h *Hierarchy) add(name string, children ...*Tier) *Tier {
	t := &Tier{name: name}
	for _, child := range children {
		if child.HasParent(t) {
			continue
		}
		t.children = append(t.children, child)
		child.parents = append(child.parents, t)
	}
	t.has = Predicate{tier: t, want: true}
	t.lacks = Predicate{tier: t, want: false}
	h.all = append(h.all, t)
	return t
}

var std = build()

// The process-wide tiers.
var (
	Segment  = std.Segment
	Onset    = std.Onset
	Nucleus  = std.Nucleus
	Coda     = std.Coda
	Rime     = std.Rime
	Syllable = std.Syllable
)

// All returns every tier, leaves first.
func All() []*Tier {
	out := make([]*Tier, len(std.all))
	copy(out, std.all)
	return out
}

// Lookup finds a tier by name, case-insensitively.
func Lookup(name string) (*Tier, bool) {
	for _, t := range std.all {
		if strings.EqualFold(t.name, name) {
			return t, true
		}
	}
	return nil, false
}

// Name returns the tier name.
func (t *Tier) Name() string { return t.name }

func (t *Tier) String() string { return t.name }

// Children returns the tiers directly below t.
func (t *Tier) Children() []*Tier { return append([]*Tier(nil), t.children...) }

// Parents returns the tiers directly above t.
func (t *Tier) Parents() []*Tier { return append([]*Tier(nil), t.parents...) }

// HasChild reports whether o is a direct child of t.
func (t *Tier) HasChild(o *Tier) bool {
	for _, c := range t.children {
		if c == o {
			return true
		}
	}
	return false
}

// HasParent reports whether o is a direct parent of t.
func (t *Tier) HasParent(o *Tier) bool {
	for _, p := range t.parents {
		if p == o {
			return true
		}
	}
	return false
}

// HasAncestor reports whether o is above t at any distance.
func (t *Tier) HasAncestor(o *Tier) bool {
	if t.HasParent(o) {
		return true
	}
	for _, p := range t.parents {
		if p.HasAncestor(o) {
			return true
		}
	}
	return false
}

// HasDescendant reports whether o is below t at any distance.
func (t *Tier) HasDescendant(o *Tier) bool {
	if t.HasChild(o) {
		return true
	}
	for _, c := range t.children {
		if c.HasDescendant(o) {
			return true
		}
	}
	return false
}

// Has returns the predicate matching nodes that sit under t.
func (t *Tier) Has() Predicate { return t.has }

// Lacks returns the predicate matching nodes that do not sit under t.
func (t *Tier) Lacks() Predicate { return t.lacks }
