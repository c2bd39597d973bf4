package feature

import (
	"fmt"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/tier"
)

// Matcher decides whether a segment satisfies a pattern position. Values,
// tier predicates and whole brackets are all matchers.
type Matcher interface {
	Matches(ctx *Context, seg Segment) bool
}

// MatchFunc adapts a function to Matcher.
type MatchFunc func(ctx *Context, seg Segment) bool

func (fn MatchFunc) Matches(ctx *Context, seg Segment) bool { return fn(ctx, seg) }

// MatrixMatcher matches when every item matches.
type MatrixMatcher struct {
	items   []Matcher
	never   bool
	negated bool
	label   string
}

var (
	// AlwaysMatches accepts every segment.
	AlwaysMatches = &MatrixMatcher{label: "[]"}
	// NeverMatches rejects every segment.
	NeverMatches = &MatrixMatcher{never: true, label: "[never]"}
)

// NewMatrixMatcher builds a conjunction of items.
func NewMatrixMatcher(items ...Matcher) *MatrixMatcher {
	return &MatrixMatcher{items: append([]Matcher(nil), items...)}
}

// MatcherFromMatrix matches segments carrying all of m's values.
func MatcherFromMatrix(m *Matrix) *MatrixMatcher {
	vals := m.Values()
	items := make([]Matcher, len(vals))
	for i, v := range vals {
		items[i] = v
	}
	return NewMatrixMatcher(items...)
}

// Negate returns a matcher accepting exactly what m rejects.
func (m *MatrixMatcher) Negate() *MatrixMatcher {
	return &MatrixMatcher{items: m.items, never: m.never, negated: !m.negated}
}

// WithLabel sets the text String reports, e.g. a symbol name.
func (m *MatrixMatcher) WithLabel(label string) *MatrixMatcher {
	c := *m
	c.label = label
	return &c
}

// Items returns the conditions of the conjunction.
func (m *MatrixMatcher) Items() []Matcher { return append([]Matcher(nil), m.items...) }

func (m *MatrixMatcher) Matches(ctx *Context, seg Segment) bool {
	result := m.conjunction(ctx, seg)
	if m.negated {
		return !result
	}
	return result
}

func (m *MatrixMatcher) conjunction(ctx *Context, seg Segment) bool {
	if m.never || seg == nil {
		return false
	}
	for _, item := range m.items {
		if !item.Matches(ctx, seg) {
			return false
		}
	}
	return true
}

func (m *MatrixMatcher) String() string {
	var b strings.Builder
	if m.negated {
		b.WriteString("!")
	}
	if m.label != "" {
		b.WriteString(m.label)
		return b.String()
	}
	b.WriteString("[")
	for i, item := range m.items {
		if i > 0 {
			b.WriteString(" ")
		}
		if s, ok := item.(fmt.Stringer); ok {
			b.WriteString(s.String())
		}
	}
	b.WriteString("]")
	return b.String()
}

// TierMatcher turns a tier predicate into a Matcher.
type TierMatcher tier.Predicate

func (t TierMatcher) Matches(_ *Context, seg Segment) bool {
	return tier.Predicate(t).Test(seg)
}

func (t TierMatcher) String() string { return tier.Predicate(t).String() }
