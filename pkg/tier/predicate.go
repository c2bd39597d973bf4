package tier

import "fmt"

// Node is anything that can report its position in the tier hierarchy.
type Node interface {
	HasAncestor(t *Tier) bool
}

// Predicate tests whether a node has (or lacks) a given tier ancestor.
type Predicate struct {
	tier *Tier
	want bool
}

// Tier returns the tier the predicate tests for.
func (p Predicate) Tier() *Tier { return p.tier }

// Negated reports whether the predicate matches nodes lacking the tier.
func (p Predicate) Negated() bool { return !p.want }

// Test applies the predicate to n.
func (p Predicate) Test(n Node) bool {
	if p.tier == nil || n == nil {
		return false
	}
	return n.HasAncestor(p.tier) == p.want
}

func (p Predicate) String() string {
	if p.want {
		return fmt.Sprintf("<%s>", p.tier)
	}
	return fmt.Sprintf("<*%s>", p.tier)
}

// ParsePredicate reads the bracketed form produced by String.
func ParsePredicate(s string) (Predicate, bool) {
	if len(s) < 3 || s[0] != '<' || s[len(s)-1] != '>' {
		return Predicate{}, false
	}
	body := s[1 : len(s)-1]
	want := true
	if body != "" && body[0] == '*' {
		want = false
		body = body[1:]
	}
	t, ok := Lookup(body)
	if !ok {
		return Predicate{}, false
	}
	if want {
		return t.Has(), true
	}
	return t.Lacks(), true
}
