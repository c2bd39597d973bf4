package feature

import "github.com/NicholasDeLioncourt/phonix/pkg/tier"

// Segment is what a matcher inspects: a matrix plus its tier ancestry.
type Segment interface {
	tier.Node
	Matrix() *Matrix
}

// HasAncestor is always false for a bare matrix; it belongs to no tree.
func (m *Matrix) HasAncestor(*tier.Tier) bool { return false }

var _ Segment = (*Matrix)(nil)
