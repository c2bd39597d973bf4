package word

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/tier"
)

// Segment is a node in the supra-segmental tree. Segments on the segment
// tier are the word's phonemes; the tiers above group them into syllables.
// Only the matrix of a segment changes during rule application.
type Segment struct {
	tier     *tier.Tier
	matrix   *feature.Matrix
	children []*Segment
	parents  []*Segment
}

// NewSegment creates a segment on t and attaches children under it.
// Children must sit on a tier directly below t.
func NewSegment(t *tier.Tier, m *feature.Matrix, children ...*Segment) (*Segment, error) {
	if m == nil {
		m = feature.EmptyMatrix
	}
	s := &Segment{tier: t, matrix: m}
	for _, c := range children {
		if err := c.Attach(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newLeaf(m *feature.Matrix) *Segment {
	if m == nil {
		m = feature.EmptyMatrix
	}
	return &Segment{tier: tier.Segment, matrix: m}
}

func (s *Segment) Tier() *tier.Tier { return s.tier }

func (s *Segment) Matrix() *feature.Matrix { return s.matrix }

// SetMatrix replaces the segment's feature matrix.
func (s *Segment) SetMatrix(m *feature.Matrix) {
	if m == nil {
		m = feature.EmptyMatrix
	}
	s.matrix = m
}

func (s *Segment) Children() []*Segment { return append([]*Segment(nil), s.children...) }

func (s *Segment) Parents() []*Segment { return append([]*Segment(nil), s.parents...) }

// HasAncestor reports whether some segment above s sits on tier t.
func (s *Segment) HasAncestor(t *tier.Tier) bool {
	for _, p := range s.parents {
		if p.tier == t || p.HasAncestor(t) {
			return true
		}
	}
	return false
}

// Attach links s under parent.
func (s *Segment) Attach(parent *Segment) error {
	if !parent.tier.HasChild(s.tier) {
		return errors.Newf(errors.ErrInvalidInput,
			"a %s segment cannot contain a %s segment", parent.tier, s.tier)
	}
	for _, p := range s.parents {
		if p == parent {
			return nil
		}
	}
	s.parents = append(s.parents, parent)
	parent.children = append(parent.children, s)
	return nil
}

// Detach unlinks s from every parent on tier t or on a tier below t, so
// that s no longer reports t (or anything between) as an ancestor.
func (s *Segment) Detach(t *tier.Tier) {
	kept := s.parents[:0]
	for _, p := range s.parents {
		if p.tier == t || p.tier.HasAncestor(t) {
			p.removeChild(s)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(s.parents); i++ {
		s.parents[i] = nil
	}
	s.parents = kept
}

func (s *Segment) removeChild(c *Segment) {
	for i, x := range s.children {
		if x == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Segment) String() string { return s.matrix.String() }
