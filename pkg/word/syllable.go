package word

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/tier"
)

// Syllable groups word segments into onset, nucleus and coda.
type Syllable struct {
	onset   []*Segment
	nucleus []*Segment
	coda    []*Segment
}

// NewSyllable copies the member lists.
func NewSyllable(onset, nucleus, coda []*Segment) *Syllable {
	return &Syllable{
		onset:   append([]*Segment(nil), onset...),
		nucleus: append([]*Segment(nil), nucleus...),
		coda:    append([]*Segment(nil), coda...),
	}
}

func (s *Syllable) Onset() []*Segment   { return append([]*Segment(nil), s.onset...) }
func (s *Syllable) Nucleus() []*Segment { return append([]*Segment(nil), s.nucleus...) }
func (s *Syllable) Coda() []*Segment    { return append([]*Segment(nil), s.coda...) }

// Segments returns onset, nucleus and coda members in order.
func (s *Syllable) Segments() []*Segment {
	out := make([]*Segment, 0, len(s.onset)+len(s.nucleus)+len(s.coda))
	out = append(out, s.onset...)
	out = append(out, s.nucleus...)
	return append(out, s.coda...)
}

// Overlaps reports whether the syllables share any segment.
func (s *Syllable) Overlaps(o *Syllable) bool {
	mine := make(map[*Segment]struct{})
	for _, seg := range s.Segments() {
		mine[seg] = struct{}{}
	}
	for _, seg := range o.Segments() {
		if _, ok := mine[seg]; ok {
			return true
		}
	}
	return false
}

// Equal reports whether both syllables hold the same segments in order.
func (s *Syllable) Equal(o *Syllable) bool {
	a, b := s.Segments(), o.Segments()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BuildSupraSegments detaches every member from its current syllable and
// builds a fresh onset/nucleus/coda/rime/syllable tree over them. The
// returned syllable segment is new on every call.
func (s *Syllable) BuildSupraSegments() *Segment {
	for _, seg := range s.Segments() {
		seg.Detach(tier.Syllable)
	}

	onset := group(tier.Onset, s.onset...)
	nucleus := group(tier.Nucleus, s.nucleus...)
	coda := group(tier.Coda, s.coda...)
	rime := group(tier.Rime, nucleus, coda)
	return group(tier.Syllable, onset, rime)
}

// group cannot fail: every call pairs a tier with its own children.
func group(t *tier.Tier, children ...*Segment) *Segment {
	seg, err := NewSegment(t, feature.EmptyMatrix, children...)
	if err != nil {
		panic(err)
	}
	return seg
}
