package word

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/tier"
)

// Syllabifier assigns word segments to syllables. Each maximal run of
// nucleus segments forms one nucleus; it takes as long an onset as the
// preceding onset segments allow, and the coda segments that follow it up
// to the next onset.
type Syllabifier struct {
	Onset   feature.Matcher
	Nucleus feature.Matcher
	Coda    feature.Matcher
}

func matches(m feature.Matcher, seg *Segment) bool {
	return m != nil && m.Matches(feature.NewContext(), seg)
}

// Apply clears any existing syllable structure on w and rebuilds it. It
// returns the syllables in word order.
func (s *Syllabifier) Apply(w *Word) []*Syllable {
	segs := w.Segments()
	for _, seg := range segs {
		seg.Detach(tier.Syllable)
	}

	type span struct{ onset, nucStart, nucEnd, codaEnd int }
	var spans []span

	for i := 0; i < len(segs); {
		if !matches(s.Nucleus, segs[i]) {
			i++
			continue
		}
		sp := span{nucStart: i}
		for i < len(segs) && matches(s.Nucleus, segs[i]) {
			i++
		}
		sp.nucEnd = i
		spans = append(spans, sp)
	}

	floor := 0
	for k := range spans {
		sp := &spans[k]
		sp.onset = sp.nucStart
		for sp.onset > floor && matches(s.Onset, segs[sp.onset-1]) {
			sp.onset--
		}
		if k > 0 {
			prev := &spans[k-1]
			prev.codaEnd = prev.nucEnd
			for prev.codaEnd < sp.onset && matches(s.Coda, segs[prev.codaEnd]) {
				prev.codaEnd++
			}
		}
		floor = sp.nucEnd
	}
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		last.codaEnd = last.nucEnd
		for last.codaEnd < len(segs) && matches(s.Coda, segs[last.codaEnd]) {
			last.codaEnd++
		}
	}

	out := make([]*Syllable, 0, len(spans))
	for _, sp := range spans {
		syl := NewSyllable(segs[sp.onset:sp.nucStart], segs[sp.nucStart:sp.nucEnd], segs[sp.nucEnd:sp.codaEnd])
		syl.BuildSupraSegments()
		out = append(out, syl)
	}
	return out
}
