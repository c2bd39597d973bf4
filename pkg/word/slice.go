package word

import (
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
)

// Slice is the part of a word from a start position to the end, seen
// through a filter.
type Slice struct {
	word   *Word
	start  *node
	filter feature.Matcher
}

// Start returns the segment the slice begins at.
func (s *Slice) Start() *Segment { return s.start.seg }

// Cursor opens a read-only cursor positioned before the start.
func (s *Slice) Cursor() Cursor { return s.MutableCursor() }

// MutableCursor opens an editing cursor positioned before the start. The
// start segment must still be part of the word.
func (s *Slice) MutableCursor() MutableCursor {
	if !s.start.attached() {
		panic(errors.New(errors.ErrSegmentDeleted, "slice start was removed from the word"))
	}
	return &cursor{
		word:   s.word,
		filter: s.filter,
		start:  s.start,
		node:   s.start,
		pos:    posBefore,
	}
}

func (s *Slice) String() string {
	var b strings.Builder
	for n := s.start; n != nil; n = succ(n) {
		if n.attached() {
			b.WriteString(n.seg.String())
		}
	}
	return b.String()
}

// SliceIterator enumerates the slices of a word in one direction.
type SliceIterator struct {
	word    *Word
	dir     Direction
	filter  feature.Matcher
	started bool
	last    *node
	lastPre *node
	slice   *Slice
}

// Slices returns an iterator over every filter-passing start position in
// direction dir. A nil filter passes everything. Edits made while a slice
// is in use are honoured: the next start is the neighbour of the previous
// start as the word stands after the edit, or, if the previous start was
// removed, the neighbour it had before.
func (w *Word) Slices(dir Direction, filter feature.Matcher) *SliceIterator {
	if filter == nil {
		filter = feature.AlwaysMatches
	}
	return &SliceIterator{word: w, dir: dir, filter: filter}
}

func (it *SliceIterator) step(n *node) *node {
	if it.dir == Leftward {
		return n.prev
	}
	return n.next
}

// Next advances to the next slice.
func (it *SliceIterator) Next() bool {
	var n *node
	switch {
	case !it.started:
		it.started = true
		if it.dir == Leftward {
			n = it.word.tail
		} else {
			n = it.word.head
		}
	case it.last == nil:
		return false
	case it.last.attached():
		n = it.step(it.last)
	default:
		n = it.lastPre
		for n != nil && !n.attached() {
			n = it.step(n)
		}
	}

	for n != nil {
		pre := it.step(n)
		if it.filter.Matches(feature.NewContext(), n.seg) {
			it.last, it.lastPre = n, pre
			it.slice = &Slice{word: it.word, start: n, filter: it.filter}
			return true
		}
		n = pre
	}
	it.last, it.slice = nil, nil
	return false
}

// Slice returns the current slice.
func (it *SliceIterator) Slice() *Slice { return it.slice }
