package word

import (
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
)

type node struct {
	seg  *Segment
	prev *node
	next *node
	word *Word
}

func (n *node) attached() bool { return n.word != nil }

// succ returns the first attached node after n. For a removed node this
// follows the links it had when it was removed.
func succ(n *node) *node {
	p := n.next
	for p != nil && !p.attached() {
		p = p.next
	}
	return p
}

// pred is the leftward counterpart of succ.
func pred(n *node) *node {
	p := n.prev
	for p != nil && !p.attached() {
		p = p.prev
	}
	return p
}

// Word is an ordered, mutable sequence of segments.
type Word struct {
	head *node
	tail *node
	size int
}

// New builds a word from a sequence of matrices.
func New(matrices []*feature.Matrix) *Word {
	w := &Word{}
	for _, m := range matrices {
		w.pushBack(&node{seg: newLeaf(m)})
	}
	return w
}

// Len returns the number of segments.
func (w *Word) Len() int { return w.size }

// Segments returns the word's segments in order.
func (w *Word) Segments() []*Segment {
	out := make([]*Segment, 0, w.size)
	for n := w.head; n != nil; n = n.next {
		out = append(out, n.seg)
	}
	return out
}

// Matrices returns the word's feature matrices in order.
func (w *Word) Matrices() []*feature.Matrix {
	out := make([]*feature.Matrix, 0, w.size)
	for n := w.head; n != nil; n = n.next {
		out = append(out, n.seg.matrix)
	}
	return out
}

func (w *Word) String() string {
	var b strings.Builder
	for n := w.head; n != nil; n = n.next {
		b.WriteString(n.seg.String())
	}
	return b.String()
}

func (w *Word) pushBack(n *node) {
	n.word = w
	n.next = nil
	n.prev = w.tail
	if w.tail != nil {
		w.tail.next = n
	} else {
		w.head = n
	}
	w.tail = n
	w.size++
}

func (w *Word) pushFront(n *node) {
	n.word = w
	n.prev = nil
	n.next = w.head
	if w.head != nil {
		w.head.prev = n
	} else {
		w.tail = n
	}
	w.head = n
	w.size++
}

func (w *Word) insertAfter(at, n *node) {
	if at.next == nil {
		w.pushBack(n)
		return
	}
	n.word = w
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
	w.size++
}

func (w *Word) insertBefore(at, n *node) {
	if at.prev == nil {
		w.pushFront(n)
		return
	}
	w.insertAfter(at.prev, n)
}

// insertGap places n where the removed node gone used to sit.
func (w *Word) insertGap(gone, n *node) {
	if p := pred(gone); p != nil {
		w.insertAfter(p, n)
		return
	}
	w.pushFront(n)
}

// remove unlinks n from the word. n keeps its prev/next links.
func (w *Word) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		w.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		w.tail = n.prev
	}
	n.word = nil
	w.size--
}
