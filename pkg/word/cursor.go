package word

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
)

// Cursor walks a slice without changing it. MoveNext and MovePrev skip
// positions the slice's filter rejects. IsFirst and IsLast always refer to
// the whole word, not the filtered view.
type Cursor interface {
	MoveNext() bool
	MovePrev() bool
	// Current panics unless the cursor rests on a live segment.
	Current() *Segment
	IsFirst() bool
	IsLast() bool
	Valid() bool
	Mark() Mark
	Revert(m Mark)
}

// MutableCursor is a Cursor that can edit the word in place.
type MutableCursor interface {
	Cursor
	SetCurrent(m *feature.Matrix)
	InsertBefore(m *feature.Matrix)
	InsertAfter(m *feature.Matrix)
	Delete()
}

type position uint8

const (
	// posBefore: not yet advanced; the next MoveNext lands on node itself.
	posBefore position = iota
	posOn
	posAfterEnd
	posBeforeStart
)

// Mark is a saved cursor position.
type Mark struct {
	node  *node
	pos   position
	start *node
}

type cursor struct {
	word   *Word
	filter feature.Matcher
	start  *node
	node   *node
	pos    position
}

func (c *cursor) passes(n *node) bool {
	if c.filter == nil {
		return true
	}
	return c.filter.Matches(feature.NewContext(), n.seg)
}

func (c *cursor) MoveNext() bool {
	var n *node
	switch c.pos {
	case posAfterEnd:
		return false
	case posBefore:
		n = c.node
		if !n.attached() {
			n = succ(n)
		}
	case posBeforeStart:
		n = c.word.head
	case posOn:
		n = succ(c.node)
	}

	for n != nil && !c.passes(n) {
		n = n.next
	}
	if n == nil {
		c.node, c.pos = nil, posAfterEnd
		return false
	}
	c.node, c.pos = n, posOn
	return true
}

func (c *cursor) MovePrev() bool {
	var n *node
	switch c.pos {
	case posBeforeStart:
		return false
	case posAfterEnd:
		n = c.word.tail
	default:
		n = pred(c.node)
	}

	for n != nil && !c.passes(n) {
		n = n.prev
	}
	if n == nil {
		c.node, c.pos = nil, posBeforeStart
		return false
	}
	c.node, c.pos = n, posOn
	return true
}

func (c *cursor) check(op string) {
	if c.pos != posOn {
		panic(errors.Newf(errors.ErrInvalidState, "%s called while the cursor is not on a segment", op))
	}
}

func (c *cursor) checkLive(op string) {
	c.check(op)
	if !c.node.attached() {
		panic(errors.Newf(errors.ErrSegmentDeleted, "%s called on a deleted segment", op))
	}
}

func (c *cursor) Current() *Segment {
	c.checkLive("Current")
	return c.node.seg
}

func (c *cursor) IsFirst() bool {
	c.check("IsFirst")
	return c.node == c.word.head
}

func (c *cursor) IsLast() bool {
	c.check("IsLast")
	return c.node == c.word.tail
}

func (c *cursor) Valid() bool {
	return c.pos == posOn && c.node.attached()
}

func (c *cursor) Mark() Mark {
	return Mark{node: c.node, pos: c.pos, start: c.start}
}

func (c *cursor) Revert(m Mark) {
	c.node, c.pos, c.start = m.node, m.pos, m.start
}

func (c *cursor) SetCurrent(m *feature.Matrix) {
	c.checkLive("SetCurrent")
	c.node.seg.SetMatrix(m)
}

func (c *cursor) InsertBefore(m *feature.Matrix) {
	n := &node{seg: newLeaf(m)}
	switch c.pos {
	case posBefore:
		panic(errors.New(errors.ErrInvalidState, "InsertBefore called before the cursor was advanced"))
	case posAfterEnd:
		c.word.pushBack(n)
	case posBeforeStart:
		c.word.pushFront(n)
	case posOn:
		if c.node.attached() {
			c.word.insertBefore(c.node, n)
			return
		}
		c.word.insertGap(c.node, n)
		c.node.prev = n
	}
}

func (c *cursor) InsertAfter(m *feature.Matrix) {
	n := &node{seg: newLeaf(m)}
	switch c.pos {
	case posAfterEnd:
		panic(errors.New(errors.ErrInvalidState, "InsertAfter called after the cursor ran off the end"))
	case posBefore:
		// Not started yet: "after" the virtual position before start is
		// immediately before start, and the slice now begins there.
		if c.node.attached() {
			c.word.insertBefore(c.node, n)
		} else {
			c.word.insertGap(c.node, n)
		}
		if c.node == c.start {
			c.start = n
		}
		c.node = n
	case posBeforeStart:
		c.word.pushFront(n)
	case posOn:
		if c.node.attached() {
			c.word.insertAfter(c.node, n)
			return
		}
		c.word.insertGap(c.node, n)
		c.node.next = n
	}
}

func (c *cursor) Delete() {
	c.checkLive("Delete")
	c.word.remove(c.node)
}
