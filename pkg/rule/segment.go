package rule

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
)

// Kind identifies a segment variant.
type Kind int

const (
	KindContext Kind = iota
	KindAction
	KindDelete
	KindInsert
	KindStep
	KindBackstep
	KindRepeat
	KindBoundary
)

var kindNames = map[Kind]string{
	KindContext:  "context",
	KindAction:   "action",
	KindDelete:   "delete",
	KindInsert:   "insert",
	KindStep:     "step",
	KindBackstep: "backstep",
	KindRepeat:   "repeat",
	KindBoundary: "boundary",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Unbounded is the max count of a repeat with no upper limit.
const Unbounded = -1

// Segment is one element of a rule pattern.
type Segment struct {
	kind    Kind
	match   feature.Matcher
	combine feature.Combiner
	inner   []*Segment
	min     int
	max     int
	left    bool
}

// Context matches one position and leaves it unchanged.
func Context(m feature.Matcher) *Segment {
	return &Segment{kind: KindContext, match: m}
}

// Action matches one position and rewrites it with c.
func Action(m feature.Matcher, c feature.Combiner) *Segment {
	return &Segment{kind: KindAction, match: m, combine: c}
}

// Deleting matches one position and removes it.
func Deleting(m feature.Matcher) *Segment {
	return &Segment{kind: KindDelete, match: m}
}

// Inserting consumes nothing and inserts c applied to an empty matrix.
func Inserting(c feature.Combiner) *Segment {
	return &Segment{kind: KindInsert, combine: c}
}

// Step advances one position without testing it.
func Step() *Segment { return &Segment{kind: KindStep} }

// Backstep moves back one position. It fails when the cursor has not yet
// entered the word.
func Backstep() *Segment { return &Segment{kind: KindBackstep} }

// Repeat matches inner between min and max times. Use Unbounded for max
// to allow any number of repetitions.
func Repeat(inner []*Segment, min, max int) (*Segment, error) {
	if len(inner) == 0 {
		return nil, errors.New(errors.ErrRuleInvalid, "repeat has no inner segments")
	}
	if min < 0 || (max != Unbounded && (max < 0 || max < min)) {
		return nil, errors.Newf(errors.ErrRuleInvalid, "repeat bounds {%d,%d} are invalid", min, max).
			WithDetail("min", min).
			WithDetail("max", max)
	}
	for _, s := range inner {
		if s == nil {
			return nil, errors.New(errors.ErrRuleInvalid, "repeat has a nil inner segment")
		}
	}
	return &Segment{
		kind:  KindRepeat,
		inner: append([]*Segment(nil), inner...),
		min:   min,
		max:   max,
	}, nil
}

// The two word boundaries. Compare against these by identity.
var (
	LeftBoundary  = &Segment{kind: KindBoundary, left: true}
	RightBoundary = &Segment{kind: KindBoundary}
)

func (s *Segment) Kind() Kind { return s.kind }

// Inner returns the pattern of a repeat segment.
func (s *Segment) Inner() []*Segment { return append([]*Segment(nil), s.inner...) }

// Bounds returns the min and max count of a repeat segment.
func (s *Segment) Bounds() (min, max int) { return s.min, s.max }

// IsMatchOnly reports whether the segment never edits the word.
func (s *Segment) IsMatchOnly() bool {
	switch s.kind {
	case KindAction, KindDelete, KindInsert:
		return false
	case KindRepeat:
		for _, in := range s.inner {
			if !in.IsMatchOnly() {
				return false
			}
		}
	}
	return true
}

// MatchString renders what the segment matches.
func (s *Segment) MatchString() string {
	switch s.kind {
	case KindContext, KindAction, KindDelete:
		return stringOf(s.match)
	case KindInsert:
		return "*"
	case KindBoundary:
		return "$"
	case KindRepeat:
		var b strings.Builder
		for _, in := range s.inner {
			b.WriteString(in.MatchString())
		}
		return s.quantify(b.String())
	}
	return ""
}

// CombineString renders what the segment leaves behind.
func (s *Segment) CombineString() string {
	switch s.kind {
	case KindAction, KindInsert:
		return stringOf(s.combine)
	case KindDelete:
		return "*"
	case KindRepeat:
		var b strings.Builder
		for _, in := range s.inner {
			b.WriteString(in.CombineString())
		}
		return s.quantify(b.String())
	}
	return s.MatchString()
}

func (s *Segment) quantify(body string) string {
	q := ""
	switch {
	case s.min == 0 && s.max == Unbounded:
		q = "*"
	case s.min == 1 && s.max == Unbounded:
		q = "+"
	case s.min == 0 && s.max == 1:
	case s.max == Unbounded:
		q = fmt.Sprintf("{%d,}", s.min)
	default:
		q = fmt.Sprintf("{%d,%d}", s.min, s.max)
	}
	return "(" + body + ")" + q
}

func (s *Segment) String() string {
	if s.IsMatchOnly() {
		return s.MatchString()
	}
	return s.MatchString() + " => " + s.CombineString()
}

func stringOf(v interface{}) string {
	if st, ok := v.(fmt.Stringer); ok {
		return st.String()
	}
	return "?"
}

// Matches runs the segment's match step on cur.
func (s *Segment) Matches(ctx *feature.Context, cur word.Cursor) bool {
	return matchSeq(ctx, cur, []*Segment{s}, accept)
}

// Combine runs the segment's rewrite step on cur. Recoverable rewrite
// errors do not stop the step; they are joined into the returned error.
func (s *Segment) Combine(ctx *feature.Context, cur word.MutableCursor) error {
	var errs []error
	s.apply(ctx, cur, func(err error) { errs = append(errs, err) })
	return stderrors.Join(errs...)
}

func accept() bool { return true }

// matchSeq matches segs in order and then calls k. A repeat tries its
// counts from the largest down, each time handing the rest of the pattern
// to k, so a later failure can make an earlier repeat give ground.
func matchSeq(ctx *feature.Context, cur word.Cursor, segs []*Segment, k func() bool) bool {
	if len(segs) == 0 {
		return k()
	}
	s, rest := segs[0], segs[1:]
	next := func() bool { return matchSeq(ctx, cur, rest, k) }

	if s.kind == KindRepeat {
		slot := ctx.ReserveChoice()
		return s.matchRepeat(ctx, cur, slot, 0, next)
	}
	if !s.matchStep(ctx, cur) {
		return false
	}
	return next()
}

// matchRepeat has already matched n iterations. It first tries one more,
// then falls back to stopping at n.
func (s *Segment) matchRepeat(ctx *feature.Context, cur word.Cursor, slot, n int, k func() bool) bool {
	if s.max == Unbounded || n < s.max {
		mark := cur.Mark()
		cp := ctx.Checkpoint()
		more := matchSeq(ctx, cur, s.inner, func() bool {
			if cur.Mark() == mark {
				// an iteration that consumes nothing would repeat forever
				return false
			}
			return s.matchRepeat(ctx, cur, slot, n+1, k)
		})
		if more {
			return true
		}
		cur.Revert(mark)
		ctx.Rollback(cp)
	}
	if n < s.min {
		return false
	}
	ctx.SetChoice(slot, n)
	return k()
}

func (s *Segment) matchStep(ctx *feature.Context, cur word.Cursor) bool {
	switch s.kind {
	case KindContext, KindAction, KindDelete:
		return cur.MoveNext() && s.match.Matches(ctx, cur.Current())

	case KindInsert:
		return true

	case KindStep:
		return cur.MoveNext()

	case KindBackstep:
		if cur.MoveNext() && cur.IsFirst() {
			cur.MovePrev()
			return false
		}
		cur.MovePrev()
		cur.MovePrev()
		return true

	case KindBoundary:
		if s.left {
			if cur.MoveNext() && cur.IsFirst() {
				cur.MovePrev()
				return true
			}
			return false
		}
		return cur.Valid() && cur.IsLast() && !cur.MoveNext()
	}
	return false
}

// apply is the combine step. report receives recoverable rewrite errors.
func (s *Segment) apply(ctx *feature.Context, cur word.MutableCursor, report func(error)) {
	switch s.kind {
	case KindContext, KindStep:
		cur.MoveNext()

	case KindAction:
		if !cur.MoveNext() {
			return
		}
		m, err := s.combine.Combine(ctx, cur.Current().Matrix())
		if err != nil {
			report(err)
			return
		}
		cur.SetCurrent(m)

	case KindDelete:
		if cur.MoveNext() {
			cur.Delete()
		}

	case KindInsert:
		m, err := s.combine.Combine(ctx, feature.EmptyMatrix)
		if err != nil {
			report(err)
			return
		}
		cur.InsertAfter(m)
		cur.MoveNext()

	case KindBackstep:
		s.matchStep(ctx, cur)

	case KindRepeat:
		n, ok := ctx.NextChoice()
		if !ok {
			n = s.count(ctx, cur)
		}
		for i := 0; i < n; i++ {
			for _, in := range s.inner {
				in.apply(ctx, cur, report)
			}
		}
	}
}

// count works out the repeat count when no match pass recorded one, by
// matching greedily from the current position and then stepping back.
func (s *Segment) count(ctx *feature.Context, cur word.Cursor) int {
	mark := cur.Mark()
	slot := ctx.ReserveChoice()
	s.matchRepeat(ctx, cur, slot, 0, accept)
	cur.Revert(mark)
	ctx.SkipChoices(slot + 1)
	if n := ctx.Choice(slot); n > 0 {
		return n
	}
	return 0
}
