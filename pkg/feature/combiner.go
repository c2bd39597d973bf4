package feature

import (
	"fmt"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
)

// Combinable produces the values one rewrite item contributes, given the
// matrix being rewritten.
type Combinable interface {
	Values(ctx *Context, m *Matrix) ([]*Value, error)
}

// Combiner rewrites a matrix.
type Combiner interface {
	Combine(ctx *Context, m *Matrix) (*Matrix, error)
}

// MatrixCombiner overlays the values of its items onto a matrix, in order.
type MatrixCombiner struct {
	items []Combinable
	label string
}

// NullCombiner leaves a matrix unchanged.
var NullCombiner = &MatrixCombiner{label: "[]"}

// NewMatrixCombiner builds a combiner from items.
func NewMatrixCombiner(items ...Combinable) *MatrixCombiner {
	return &MatrixCombiner{items: append([]Combinable(nil), items...)}
}

// CombinerFromMatrix overlays all of m's values.
func CombinerFromMatrix(m *Matrix) *MatrixCombiner {
	vals := m.Values()
	items := make([]Combinable, len(vals))
	for i, v := range vals {
		items[i] = v
	}
	return NewMatrixCombiner(items...)
}

// WithLabel sets the text String reports.
func (c *MatrixCombiner) WithLabel(label string) *MatrixCombiner {
	cp := *c
	cp.label = label
	return &cp
}

// Combine returns m overlaid with every item's values. The first item
// that fails aborts the rewrite and m is left as it was.
func (c *MatrixCombiner) Combine(ctx *Context, m *Matrix) (*Matrix, error) {
	if m == nil {
		m = EmptyMatrix
	}
	var overlay []*Value
	for _, item := range c.items {
		vals, err := item.Values(ctx, m)
		if err != nil {
			return m, err
		}
		overlay = append(overlay, vals...)
	}
	return m.With(overlay...), nil
}

func (c *MatrixCombiner) String() string {
	if c.label != "" {
		return c.label
	}
	parts := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if s, ok := item.(fmt.Stringer); ok {
			parts = append(parts, s.String())
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ScalarOp adds a delta to the current value of a scalar feature.
type ScalarOp struct {
	feature *Feature
	delta   int
}

// Add returns the combinable "f+=n".
func (f *Feature) Add(n int) ScalarOp {
	f.mustBe(Scalar, "Add")
	return ScalarOp{feature: f, delta: n}
}

// Sub returns the combinable "f-=n".
func (f *Feature) Sub(n int) ScalarOp {
	f.mustBe(Scalar, "Sub")
	return ScalarOp{feature: f, delta: -n}
}

func (op ScalarOp) Values(_ *Context, m *Matrix) ([]*Value, error) {
	cur := m.Get(op.feature)
	if cur.IsNull() {
		return nil, errors.Newf(errors.ErrInvalidScalarOp,
			"cannot apply %s to a segment without %s", op, op.feature.name).
			WithDetail("feature", op.feature.name).
			WithDetail("op", op.String())
	}
	v, err := op.feature.ScalarValue(cur.n + op.delta)
	if err != nil {
		return nil, err
	}
	return []*Value{v}, nil
}

func (op ScalarOp) String() string {
	if op.delta < 0 {
		return fmt.Sprintf("%s-=%d", op.feature.name, -op.delta)
	}
	return fmt.Sprintf("%s+=%d", op.feature.name, op.delta)
}
