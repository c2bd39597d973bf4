package feature

import (
	"fmt"
	"sync"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
)

// Kind distinguishes the four feature variants.
type Kind int

const (
	Unary Kind = iota
	Binary
	Scalar
	Node
)

func (k Kind) String() string {
	switch k {
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Scalar:
		return "scalar"
	case Node:
		return "node"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{Unary, Binary, Scalar, Node} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Feature is an immutable phonological dimension. Features are created
// through a Set and are only meaningful alongside matrices built from
// that same Set.
type Feature struct {
	name  string
	kind  Kind
	index int

	null     *Value
	variable *Value
	unary    *Value
	plus     *Value
	minus    *Value
	exists   *Value

	bounded  bool
	min, max int
	mu       sync.Mutex
	scalars  map[int]*Value

	children []*Feature
	parent   *Feature
	leaves   []*Feature
}

func (f *Feature) Name() string { return f.name }

func (f *Feature) Kind() Kind { return f.kind }

// Index is the feature's dense position within its Set.
func (f *Feature) Index() int { return f.index }

func (f *Feature) String() string { return f.name }

// Parent returns the node feature directly containing f, if any.
func (f *Feature) Parent() *Feature { return f.parent }

// Children returns the direct children of a node feature.
func (f *Feature) Children() []*Feature { return append([]*Feature(nil), f.children...) }

// Leaves returns the non-node descendants of f in depth-first order. For a
// leaf feature it returns f itself.
func (f *Feature) Leaves() []*Feature {
	if f.kind != Node {
		return []*Feature{f}
	}
	return append([]*Feature(nil), f.leaves...)
}

// Range returns the declared bounds of a scalar feature.
func (f *Feature) Range() (min, max int, bounded bool) {
	return f.min, f.max, f.bounded
}

func (f *Feature) mustBe(kind Kind, what string) {
	if f.kind != kind {
		panic(errors.Newf(errors.ErrInvalidInput,
			"%s is not defined for %s feature %s", what, f.kind, f.name))
	}
}

// UnaryValue is the single value of a unary feature.
func (f *Feature) UnaryValue() *Value {
	f.mustBe(Unary, "UnaryValue")
	return f.unary
}

// PlusValue is the positive value of a binary feature.
func (f *Feature) PlusValue() *Value {
	f.mustBe(Binary, "PlusValue")
	return f.plus
}

// MinusValue is the negative value of a binary feature.
func (f *Feature) MinusValue() *Value {
	f.mustBe(Binary, "MinusValue")
	return f.minus
}

// ExistsValue matches a segment carrying every leaf below a node feature.
func (f *Feature) ExistsValue() *Value {
	f.mustBe(Node, "ExistsValue")
	return f.exists
}

// NullValue is the absent value of f.
func (f *Feature) NullValue() *Value { return f.null }

// VariableValue is the variable over f.
func (f *Feature) VariableValue() *Value { return f.variable }

// ScalarValue returns the interned value of magnitude n. A magnitude outside
// the declared range is a SCALAR_RANGE error.
func (f *Feature) ScalarValue(n int) (*Value, error) {
	f.mustBe(Scalar, "ScalarValue")
	if f.bounded && (n < f.min || n > f.max) {
		return nil, errors.Newf(errors.ErrScalarRange,
			"value %d is outside the range of %s (%d-%d)", n, f.name, f.min, f.max).
			WithDetail("feature", f.name).
			WithDetail("value", n)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.scalars[n]; ok {
		return v, nil
	}
	v := newValue(f, concrete, fmt.Sprintf("%s=%d", f.name, n))
	v.n = n
	f.scalars[n] = v
	return v, nil
}

// MustScalarValue is ScalarValue for magnitudes known to be in range.
func (f *Feature) MustScalarValue(n int) *Value {
	v, err := f.ScalarValue(n)
	if err != nil {
		panic(err)
	}
	return v
}
