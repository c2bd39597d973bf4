package feature

import (
	"sort"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
)

// Matrix is an immutable set of concrete feature values indexed by feature
// index. Absent features read as their NullValue.
type Matrix struct {
	values []*Value
	weight int
	hash   uint64
}

// EmptyMatrix carries no values. Inserting segments start from it.
var EmptyMatrix = &Matrix{}

// NewMatrix builds a matrix from concrete values. Later values for the same
// feature win; null values remove the feature (a node's null clears all of
// its leaves). Variables and exists values are patterns, not data, and
// panic here.
func NewMatrix(values ...*Value) *Matrix {
	return EmptyMatrix.With(values...)
}

// With returns a copy of m overlaid with values.
func (m *Matrix) With(values ...*Value) *Matrix {
	size := len(m.values)
	for _, v := range values {
		for _, leaf := range v.feature.Leaves() {
			if leaf.index >= size {
				size = leaf.index + 1
			}
		}
	}

	out := make([]*Value, size)
	copy(out, m.values)
	for _, v := range values {
		switch {
		case v.kind == null:
			for _, leaf := range v.feature.Leaves() {
				out[leaf.index] = nil
			}
		case v.kind == concrete:
			out[v.feature.index] = v
		default:
			panic(errors.Newf(errors.ErrInvalidInput, "%s cannot be stored in a matrix", v))
		}
	}
	return newMatrix(out)
}

func newMatrix(values []*Value) *Matrix {
	end := len(values)
	for end > 0 && values[end-1] == nil {
		end--
	}
	m := &Matrix{values: values[:end]}
	for _, v := range m.values {
		if v != nil {
			m.weight++
			m.hash ^= v.hash
		}
	}
	return m
}

// Get returns the value of leaf feature f, or f's NullValue when absent.
// Node features have no value of their own; use Leaves.
func (m *Matrix) Get(f *Feature) *Value {
	if f.kind == Node {
		panic(errors.Newf(errors.ErrNodeAccess,
			"node feature %s has no direct value", f.name).WithDetail("feature", f.name))
	}
	if f.index < len(m.values) {
		if v := m.values[f.index]; v != nil && v.feature == f {
			return v
		}
	}
	return f.null
}

// Has reports whether leaf feature f has a non-null value.
func (m *Matrix) Has(f *Feature) bool {
	return !m.Get(f).IsNull()
}

// Leaves expands f to the values of its leaf descendants.
func (m *Matrix) Leaves(f *Feature) []*Value {
	leaves := f.Leaves()
	out := make([]*Value, len(leaves))
	for i, leaf := range leaves {
		out[i] = m.Get(leaf)
	}
	return out
}

// Weight is the number of non-null values.
func (m *Matrix) Weight() int { return m.weight }

// Hash is order independent over the contained values.
func (m *Matrix) Hash() uint64 { return m.hash }

// Values returns the non-null values in feature index order.
func (m *Matrix) Values() []*Value {
	out := make([]*Value, 0, m.weight)
	for _, v := range m.values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Equal reports whether m and o hold the same values.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	if m.hash != o.hash || m.weight != o.weight {
		return false
	}
	n := len(m.values)
	if len(o.values) > n {
		n = len(o.values)
	}
	for i := 0; i < n; i++ {
		if m.at(i) != o.at(i) {
			return false
		}
	}
	return true
}

func (m *Matrix) at(i int) *Value {
	if i < len(m.values) {
		return m.values[i]
	}
	return nil
}

// Includes reports whether every value of o is also in m.
func (m *Matrix) Includes(o *Matrix) bool {
	for i, v := range o.values {
		if v != nil && m.at(i) != v {
			return false
		}
	}
	return true
}

// Without returns m minus the values it shares with o.
func (m *Matrix) Without(o *Matrix) *Matrix {
	out := make([]*Value, len(m.values))
	for i, v := range m.values {
		if v != nil && o.at(i) != v {
			out[i] = v
		}
	}
	return newMatrix(out)
}

// Matrix lets a bare matrix stand in for a Segment.
func (m *Matrix) Matrix() *Matrix { return m }

func (m *Matrix) String() string {
	vals := m.Values()
	sort.Slice(vals, func(i, j int) bool {
		return vals[i].feature.name < vals[j].feature.name
	})
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
