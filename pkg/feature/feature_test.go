// pkg/feature/feature_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test feature registration, value singletons and scalar interning

package feature_test

import (
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Register(t *testing.T) {
	f := newFixture(t)

	t.Run("dense indexes", func(t *testing.T) {
		for i, feat := range f.set.Features() {
			assert.Equal(t, i, feat.Index())
		}
		assert.Equal(t, 9, f.set.Len())
	})

	t.Run("lookup", func(t *testing.T) {
		got, ok := f.set.Get("bn")
		require.True(t, ok)
		assert.Same(t, f.bn, got)
		assert.True(t, f.set.Has("ROOT"))
		assert.False(t, f.set.Has("nope"))
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := f.set.NewUnary("un")
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := f.set.NewBinary("  ")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("inverted scalar range", func(t *testing.T) {
		_, err := f.set.NewBoundedScalar("bad", 3, 1)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("node child from another set", func(t *testing.T) {
		other := feature.NewSet()
		foreign, err := other.NewUnary("x")
		require.NoError(t, err)
		_, err = f.set.NewNode("N", foreign)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("node child already owned", func(t *testing.T) {
		_, err := f.set.NewNode("N", f.n1a)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestFeature_Tree(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []*feature.Feature{f.n1a, f.n1b, f.n2a}, f.root.Leaves())
	assert.Equal(t, []*feature.Feature{f.node1, f.node2}, f.root.Children())
	assert.Same(t, f.root, f.node1.Parent())
	assert.Same(t, f.node1, f.n1b.Parent())
	assert.Equal(t, []*feature.Feature{f.un}, f.un.Leaves())
}

func TestValues_AreSingletons(t *testing.T) {
	f := newFixture(t)

	assert.Same(t, f.bn.PlusValue(), f.bn.PlusValue())
	assert.NotSame(t, f.bn.PlusValue(), f.bn.MinusValue())
	assert.Same(t, f.un.UnaryValue(), f.un.UnaryValue())
	assert.Same(t, f.sc.MustScalarValue(2), f.sc.MustScalarValue(2))
	assert.Same(t, f.root.ExistsValue(), f.root.ExistsValue())
}

func TestScalarValue(t *testing.T) {
	f := newFixture(t)

	t.Run("bounded out of range", func(t *testing.T) {
		_, err := f.sc.ScalarValue(4)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScalarRange))
		assert.Equal(t, 4, errors.GetErrorDetails(err)["value"])

		_, err = f.sc.ScalarValue(-1)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScalarRange))
	})

	t.Run("unbounded values are interned lazily", func(t *testing.T) {
		free, err := f.set.NewScalar("free")
		require.NoError(t, err)
		a, err := free.ScalarValue(100)
		require.NoError(t, err)
		b, err := free.ScalarValue(100)
		require.NoError(t, err)
		assert.Same(t, a, b)
		assert.Equal(t, 100, a.Int())
		_, _, bounded := free.Range()
		assert.False(t, bounded)
	})

	t.Run("range", func(t *testing.T) {
		min, max, bounded := f.sc.Range()
		assert.Equal(t, 0, min)
		assert.Equal(t, 3, max)
		assert.True(t, bounded)
	})
}

func TestValueAccessors_KindMismatch(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, errors.ErrInvalidInput, panicCode(func() { f.un.PlusValue() }))
	assert.Equal(t, errors.ErrInvalidInput, panicCode(func() { f.bn.UnaryValue() }))
	assert.Equal(t, errors.ErrInvalidInput, panicCode(func() { f.bn.ExistsValue() }))
	assert.Equal(t, errors.ErrInvalidInput, panicCode(func() { _, _ = f.un.ScalarValue(1) }))
	assert.Equal(t, errors.ErrInvalidInput, panicCode(func() { f.bn.Add(1) }))
}

func TestValue_String(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		value *feature.Value
		want  string
	}{
		{f.un.UnaryValue(), "un"},
		{f.bn.PlusValue(), "+bn"},
		{f.bn.MinusValue(), "-bn"},
		{f.sc.MustScalarValue(2), "sc=2"},
		{f.bn.NullValue(), "*bn"},
		{f.bn.VariableValue(), "$bn"},
		{f.root.ExistsValue(), "ROOT"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestKind(t *testing.T) {
	for _, k := range []feature.Kind{feature.Unary, feature.Binary, feature.Scalar, feature.Node} {
		parsed, ok := feature.ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := feature.ParseKind("ternary")
	assert.False(t, ok)
}
