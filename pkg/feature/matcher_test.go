// pkg/feature/matcher_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test value matching, variable binding, matcher aggregates and combiners

package feature_test

import (
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Matches(t *testing.T) {
	f := newFixture(t)
	m := feature.NewMatrix(f.un.UnaryValue(), f.bn.PlusValue(), f.sc.MustScalarValue(2))

	tests := []struct {
		name  string
		value *feature.Value
		want  bool
	}{
		{"unary present", f.un.UnaryValue(), true},
		{"binary plus", f.bn.PlusValue(), true},
		{"binary minus", f.bn.MinusValue(), false},
		{"scalar same", f.sc.MustScalarValue(2), true},
		{"scalar other", f.sc.MustScalarValue(1), false},
		{"null of present", f.un.NullValue(), false},
		{"null of absent", f.n1a.NullValue(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Matches(feature.NewContext(), m))
		})
	}
}

func TestVariable_BindsThenCompares(t *testing.T) {
	f := newFixture(t)
	plus := feature.NewMatrix(f.bn.PlusValue())
	minus := feature.NewMatrix(f.bn.MinusValue())
	v := f.bn.VariableValue()

	ctx := feature.NewContext()
	assert.True(t, v.Matches(ctx, plus))
	bound, ok := ctx.Bound(f.bn)
	require.True(t, ok)
	assert.Same(t, f.bn.PlusValue(), bound)

	assert.True(t, v.Matches(ctx, plus))
	assert.False(t, v.Matches(ctx, minus))

	fresh := feature.NewContext()
	assert.True(t, v.Matches(fresh, minus))
}

func TestNodeValues_Match(t *testing.T) {
	f := newFixture(t)
	full := feature.NewMatrix(f.n1a.PlusValue(), f.n1b.UnaryValue(), f.n2a.MinusValue())
	partial := feature.NewMatrix(f.n1a.PlusValue(), f.n1b.UnaryValue())
	none := feature.NewMatrix(f.un.UnaryValue())

	t.Run("exists needs every leaf", func(t *testing.T) {
		assert.True(t, f.root.ExistsValue().Matches(nil, full))
		assert.False(t, f.root.ExistsValue().Matches(nil, partial))
		assert.True(t, f.node1.ExistsValue().Matches(nil, partial))
		assert.False(t, f.node2.ExistsValue().Matches(nil, none))
	})

	t.Run("null needs no leaf", func(t *testing.T) {
		assert.True(t, f.root.NullValue().Matches(nil, none))
		assert.False(t, f.root.NullValue().Matches(nil, partial))
		assert.True(t, f.node2.NullValue().Matches(nil, partial))
	})

	t.Run("variable binds all leaves", func(t *testing.T) {
		ctx := feature.NewContext()
		assert.True(t, f.node1.VariableValue().Matches(ctx, full))
		leaves, ok := ctx.BoundLeaves(f.node1)
		require.True(t, ok)
		assert.Equal(t, []*feature.Value{f.n1a.PlusValue(), f.n1b.UnaryValue()}, leaves)

		assert.True(t, f.node1.VariableValue().Matches(ctx, partial))
		assert.False(t, f.node1.VariableValue().Matches(ctx, none))
	})
}

func TestContext_Rollback(t *testing.T) {
	f := newFixture(t)
	ctx := feature.NewContext()

	require.True(t, f.un.VariableValue().Matches(ctx, feature.NewMatrix(f.un.UnaryValue())))
	cp := ctx.Checkpoint()
	slot := ctx.ReserveChoice()
	ctx.SetChoice(slot, 2)
	require.True(t, f.bn.VariableValue().Matches(ctx, feature.NewMatrix(f.bn.MinusValue())))
	require.True(t, f.node2.VariableValue().Matches(ctx, feature.NewMatrix(f.n2a.PlusValue())))
	assert.Equal(t, 3, ctx.Len())

	ctx.Rollback(cp)
	assert.Equal(t, 1, ctx.Len())
	_, ok := ctx.Bound(f.bn)
	assert.False(t, ok)
	_, ok = ctx.BoundLeaves(f.node2)
	assert.False(t, ok)
	_, ok = ctx.Bound(f.un)
	assert.True(t, ok)
	_, ok = ctx.NextChoice()
	assert.False(t, ok, "choices after the checkpoint are forgotten")
}

func TestContext_ChoiceReplay(t *testing.T) {
	ctx := feature.NewContext()
	a := ctx.ReserveChoice()
	b := ctx.ReserveChoice()
	ctx.SetChoice(a, 3)
	ctx.SetChoice(b, 0)
	assert.Equal(t, 3, ctx.Choice(a))

	ctx.Replay()
	n, ok := ctx.NextChoice()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	n, ok = ctx.NextChoice()
	assert.True(t, ok)
	assert.Equal(t, 0, n)
	_, ok = ctx.NextChoice()
	assert.False(t, ok)

	ctx.SkipChoices(1)
	n, _ = ctx.NextChoice()
	assert.Equal(t, 0, n)
}

func TestMatrixMatcher(t *testing.T) {
	f := newFixture(t)
	m := feature.NewMatrix(f.un.UnaryValue(), f.bn.PlusValue())

	both := feature.NewMatrixMatcher(f.un.UnaryValue(), f.bn.PlusValue())
	mixed := feature.NewMatrixMatcher(f.un.UnaryValue(), f.bn.MinusValue())

	assert.True(t, both.Matches(nil, m))
	assert.False(t, mixed.Matches(nil, m))
	assert.False(t, both.Negate().Matches(nil, m))
	assert.True(t, mixed.Negate().Matches(nil, m))
	assert.True(t, both.Negate().Negate().Matches(nil, m))

	assert.True(t, feature.AlwaysMatches.Matches(nil, m))
	assert.True(t, feature.AlwaysMatches.Matches(nil, feature.EmptyMatrix))
	assert.False(t, feature.NeverMatches.Matches(nil, m))
	assert.False(t, both.Matches(nil, nil))

	assert.True(t, feature.MatcherFromMatrix(m).Matches(nil, m))
	assert.False(t, feature.MatcherFromMatrix(m).Matches(nil, feature.NewMatrix(f.un.UnaryValue())))

	assert.Equal(t, "[un +bn]", both.String())
	assert.Equal(t, "![un -bn]", mixed.Negate().String())
	assert.Equal(t, "b", both.WithLabel("b").String())
}

func TestMatchFunc(t *testing.T) {
	var calls int
	fn := feature.MatchFunc(func(_ *feature.Context, seg feature.Segment) bool {
		calls++
		return seg.Matrix().Weight() > 0
	})
	assert.False(t, fn.Matches(nil, feature.EmptyMatrix))
	assert.Equal(t, 1, calls)
}

type onsetSegment struct{ m *feature.Matrix }

func (s onsetSegment) Matrix() *feature.Matrix { return s.m }

func (onsetSegment) HasAncestor(t *tier.Tier) bool {
	return t == tier.Onset || t == tier.Syllable
}

func TestTierMatcher(t *testing.T) {
	seg := onsetSegment{feature.EmptyMatrix}

	assert.True(t, feature.TierMatcher(tier.Onset.Has()).Matches(nil, seg))
	assert.False(t, feature.TierMatcher(tier.Onset.Lacks()).Matches(nil, seg))
	assert.False(t, feature.TierMatcher(tier.Onset.Has()).Matches(nil, feature.EmptyMatrix))
	assert.Equal(t, "<*onset>", feature.TierMatcher(tier.Onset.Lacks()).String())
}

func TestMatrixCombiner(t *testing.T) {
	f := newFixture(t)
	m := feature.NewMatrix(f.un.UnaryValue(), f.bn.PlusValue(), f.sc.MustScalarValue(1))

	t.Run("overlay", func(t *testing.T) {
		c := feature.NewMatrixCombiner(f.bn.MinusValue(), f.un.NullValue())
		out, err := c.Combine(nil, m)
		require.NoError(t, err)
		assert.True(t, out.Equal(feature.NewMatrix(f.bn.MinusValue(), f.sc.MustScalarValue(1))))
	})

	t.Run("variable from context", func(t *testing.T) {
		ctx := feature.NewContext()
		require.True(t, f.bn.VariableValue().Matches(ctx, feature.NewMatrix(f.bn.MinusValue())))
		out, err := feature.NewMatrixCombiner(f.bn.VariableValue()).Combine(ctx, m)
		require.NoError(t, err)
		assert.Same(t, f.bn.MinusValue(), out.Get(f.bn))
	})

	t.Run("undefined variable", func(t *testing.T) {
		out, err := feature.NewMatrixCombiner(f.bn.VariableValue()).Combine(feature.NewContext(), m)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUndefinedVariable))
		assert.Equal(t, "$bn", errors.GetErrorDetails(err)["variable"])
		assert.Same(t, m, out)
	})

	t.Run("node variable", func(t *testing.T) {
		ctx := feature.NewContext()
		src := feature.NewMatrix(f.n1a.MinusValue(), f.n1b.UnaryValue())
		require.True(t, f.node1.VariableValue().Matches(ctx, src))
		target := feature.NewMatrix(f.n1a.PlusValue(), f.n2a.PlusValue())
		out, err := feature.NewMatrixCombiner(f.node1.VariableValue()).Combine(ctx, target)
		require.NoError(t, err)
		assert.True(t, out.Equal(feature.NewMatrix(f.n1a.MinusValue(), f.n1b.UnaryValue(), f.n2a.PlusValue())))
	})

	t.Run("from matrix", func(t *testing.T) {
		out, err := feature.CombinerFromMatrix(feature.NewMatrix(f.bn.MinusValue())).Combine(nil, m)
		require.NoError(t, err)
		assert.Same(t, f.bn.MinusValue(), out.Get(f.bn))
		assert.Equal(t, "[-bn]", feature.CombinerFromMatrix(feature.NewMatrix(f.bn.MinusValue())).String())
	})
}

func TestScalarOp(t *testing.T) {
	f := newFixture(t)
	m := feature.NewMatrix(f.sc.MustScalarValue(2))

	out, err := feature.NewMatrixCombiner(f.sc.Add(1)).Combine(nil, m)
	require.NoError(t, err)
	assert.Same(t, f.sc.MustScalarValue(3), out.Get(f.sc))

	out, err = feature.NewMatrixCombiner(f.sc.Sub(2)).Combine(nil, m)
	require.NoError(t, err)
	assert.Same(t, f.sc.MustScalarValue(0), out.Get(f.sc))

	_, err = feature.NewMatrixCombiner(f.sc.Add(2)).Combine(nil, m)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScalarRange))

	_, err = feature.NewMatrixCombiner(f.sc.Add(1)).Combine(nil, feature.EmptyMatrix)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidScalarOp))

	assert.Equal(t, "sc+=1", f.sc.Add(1).String())
	assert.Equal(t, "sc-=2", f.sc.Sub(2).String())
}
