// pkg/rule/fixture_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: pkg/symbol, testify mock
// PURPOSE: Shared inventory, pattern helpers and a mock listener for rule tests

package rule_test

import (
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/rule"
	"github.com/NicholasDeLioncourt/phonix/pkg/symbol"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// lexicon is a tiny inventory: a place feature per letter group plus vc.
//
//	a [vow +vc]   b [lab +vc]   p [lab -vc]   c [pal -vc]   k [dor -vc]
//	s [sib -vc]   z [sib +vc]   t [cor -vc]   d [cor +vc]
type lexicon struct {
	features *feature.Set
	symbols  *symbol.Set
	vc       *feature.Feature
	str      *feature.Feature
}

func newLexicon(t *testing.T) *lexicon {
	t.Helper()
	fs := feature.NewSet()
	vc, err := fs.NewBinary("vc")
	require.NoError(t, err)
	str, err := fs.NewBoundedScalar("str", 0, 2)
	require.NoError(t, err)

	places := map[string]*feature.Feature{}
	for _, name := range []string{"vow", "lab", "pal", "dor", "sib", "cor"} {
		f, err := fs.NewUnary(name)
		require.NoError(t, err)
		places[name] = f
	}

	lx := &lexicon{features: fs, symbols: symbol.NewSet(), vc: vc, str: str}
	for _, def := range []struct {
		label, place string
		voiced       bool
	}{
		{"a", "vow", true}, {"b", "lab", true}, {"p", "lab", false},
		{"c", "pal", false}, {"k", "dor", false}, {"s", "sib", false},
		{"z", "sib", true}, {"t", "cor", false}, {"d", "cor", true},
	} {
		v := vc.MinusValue()
		if def.voiced {
			v = vc.PlusValue()
		}
		m := feature.NewMatrix(places[def.place].UnaryValue(), v)
		require.NoError(t, lx.symbols.Add(&symbol.Symbol{Label: def.label, Matrix: m}))
	}
	return lx
}

func (lx *lexicon) sym(t *testing.T, label string) *symbol.Symbol {
	t.Helper()
	s, ok := lx.symbols.Get(label)
	require.True(t, ok, label)
	return s
}

func (lx *lexicon) word(t *testing.T, s string) *word.Word {
	t.Helper()
	ms, err := lx.symbols.Pronounce(s)
	require.NoError(t, err)
	return word.New(ms)
}

func (lx *lexicon) spell(w *word.Word) string {
	return lx.symbols.MakeString(w.Matrices())
}

// pattern helpers: ctx("b"), act("a", "b"), del("a"), ins("c")
func (lx *lexicon) ctx(t *testing.T, label string) *rule.Segment {
	return rule.Context(lx.sym(t, label))
}

func (lx *lexicon) act(t *testing.T, from, to string) *rule.Segment {
	return rule.Action(lx.sym(t, from), lx.sym(t, to))
}

func (lx *lexicon) del(t *testing.T, label string) *rule.Segment {
	return rule.Deleting(lx.sym(t, label))
}

func (lx *lexicon) ins(t *testing.T, label string) *rule.Segment {
	return rule.Inserting(lx.sym(t, label))
}

func (lx *lexicon) apply(t *testing.T, r *rule.Rule, input string) string {
	t.Helper()
	w := lx.word(t, input)
	r.Apply(w)
	return lx.spell(w)
}

func newRule(t *testing.T, segments []*rule.Segment, excluded ...*rule.Segment) *rule.Rule {
	t.Helper()
	if excluded == nil {
		excluded = []*rule.Segment{}
	}
	r, err := rule.New(t.Name(), segments, excluded)
	require.NoError(t, err)
	return r
}

func repeat(t *testing.T, min, max int, inner ...*rule.Segment) *rule.Segment {
	t.Helper()
	s, err := rule.Repeat(inner, min, max)
	require.NoError(t, err)
	return s
}

// MockListener is a mock implementation of rule.Listener
type MockListener struct {
	mock.Mock
}

func (m *MockListener) RuleEntered(r *rule.Rule, w *word.Word) {
	m.Called(r, w)
}

func (m *MockListener) RuleApplied(r *rule.Rule, w *word.Word, at *word.Slice) {
	m.Called(r, w, at)
}

func (m *MockListener) RuleExited(r *rule.Rule, w *word.Word) {
	m.Called(r, w)
}

func (m *MockListener) UndefinedVariableUsed(r *rule.Rule, variable string) {
	m.Called(r, variable)
}

func (m *MockListener) ScalarValueRangeViolation(r *rule.Rule, feature string, value int) {
	m.Called(r, feature, value)
}

func (m *MockListener) InvalidScalarValueOp(r *rule.Rule, feature string, op string) {
	m.Called(r, feature, op)
}
