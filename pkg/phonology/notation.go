package phonology

import (
	"strconv"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/symbol"
	"github.com/NicholasDeLioncourt/phonix/pkg/tier"
)

// notation resolves matrix notation against a feature and symbol set.
type notation struct {
	features *feature.Set
	symbols  *symbol.Set
}

// split breaks "[+a -b]" or "![+a]" into its tokens. ok is false for a
// bare symbol label.
func split(s string) (tokens []string, negated, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "!") {
		negated = true
		s = strings.TrimSpace(s[1:])
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, negated, false
	}
	return strings.Fields(s[1 : len(s)-1]), negated, true
}

func badToken(tok, format string, args ...interface{}) *errors.PhonixError {
	return errors.Newf(errors.ErrInvalidInput, format, args...).WithDetail("token", tok)
}

func (n *notation) lookup(tok, name string) (*feature.Feature, error) {
	f, ok := n.features.Get(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "unknown feature %q in %q", name, tok).
			WithDetail("token", tok).
			WithDetail("feature", name)
	}
	return f, nil
}

func (n *notation) symbol(label string) (*symbol.Symbol, error) {
	sym, ok := n.symbols.Get(label)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "unknown symbol %q", label).
			WithDetail("symbol", label)
	}
	return sym, nil
}

// value reads one feature value token.
func (n *notation) value(tok string) (*feature.Value, error) {
	if tok == "" {
		return nil, badToken(tok, "empty feature value")
	}

	switch tok[0] {
	case '+', '-':
		f, err := n.lookup(tok, tok[1:])
		if err != nil {
			return nil, err
		}
		if f.Kind() != feature.Binary {
			return nil, badToken(tok, "%s is %s, not binary", f.Name(), f.Kind())
		}
		if tok[0] == '+' {
			return f.PlusValue(), nil
		}
		return f.MinusValue(), nil

	case '*':
		f, err := n.lookup(tok, tok[1:])
		if err != nil {
			return nil, err
		}
		return f.NullValue(), nil

	case '$':
		f, err := n.lookup(tok, tok[1:])
		if err != nil {
			return nil, err
		}
		return f.VariableValue(), nil
	}

	if name, num, ok := strings.Cut(tok, "="); ok {
		f, err := n.lookup(tok, name)
		if err != nil {
			return nil, err
		}
		if f.Kind() != feature.Scalar {
			return nil, badToken(tok, "%s is %s, not scalar", f.Name(), f.Kind())
		}
		v, err := strconv.Atoi(num)
		if err != nil {
			return nil, badToken(tok, "scalar value %q is not a number", num)
		}
		return f.ScalarValue(v)
	}

	f, err := n.lookup(tok, tok)
	if err != nil {
		return nil, err
	}
	switch f.Kind() {
	case feature.Unary:
		return f.UnaryValue(), nil
	case feature.Node:
		return f.ExistsValue(), nil
	}
	return nil, badToken(tok, "%s is %s and needs a value", f.Name(), f.Kind())
}

// scalarOp reads "f+=n" or "f-=n".
func (n *notation) scalarOp(tok string) (feature.ScalarOp, bool, error) {
	for _, op := range []string{"+=", "-="} {
		name, num, ok := strings.Cut(tok, op)
		if !ok {
			continue
		}
		f, err := n.lookup(tok, name)
		if err != nil {
			return feature.ScalarOp{}, true, err
		}
		if f.Kind() != feature.Scalar {
			return feature.ScalarOp{}, true, badToken(tok, "%s is %s, not scalar", f.Name(), f.Kind())
		}
		delta, err := strconv.Atoi(num)
		if err != nil || delta < 0 {
			return feature.ScalarOp{}, true, badToken(tok, "scalar step %q is not a natural number", num)
		}
		if op == "+=" {
			return f.Add(delta), true, nil
		}
		return f.Sub(delta), true, nil
	}
	return feature.ScalarOp{}, false, nil
}

// Matrix reads a matrix of concrete values, as used by symbol definitions.
func (n *notation) Matrix(s string) (*feature.Matrix, error) {
	tokens, negated, ok := split(s)
	if !ok || negated {
		return nil, badToken(s, "expected a matrix like [+a -b]")
	}
	values := make([]*feature.Value, 0, len(tokens))
	for _, tok := range tokens {
		v, err := n.value(tok)
		if err != nil {
			return nil, err
		}
		if !v.IsConcrete() {
			return nil, badToken(tok, "%s is not a concrete value", tok)
		}
		values = append(values, v)
	}
	return feature.NewMatrix(values...), nil
}

// Matcher reads a match expression: a matrix, a negated matrix, a symbol
// label, or nothing at all.
func (n *notation) Matcher(s string) (feature.Matcher, error) {
	if strings.TrimSpace(s) == "" {
		return feature.AlwaysMatches, nil
	}
	tokens, negated, ok := split(s)
	if !ok {
		if negated {
			return nil, badToken(s, "only matrices can be negated")
		}
		sym, err := n.symbol(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		return sym, nil
	}

	items := make([]feature.Matcher, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "<") {
			pred, ok := tier.ParsePredicate(tok)
			if !ok {
				return nil, badToken(tok, "unknown tier in %s", tok)
			}
			items = append(items, feature.TierMatcher(pred))
			continue
		}
		v, err := n.value(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	m := feature.NewMatrixMatcher(items...)
	if negated {
		m = m.Negate()
	}
	return m, nil
}

// Combiner reads a rewrite expression: a matrix or a symbol label.
func (n *notation) Combiner(s string) (feature.Combiner, error) {
	tokens, negated, ok := split(s)
	if negated {
		return nil, badToken(s, "a rewrite cannot be negated")
	}
	if !ok {
		label := strings.TrimSpace(s)
		if label == "" {
			return nil, badToken(s, "empty rewrite")
		}
		sym, err := n.symbol(label)
		if err != nil {
			return nil, err
		}
		return sym, nil
	}

	items := make([]feature.Combinable, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "<") {
			return nil, badToken(tok, "tier predicates cannot be written")
		}
		op, isOp, err := n.scalarOp(tok)
		if err != nil {
			return nil, err
		}
		if isOp {
			items = append(items, op)
			continue
		}
		v, err := n.value(tok)
		if err != nil {
			return nil, err
		}
		if v.IsExists() {
			return nil, badToken(tok, "node %s needs a value to be written", tok)
		}
		items = append(items, v)
	}
	return feature.NewMatrixCombiner(items...), nil
}
