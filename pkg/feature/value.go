package feature

import (
	"hash/fnv"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
)

type valueKind uint8

const (
	concrete valueKind = iota
	null
	variable
	exists
)

// Value is an immutable value of a Feature. Values are singletons per
// feature and magnitude, so == is the equality test.
type Value struct {
	feature *Feature
	kind    valueKind
	text    string
	n       int
	hash    uint64
}

func newValue(f *Feature, kind valueKind, text string) *Value {
	h := fnv.New64a()
	_, _ = h.Write([]byte(f.name))
	_, _ = h.Write([]byte{0, byte(kind)})
	_, _ = h.Write([]byte(text))
	return &Value{feature: f, kind: kind, text: text, hash: h.Sum64()}
}

// Feature returns the feature v belongs to.
func (v *Value) Feature() *Feature { return v.feature }

func (v *Value) IsNull() bool     { return v.kind == null }
func (v *Value) IsVariable() bool { return v.kind == variable }
func (v *Value) IsExists() bool   { return v.kind == exists }

// IsConcrete reports whether v can be stored in a Matrix.
func (v *Value) IsConcrete() bool { return v.kind == concrete }

// Int returns the magnitude of a scalar value.
func (v *Value) Int() int { return v.n }

func (v *Value) String() string { return v.text }

// Matches implements Matcher.
func (v *Value) Matches(ctx *Context, seg Segment) bool {
	if seg == nil {
		return false
	}
	m := seg.Matrix()
	f := v.feature

	if f.kind == Node {
		leaves := m.Leaves(f)
		switch v.kind {
		case exists:
			for _, lv := range leaves {
				if lv.IsNull() {
					return false
				}
			}
			return true
		case null:
			for _, lv := range leaves {
				if !lv.IsNull() {
					return false
				}
			}
			return true
		case variable:
			if bound, ok := ctx.boundNode(f); ok {
				for i := range leaves {
					if leaves[i] != bound[i] {
						return false
					}
				}
				return true
			}
			ctx.bindNode(f, leaves)
			return true
		}
		return false
	}

	got := m.Get(f)
	if v.kind == variable {
		if bound, ok := ctx.bound(f); ok {
			return got == bound
		}
		ctx.bind(f, got)
		return true
	}
	return got == v
}

// Values implements Combinable. Null clears the whole subtree of a node
// feature; a variable yields whatever was bound during matching.
func (v *Value) Values(ctx *Context, _ *Matrix) ([]*Value, error) {
	f := v.feature
	switch v.kind {
	case concrete:
		return []*Value{v}, nil
	case null:
		if f.kind != Node {
			return []*Value{v}, nil
		}
		out := make([]*Value, len(f.leaves))
		for i, leaf := range f.leaves {
			out[i] = leaf.null
		}
		return out, nil
	case variable:
		if f.kind == Node {
			if bound, ok := ctx.boundNode(f); ok {
				return bound, nil
			}
		} else if bound, ok := ctx.bound(f); ok {
			return []*Value{bound}, nil
		}
		return nil, undefinedVariable(v)
	}
	return nil, nil
}

func undefinedVariable(v *Value) *errors.PhonixError {
	return errors.Newf(errors.ErrUndefinedVariable, "variable %s was used before it was bound", v).
		WithDetail("variable", v.String()).
		WithDetail("feature", v.feature.name)
}
