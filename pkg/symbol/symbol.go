// Package symbol maps written symbols to feature matrices and back.
package symbol

import (
	"sort"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/rs/zerolog"
)

// Symbol is a label for a feature matrix. As a matcher it accepts exactly
// its own matrix; as a combiner it replaces the target with it.
type Symbol struct {
	Label  string
	Matrix *feature.Matrix
}

// Unknown is what Spell reports for matrices no symbol describes.
var Unknown = &Symbol{Label: "[?]", Matrix: feature.EmptyMatrix}

func (s *Symbol) String() string { return s.Label }

func (s *Symbol) Matches(_ *feature.Context, seg feature.Segment) bool {
	return seg != nil && s.Matrix.Equal(seg.Matrix())
}

func (s *Symbol) Combine(_ *feature.Context, _ *feature.Matrix) (*feature.Matrix, error) {
	return s.Matrix, nil
}

var (
	_ feature.Matcher  = (*Symbol)(nil)
	_ feature.Combiner = (*Symbol)(nil)
)

// Set is an ordered symbol table. Diacritics are kept apart from base
// symbols; they only take part in spelling, as marks appended to a base.
type Set struct {
	symbols    map[string]*Symbol
	order      []string
	diacritics map[string]*Symbol
	diaOrder   []string
	logger     zerolog.Logger
}

// NewSet creates an empty symbol set.
func NewSet() *Set {
	return &Set{
		symbols:    make(map[string]*Symbol),
		diacritics: make(map[string]*Symbol),
		logger:     logging.GetLogger("symbol"),
	}
}

// Add defines a base symbol. Redefining a label replaces it; both that and
// sharing a matrix with another symbol are logged as warnings.
func (s *Set) Add(sym *Symbol) error {
	if err := validate(sym); err != nil {
		return err
	}

	if old, ok := s.symbols[sym.Label]; ok {
		s.logger.Warn().
			Str("symbol", sym.Label).
			Str("old", old.Matrix.String()).
			Str("new", sym.Matrix.String()).
			Msg("Symbol redefined")
	} else {
		s.order = append(s.order, sym.Label)
	}
	for _, label := range s.order {
		existing := s.symbols[label]
		if existing != nil && label != sym.Label && existing.Matrix.Equal(sym.Matrix) {
			s.logger.Warn().
				Str("symbol", sym.Label).
				Str("duplicate", existing.Label).
				Msg("Symbol duplicates an existing matrix")
		}
	}
	s.symbols[sym.Label] = sym
	return nil
}

// AddDiacritic defines a diacritic mark.
func (s *Set) AddDiacritic(sym *Symbol) error {
	if err := validate(sym); err != nil {
		return err
	}
	if _, ok := s.diacritics[sym.Label]; ok {
		s.logger.Warn().Str("diacritic", sym.Label).Msg("Diacritic redefined")
	} else {
		s.diaOrder = append(s.diaOrder, sym.Label)
	}
	s.diacritics[sym.Label] = sym
	return nil
}

func validate(sym *Symbol) error {
	if sym == nil || sym.Label == "" || sym.Matrix == nil {
		return errors.New(errors.ErrInvalidInput, "symbol needs a label and a matrix")
	}
	return nil
}

// Get finds a base symbol by label.
func (s *Set) Get(label string) (*Symbol, bool) {
	sym, ok := s.symbols[label]
	return sym, ok
}

// Symbols returns the base symbols in definition order.
func (s *Set) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.order))
	for _, label := range s.order {
		out = append(out, s.symbols[label])
	}
	return out
}

// Diacritics returns the diacritics in definition order.
func (s *Set) Diacritics() []*Symbol {
	out := make([]*Symbol, 0, len(s.diaOrder))
	for _, label := range s.diaOrder {
		out = append(out, s.diacritics[label])
	}
	return out
}

// Spell returns the symbol for m. An exact base symbol wins; otherwise
// the heaviest base symbol contained in m is combined with diacritics
// covering exactly the remaining values.
func (s *Set) Spell(m *feature.Matrix) (*Symbol, error) {
	for _, label := range s.order {
		if sym := s.symbols[label]; sym.Matrix.Equal(m) {
			return sym, nil
		}
	}

	if len(s.diacritics) > 0 {
		if sym, ok := s.spellWithDiacritics(m); ok {
			return sym, nil
		}
	}

	return nil, errors.Newf(errors.ErrSpelling, "no symbol matches %s", m).
		WithDetail("matrix", m.String())
}

func (s *Set) spellWithDiacritics(m *feature.Matrix) (*Symbol, bool) {
	bases := make([]*Symbol, 0, len(s.order))
	for _, label := range s.order {
		if sym := s.symbols[label]; m.Includes(sym.Matrix) {
			bases = append(bases, sym)
		}
	}
	sort.SliceStable(bases, func(i, j int) bool {
		return bases[i].Matrix.Weight() > bases[j].Matrix.Weight()
	})

	for _, base := range bases {
		rest := m.Without(base.Matrix)
		label := base.Label
		for _, dl := range s.diaOrder {
			d := s.diacritics[dl]
			if d.Matrix.Weight() > 0 && rest.Includes(d.Matrix) {
				label += d.Label
				rest = rest.Without(d.Matrix)
			}
		}
		if rest.Weight() == 0 {
			return &Symbol{Label: label, Matrix: m}, true
		}
	}
	return nil, false
}

// SpellAll spells each matrix in turn.
func (s *Set) SpellAll(ms []*feature.Matrix) ([]*Symbol, error) {
	out := make([]*Symbol, len(ms))
	for i, m := range ms {
		sym, err := s.Spell(m)
		if err != nil {
			return nil, err
		}
		out[i] = sym
	}
	return out, nil
}

// MakeString spells ms as one string. Unspellable matrices render as
// Unknown's label.
func (s *Set) MakeString(ms []*feature.Matrix) string {
	var b strings.Builder
	for _, m := range ms {
		sym, err := s.Spell(m)
		if err != nil {
			sym = Unknown
		}
		b.WriteString(sym.Label)
	}
	return b.String()
}

// SplitSymbols splits a written word into symbols, taking the longest
// defined label at each step. A base symbol may be followed by any
// number of diacritics, which are merged into it.
func (s *Set) SplitSymbols(w string) ([]*Symbol, error) {
	var out []*Symbol
	rest := w
	for rest != "" {
		label := s.longest(rest, s.symbols)
		if label == "" {
			return nil, errors.Newf(errors.ErrSpelling, "no symbol matches the start of %q", rest).
				WithDetail("word", w)
		}
		sym := s.symbols[label]
		rest = rest[len(label):]

		for rest != "" {
			dl := s.longest(rest, s.diacritics)
			if dl == "" {
				break
			}
			sym = &Symbol{
				Label:  sym.Label + dl,
				Matrix: sym.Matrix.With(s.diacritics[dl].Matrix.Values()...),
			}
			rest = rest[len(dl):]
		}
		out = append(out, sym)
	}
	return out, nil
}

func (s *Set) longest(prefix string, table map[string]*Symbol) string {
	candidate := prefix
	for candidate != "" {
		if _, ok := table[candidate]; ok {
			return candidate
		}
		candidate = candidate[:len(candidate)-1]
	}
	return ""
}

// Pronounce turns a written word into matrices.
func (s *Set) Pronounce(w string) ([]*feature.Matrix, error) {
	syms, err := s.SplitSymbols(w)
	if err != nil {
		return nil, err
	}
	out := make([]*feature.Matrix, len(syms))
	for i, sym := range syms {
		out[i] = sym.Matrix
	}
	return out, nil
}
