package phonology

import (
	"math/rand/v2"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/NicholasDeLioncourt/phonix/pkg/rule"
	"github.com/NicholasDeLioncourt/phonix/pkg/symbol"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
	"github.com/rs/zerolog"
)

// Phonology holds everything a derivation needs.
type Phonology struct {
	Name        string
	Features    *feature.Set
	Symbols     *symbol.Set
	Rules       *rule.RuleSet
	Syllabifier *word.Syllabifier

	imported map[string]bool
	logger   zerolog.Logger
}

// New creates an empty phonology.
func New() *Phonology {
	p := &Phonology{
		Features: feature.NewSet(),
		Symbols:  symbol.NewSet(),
		Rules:    rule.NewRuleSet(),
		imported: make(map[string]bool),
		logger:   logging.GetLogger("phonology"),
	}
	p.Rules.AddListener(rule.ListenerFuncs{OnExited: p.resyllabify})
	return p
}

// resyllabify keeps syllable structure current after each rule.
func (p *Phonology) resyllabify(_ *rule.Rule, w *word.Word) {
	if p.Syllabifier != nil {
		p.Syllabifier.Apply(w)
	}
}

// Seed gives every rule its own deterministic random source. Without a
// seed, rules with an application rate below 1 draw from the process-wide
// generator.
func (p *Phonology) Seed(seed uint64) {
	for i, r := range p.allRules() {
		r.SetRandom(rand.New(rand.NewPCG(seed, uint64(i))))
	}
}

func (p *Phonology) allRules() []*rule.Rule {
	return append(p.Rules.Rules(), p.Rules.Persistent()...)
}

// Pronounce turns a spelled word into a Word.
func (p *Phonology) Pronounce(input string) (*word.Word, error) {
	ms, err := p.Symbols.Pronounce(input)
	if err != nil {
		return nil, err
	}
	return word.New(ms), nil
}

// Spell renders w with the symbol set. Segments no symbol describes are
// written as "[?]".
func (p *Phonology) Spell(w *word.Word) string {
	return p.Symbols.MakeString(w.Matrices())
}

// Apply runs every rule over w in place.
func (p *Phonology) Apply(w *word.Word) {
	if p.Syllabifier != nil {
		p.Syllabifier.Apply(w)
	}
	p.Rules.ApplyAll(w)
}

// Derive pronounces input, runs every rule over it and spells the result.
func (p *Phonology) Derive(input string) (string, error) {
	w, err := p.Pronounce(input)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot pronounce %q", input).
			WithDetail("word", input)
	}
	p.Apply(w)
	return p.Spell(w), nil
}
