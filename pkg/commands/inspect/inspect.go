// Package inspect implements the read-only commands that describe a
// phonology.
package inspect

import (
	"fmt"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/commands/internal"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/NicholasDeLioncourt/phonix/pkg/phonology"
	"github.com/NicholasDeLioncourt/phonix/pkg/rule"
)

// Options defines the options shared by the inspection commands.
type Options struct {
	// Definition is the phonology file; empty selects the standard one.
	Definition string
}

// RuleInfo describes one rule.
type RuleInfo struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Direction   string  `json:"direction" yaml:"direction"`
	Rate        float64 `json:"application_rate" yaml:"application_rate"`
	Filter      string  `json:"filter,omitempty" yaml:"filter,omitempty"`
	Persistent  bool    `json:"persistent" yaml:"persistent"`
}

// FeatureInfo describes one feature.
type FeatureInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Parent   string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
	Range    string   `json:"range,omitempty" yaml:"range,omitempty"`
}

// SymbolInfo describes one symbol or diacritic.
type SymbolInfo struct {
	Label     string `json:"label" yaml:"label"`
	Matrix    string `json:"matrix" yaml:"matrix"`
	Diacritic bool   `json:"diacritic,omitempty" yaml:"diacritic,omitempty"`
}

// CheckResult summarizes a definition that built cleanly.
type CheckResult struct {
	Name       string `json:"name" yaml:"name"`
	Features   int    `json:"features" yaml:"features"`
	Symbols    int    `json:"symbols" yaml:"symbols"`
	Diacritics int    `json:"diacritics" yaml:"diacritics"`
	Rules      int    `json:"rules" yaml:"rules"`
	Persistent int    `json:"persistent" yaml:"persistent"`
	Syllables  bool   `json:"syllables" yaml:"syllables"`
}

func load(command string, opts Options) (*phonology.Phonology, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().
		Str("command", command).
		Str("definition", opts.Definition).
		Msg("Executing command")
	return internal.LoadPhonology(opts.Definition)
}

// Rules lists ordered rules followed by persistent ones.
func Rules(opts Options) ([]RuleInfo, error) {
	p, err := load("Rules", opts)
	if err != nil {
		return nil, err
	}

	var infos []RuleInfo
	add := func(rs []*rule.Rule, persistent bool) {
		for _, r := range rs {
			info := RuleInfo{
				Name:        r.Name(),
				Description: r.Description(),
				Direction:   r.Direction().String(),
				Rate:        r.ApplicationRate(),
				Persistent:  persistent,
			}
			if f := r.Filter(); f != nil {
				info.Filter = fmt.Sprint(f)
			}
			infos = append(infos, info)
		}
	}
	add(p.Rules.Rules(), false)
	add(p.Rules.Persistent(), true)
	return infos, nil
}

// Features lists features in definition order.
func Features(opts Options) ([]FeatureInfo, error) {
	p, err := load("Features", opts)
	if err != nil {
		return nil, err
	}

	var infos []FeatureInfo
	for _, f := range p.Features.Features() {
		info := FeatureInfo{Name: f.Name(), Kind: f.Kind().String()}
		if parent := f.Parent(); parent != nil {
			info.Parent = parent.Name()
		}
		for _, c := range f.Children() {
			info.Children = append(info.Children, c.Name())
		}
		if f.Kind() == feature.Scalar {
			if min, max, ok := f.Range(); ok {
				info.Range = fmt.Sprintf("%d..%d", min, max)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Symbols lists base symbols, then diacritics.
func Symbols(opts Options) ([]SymbolInfo, error) {
	p, err := load("Symbols", opts)
	if err != nil {
		return nil, err
	}

	var infos []SymbolInfo
	for _, s := range p.Symbols.Symbols() {
		infos = append(infos, SymbolInfo{Label: s.Label, Matrix: s.Matrix.String()})
	}
	for _, s := range p.Symbols.Diacritics() {
		infos = append(infos, SymbolInfo{Label: s.Label, Matrix: s.Matrix.String(), Diacritic: true})
	}
	return infos, nil
}

// Check builds the definition and summarizes it.
func Check(opts Options) (*CheckResult, error) {
	p, err := load("Check", opts)
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		Name:       p.Name,
		Features:   p.Features.Len(),
		Symbols:    len(p.Symbols.Symbols()),
		Diacritics: len(p.Symbols.Diacritics()),
		Rules:      len(p.Rules.Rules()),
		Persistent: len(p.Rules.Persistent()),
		Syllables:  p.Syllabifier != nil,
	}, nil
}

// String renders a check result on one line.
func (c *CheckResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d features, %d symbols, %d diacritics, %d rules",
		c.Name, c.Features, c.Symbols, c.Diacritics, c.Rules)
	if c.Persistent > 0 {
		fmt.Fprintf(&b, " (%d persistent)", c.Persistent)
	}
	if c.Syllables {
		b.WriteString(", syllabified")
	}
	return b.String()
}
