package phonology

import (
	"os"
	"path/filepath"
	"time"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/NicholasDeLioncourt/phonix/pkg/rule"
	"github.com/NicholasDeLioncourt/phonix/pkg/symbol"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
)

// Load reads a definition file and builds it. Imports are resolved
// relative to the file.
func Load(path string) (*Phonology, error) {
	defer logging.LogDuration(time.Now(), "load-definition")

	def, err := ReadDefinition(path)
	if err != nil {
		return nil, err
	}
	p := New()
	if abs, err := filepath.Abs(path); err == nil {
		p.imported[abs] = true
	}
	if err := p.Merge(def, filepath.Dir(path)); err != nil {
		return nil, err
	}
	return p, nil
}

// Build builds a definition that has no file of its own. Relative imports
// are resolved against the working directory.
func Build(def *Definition) (*Phonology, error) {
	p := New()
	if err := p.Merge(def, "."); err != nil {
		return nil, err
	}
	return p, nil
}

// Merge adds the contents of def to p, after its imports.
func (p *Phonology) Merge(def *Definition, baseDir string) error {
	if p.Name == "" {
		p.Name = def.Name
	}

	for _, imp := range def.Imports {
		if err := p.importDefinition(imp, baseDir); err != nil {
			return err
		}
	}

	n := &notation{features: p.Features, symbols: p.Symbols}
	if err := p.addFeatures(def.Features); err != nil {
		return err
	}
	if err := p.addSymbols(n, def.Symbols); err != nil {
		return err
	}
	if def.Syllable != nil {
		if err := p.setSyllabifier(n, def.Syllable); err != nil {
			return err
		}
	}
	for _, rd := range def.Rules {
		if err := p.addRule(n, rd); err != nil {
			return err
		}
	}

	p.logger.Debug().
		Str("name", def.Name).
		Int("features", len(def.Features)).
		Int("symbols", len(def.Symbols)).
		Int("rules", len(def.Rules)).
		Msg("Definition merged")
	return nil
}

func (p *Phonology) importDefinition(name, baseDir string) error {
	key := name
	var def *Definition
	var err error
	dir := baseDir

	if name == StdName {
		if p.imported[key] {
			return nil
		}
		def, err = StdDefinition()
	} else {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if abs, absErr := filepath.Abs(path); absErr == nil {
			path = abs
		}
		key = path
		if p.imported[key] {
			return nil
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return errors.Wrapf(statErr, errors.ErrNotFound, "import %s not found", name).
				WithDetail("import", name)
		}
		dir = filepath.Dir(path)
		def, err = ReadDefinition(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to import %s", name).
			WithDetail("import", name)
	}

	// marked before merging so an import cycle ends here
	p.imported[key] = true
	p.logger.Debug().Str("import", name).Msg("Importing definition")
	return p.Merge(def, dir)
}

func (p *Phonology) addFeatures(defs []FeatureDef) error {
	var nodes []FeatureDef
	for _, fd := range defs {
		if fd.Type == "node" {
			nodes = append(nodes, fd)
			continue
		}
		if err := p.addFeature(fd); err != nil {
			return err
		}
	}

	// nodes may group other nodes, so keep going while any can be built
	for len(nodes) > 0 {
		var pending []FeatureDef
		for _, fd := range nodes {
			children, ready := p.nodeChildren(fd)
			if !ready {
				pending = append(pending, fd)
				continue
			}
			if _, err := p.Features.NewNode(fd.Name, children...); err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "feature %s", fd.Name).
					WithDetail("feature", fd.Name)
			}
		}
		if len(pending) == len(nodes) {
			fd := pending[0]
			return errors.Newf(errors.ErrNotFound, "node %s has undefined children %v", fd.Name, fd.Children).
				WithDetail("feature", fd.Name)
		}
		nodes = pending
	}
	return nil
}

func (p *Phonology) nodeChildren(fd FeatureDef) ([]*feature.Feature, bool) {
	children := make([]*feature.Feature, 0, len(fd.Children))
	for _, name := range fd.Children {
		c, ok := p.Features.Get(name)
		if !ok {
			return nil, false
		}
		children = append(children, c)
	}
	return children, true
}

func (p *Phonology) addFeature(fd FeatureDef) error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrInvalidInput, format, args...).WithDetail("feature", fd.Name)
	}
	if len(fd.Children) > 0 {
		return invalid("feature %s is %s and cannot have children", fd.Name, fd.Type)
	}
	if fd.Type != "scalar" && (fd.Min != nil || fd.Max != nil) {
		return invalid("feature %s is %s and cannot have a range", fd.Name, fd.Type)
	}

	var err error
	switch fd.Type {
	case "unary":
		_, err = p.Features.NewUnary(fd.Name)
	case "binary":
		_, err = p.Features.NewBinary(fd.Name)
	case "scalar":
		switch {
		case fd.Min != nil && fd.Max != nil:
			_, err = p.Features.NewBoundedScalar(fd.Name, *fd.Min, *fd.Max)
		case fd.Min != nil || fd.Max != nil:
			return invalid("scalar %s needs both min and max, or neither", fd.Name)
		default:
			_, err = p.Features.NewScalar(fd.Name)
		}
	default:
		return invalid("feature %s has unknown type %q", fd.Name, fd.Type)
	}
	return err
}

func (p *Phonology) addSymbols(n *notation, defs []SymbolDef) error {
	for _, sd := range defs {
		m, err := n.Matrix(sd.Matrix)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "symbol %s", sd.Label).
				WithDetail("symbol", sd.Label)
		}
		sym := &symbol.Symbol{Label: sd.Label, Matrix: m}
		if sd.Diacritic {
			err = p.Symbols.AddDiacritic(sym)
		} else {
			err = p.Symbols.Add(sym)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Phonology) setSyllabifier(n *notation, sd *SyllableDef) error {
	optional := func(s string) (feature.Matcher, error) {
		if s == "" {
			return nil, nil
		}
		return n.Matcher(s)
	}

	nucleus, err := n.Matcher(sd.Nucleus)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "syllable nucleus")
	}
	onset, err := optional(sd.Onset)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "syllable onset")
	}
	coda, err := optional(sd.Coda)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "syllable coda")
	}
	p.Syllabifier = &word.Syllabifier{Onset: onset, Nucleus: nucleus, Coda: coda}
	return nil
}

func (p *Phonology) addRule(n *notation, rd RuleDef) error {
	wrap := func(err error, what string) error {
		return errors.Wrapf(err, errors.ErrRuleInvalid, "rule %s: %s", rd.Name, what).
			WithDetail("rule", rd.Name)
	}

	segments, err := buildSegments(n, rd.Segments)
	if err != nil {
		return wrap(err, "segments")
	}
	excluded, err := buildSegments(n, rd.Exclude)
	if err != nil {
		return wrap(err, "exclusion")
	}

	r, err := rule.New(rd.Name, segments, excluded)
	if err != nil {
		return err
	}

	dir, _ := word.ParseDirection(rd.Direction)
	r.SetDirection(dir)
	if rd.ApplicationRate != nil {
		if err := r.SetApplicationRate(*rd.ApplicationRate); err != nil {
			return err
		}
	}
	if rd.Filter != "" {
		filter, err := n.Matcher(rd.Filter)
		if err != nil {
			return wrap(err, "filter")
		}
		r.SetFilter(filter)
	}

	if _, exists := p.Rules.Get(rd.Name); exists {
		p.logger.Warn().Str("rule", rd.Name).Msg("Rule name defined more than once")
	}
	if rd.Persist {
		p.Rules.AddPersistent(r)
	} else {
		p.Rules.Add(r)
	}
	return nil
}

// buildSegments never returns nil, so an empty list is a valid exclusion.
func buildSegments(n *notation, defs []SegmentDef) ([]*rule.Segment, error) {
	out := make([]*rule.Segment, 0, len(defs))
	for i, sd := range defs {
		s, err := buildSegment(n, sd)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleInvalid, "segment %d (%s)", i+1, sd.Kind).
				WithDetail("segment", i+1)
		}
		out = append(out, s)
	}
	return out, nil
}

func buildSegment(n *notation, sd SegmentDef) (*rule.Segment, error) {
	switch sd.Kind {
	case "context", "action", "delete":
		m, err := n.Matcher(sd.Match)
		if err != nil {
			return nil, err
		}
		switch sd.Kind {
		case "context":
			return rule.Context(m), nil
		case "delete":
			return rule.Deleting(m), nil
		}
		c, err := n.Combiner(sd.Action)
		if err != nil {
			return nil, err
		}
		return rule.Action(m, c), nil

	case "insert":
		c, err := n.Combiner(sd.Action)
		if err != nil {
			return nil, err
		}
		return rule.Inserting(c), nil

	case "step":
		return rule.Step(), nil

	case "backstep":
		return rule.Backstep(), nil

	case "boundary":
		switch sd.Side {
		case "left":
			return rule.LeftBoundary, nil
		case "right":
			return rule.RightBoundary, nil
		}
		return nil, errors.New(errors.ErrRuleInvalid, "boundary needs side = \"left\" or \"right\"")

	case "repeat":
		inner, err := buildSegments(n, sd.Segments)
		if err != nil {
			return nil, err
		}
		max := rule.Unbounded
		if sd.Max != nil {
			max = *sd.Max
		}
		return rule.Repeat(inner, sd.Min, max)
	}
	return nil, errors.Newf(errors.ErrRuleInvalid, "unknown segment kind %q", sd.Kind)
}
