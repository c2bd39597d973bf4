package phonology

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Definition is the document form of a phonology.
type Definition struct {
	Name     string       `koanf:"name" toml:"name,omitempty" yaml:"name,omitempty"`
	Imports  []string     `koanf:"imports" toml:"imports,omitempty" yaml:"imports,omitempty"`
	Features []FeatureDef `koanf:"features" toml:"features,omitempty" yaml:"features,omitempty" validate:"dive"`
	Symbols  []SymbolDef  `koanf:"symbols" toml:"symbols,omitempty" yaml:"symbols,omitempty" validate:"dive"`
	Syllable *SyllableDef `koanf:"syllable" toml:"syllable,omitempty" yaml:"syllable,omitempty"`
	Rules    []RuleDef    `koanf:"rules" toml:"rules,omitempty" yaml:"rules,omitempty" validate:"dive"`
}

// FeatureDef declares one feature. Min and Max bound a scalar feature;
// Children lists the members of a node feature.
type FeatureDef struct {
	Name     string   `koanf:"name" toml:"name" yaml:"name" validate:"required,excludesall=[]<>$*=+-!"`
	Type     string   `koanf:"type" toml:"type" yaml:"type" validate:"required,oneof=unary binary scalar node"`
	Min      *int     `koanf:"min" toml:"min,omitempty" yaml:"min,omitempty"`
	Max      *int     `koanf:"max" toml:"max,omitempty" yaml:"max,omitempty"`
	Children []string `koanf:"children" toml:"children,omitempty" yaml:"children,omitempty" validate:"required_if=Type node"`
}

// SymbolDef maps a label to a matrix. Diacritic symbols only modify a
// preceding base symbol.
type SymbolDef struct {
	Label     string `koanf:"label" toml:"label" yaml:"label" validate:"required"`
	Matrix    string `koanf:"matrix" toml:"matrix" yaml:"matrix" validate:"required"`
	Diacritic bool   `koanf:"diacritic" toml:"diacritic,omitempty" yaml:"diacritic,omitempty"`
}

// SyllableDef enables syllabification. Each field is a matcher.
type SyllableDef struct {
	Onset   string `koanf:"onset" toml:"onset" yaml:"onset"`
	Nucleus string `koanf:"nucleus" toml:"nucleus" yaml:"nucleus" validate:"required"`
	Coda    string `koanf:"coda" toml:"coda" yaml:"coda"`
}

// RuleDef declares a rule. Persistent rules reapply after every ordered
// rule.
type RuleDef struct {
	Name            string       `koanf:"name" toml:"name" yaml:"name" validate:"required"`
	Direction       string       `koanf:"direction" toml:"direction,omitempty" yaml:"direction,omitempty" validate:"direction"`
	ApplicationRate *float64     `koanf:"application_rate" toml:"application_rate,omitempty" yaml:"application_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	Filter          string       `koanf:"filter" toml:"filter,omitempty" yaml:"filter,omitempty"`
	Persist         bool         `koanf:"persist" toml:"persist,omitempty" yaml:"persist,omitempty"`
	Segments        []SegmentDef `koanf:"segments" toml:"segments" yaml:"segments" validate:"required,dive"`
	Exclude         []SegmentDef `koanf:"exclude" toml:"exclude,omitempty" yaml:"exclude,omitempty" validate:"dive"`
}

// SegmentDef declares one rule segment. Match and Action are matrices or
// symbol labels; an empty Match matches anything. Min, Max and Segments
// describe a repeat, where a missing Max means no upper bound. Side picks
// the boundary and is required for one.
type SegmentDef struct {
	Kind     string       `koanf:"kind" toml:"kind" yaml:"kind" validate:"required,oneof=context action delete insert step backstep repeat boundary"`
	Match    string       `koanf:"match" toml:"match,omitempty" yaml:"match,omitempty"`
	Action   string       `koanf:"action" toml:"action,omitempty" yaml:"action,omitempty" validate:"required_if=Kind action,required_if=Kind insert"`
	Side     string       `koanf:"side" toml:"side,omitempty" yaml:"side,omitempty" validate:"omitempty,oneof=left right"`
	Min      int          `koanf:"min" toml:"min,omitempty" yaml:"min,omitempty" validate:"gte=0"`
	Max      *int         `koanf:"max" toml:"max,omitempty" yaml:"max,omitempty"`
	Segments []SegmentDef `koanf:"segments" toml:"segments,omitempty" yaml:"segments,omitempty" validate:"required_if=Kind repeat,dive"`
}

// definitionValidate checks definition documents after decoding.
var definitionValidate *validator.Validate

func init() {
	definitionValidate = validator.New()
	_ = definitionValidate.RegisterValidation("direction", validateDirection)
}

func validateDirection(fl validator.FieldLevel) bool {
	_, ok := word.ParseDirection(fl.Field().String())
	return ok
}

// Validate checks the structural constraints of the document. Name
// resolution happens later, when the definition is built.
func (d *Definition) Validate() error {
	if err := definitionValidate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return errors.Wrapf(err, errors.ErrConfigValid,
				"invalid definition: %s fails %q", first.Namespace(), first.Tag()).
				WithDetail("field", first.Namespace()).
				WithDetail("rule", first.Tag())
		}
		return errors.Wrap(err, errors.ErrConfigValid, "invalid definition")
	}
	return nil
}

// Format names a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrConfigParse, "unsupported definition format: %s", path).
		WithDetail("path", path)
}

func (f Format) parser() (koanf.Parser, error) {
	switch f {
	case FormatTOML:
		return toml.Parser(), nil
	case FormatYAML:
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigParse, "unsupported definition format: %s", f)
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// ParseDefinition decodes and validates a definition document.
func ParseDefinition(data []byte, format Format) (*Definition, error) {
	return loadDefinition(&rawBytesProvider{bytes: data}, format, "<bytes>")
}

// ReadDefinition reads a definition file, choosing the format by
// extension.
func ReadDefinition(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "definition %s not found", path).
			WithDetail("path", path)
	}
	return loadDefinition(file.Provider(path), format, path)
}

func loadDefinition(p koanf.Provider, format Format, source string) (*Definition, error) {
	parser, err := format.parser()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(p, parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse definition %s", source).
			WithDetail("source", source)
	}

	var def Definition
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &def,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &def, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode definition %s", source).
			WithDetail("source", source)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// MarshalDefinition writes a definition back out as TOML.
func MarshalDefinition(def *Definition) ([]byte, error) {
	data, err := gotoml.Marshal(def)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal definition")
	}
	return data, nil
}

func (s SegmentDef) String() string {
	if s.Kind == "" {
		return "segment"
	}
	return fmt.Sprintf("%s segment", s.Kind)
}
