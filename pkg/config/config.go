package config

import (
	stderrors "errors"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Config is the phonix application configuration.
type Config struct {
	Logging Logging `koanf:"logging" toml:"logging" yaml:"logging" json:"logging"`
	Derive  Derive  `koanf:"derive" toml:"derive" yaml:"derive" json:"derive"`
	Output  Output  `koanf:"output" toml:"output" yaml:"output" json:"output"`
}

// Logging holds log settings
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity" validate:"gte=0"`
}

// Derive holds derivation settings
type Derive struct {
	// Definition is the phonology used when none is named explicitly
	Definition string `koanf:"definition" toml:"definition" yaml:"definition" json:"definition"`
	// Seed fixes the random source of sporadic rules; 0 uses the clock
	Seed      uint64 `koanf:"seed" toml:"seed" yaml:"seed" json:"seed"`
	ShowTrace bool   `koanf:"show_trace" toml:"show_trace" yaml:"showTrace" json:"showTrace"`
}

// Output holds report rendering settings
type Output struct {
	Format string `koanf:"format" toml:"format" yaml:"format" json:"format" validate:"oneof=text json xml yaml"`
	Color  string `koanf:"color" toml:"color" yaml:"color" json:"color" validate:"oneof=auto always never"`
}

var configValidate = validator.New()

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return errors.Wrapf(err, errors.ErrConfigValid,
				"invalid configuration: %s = %v", first.Namespace(), first.Value()).
				WithDetail("field", first.Namespace())
		}
		return errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}
	return nil
}
