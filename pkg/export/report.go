package export

import (
	"time"

	"github.com/google/uuid"
)

// Report is the result of one phonix run.
type Report struct {
	ID          string       `json:"id" yaml:"id"`
	Phonology   string       `json:"phonology" yaml:"phonology"`
	Definition  string       `json:"definition,omitempty" yaml:"definition,omitempty"`
	Checksum    string       `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Created     time.Time    `json:"created" yaml:"created"`
	Derivations []Derivation `json:"derivations" yaml:"derivations"`
}

// Derivation follows one word through the rules.
type Derivation struct {
	Input    string    `json:"input" yaml:"input"`
	Output   string    `json:"output" yaml:"output"`
	Steps    []Step    `json:"steps,omitempty" yaml:"steps,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Step is one rule application.
type Step struct {
	Rule        string `json:"rule" yaml:"rule"`
	Description string `json:"description" yaml:"description"`
	Before      string `json:"before" yaml:"before"`
	After       string `json:"after" yaml:"after"`
}

// Warning kinds
const (
	WarnUndefinedVariable = "undefined_variable"
	WarnScalarRange       = "scalar_range"
	WarnInvalidScalarOp   = "invalid_scalar_op"
)

// Warning is a recoverable problem a rule hit while rewriting.
type Warning struct {
	Rule    string `json:"rule" yaml:"rule"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// NewReport stamps derivations with a fresh run ID.
func NewReport(phonology string, derivations []Derivation) *Report {
	return &Report{
		ID:          uuid.NewString(),
		Phonology:   phonology,
		Created:     time.Now().UTC(),
		Derivations: derivations,
	}
}

// Changed reports whether any rule applied.
func (d Derivation) Changed() bool {
	return len(d.Steps) > 0
}
