package export

import (
	"fmt"
	"sync"

	"github.com/NicholasDeLioncourt/phonix/pkg/rule"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
)

// Recorder is a rule.Listener that collects derivations.
type Recorder struct {
	mu          sync.Mutex
	spell       func(w *word.Word) string
	current     *Derivation
	last        string
	derivations []Derivation
}

// NewRecorder creates a recorder that spells words with spell.
func NewRecorder(spell func(w *word.Word) string) *Recorder {
	return &Recorder{spell: spell}
}

// Begin starts recording the derivation of input.
func (r *Recorder) Begin(input string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &Derivation{Input: input}
	r.last = input
}

// End finishes the current derivation and returns it.
func (r *Recorder) End(output string) Derivation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Derivation{Input: output, Output: output}
	}
	d := *r.current
	d.Output = output
	r.derivations = append(r.derivations, d)
	r.current = nil
	return d
}

// Derivations returns every finished derivation in order.
func (r *Recorder) Derivations() []Derivation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Derivation(nil), r.derivations...)
}

func (r *Recorder) RuleEntered(*rule.Rule, *word.Word) {}

func (r *Recorder) RuleExited(*rule.Rule, *word.Word) {}

func (r *Recorder) RuleApplied(rl *rule.Rule, w *word.Word, _ *word.Slice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	after := r.spell(w)
	r.current.Steps = append(r.current.Steps, Step{
		Rule:        rl.Name(),
		Description: rl.Description(),
		Before:      r.last,
		After:       after,
	})
	r.last = after
}

func (r *Recorder) warn(rl *rule.Rule, kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	r.current.Warnings = append(r.current.Warnings, Warning{Rule: rl.Name(), Kind: kind, Message: msg})
}

func (r *Recorder) UndefinedVariableUsed(rl *rule.Rule, variable string) {
	r.warn(rl, WarnUndefinedVariable, fmt.Sprintf("variable %s used before it was bound", variable))
}

func (r *Recorder) ScalarValueRangeViolation(rl *rule.Rule, feature string, value int) {
	r.warn(rl, WarnScalarRange, fmt.Sprintf("value %d is out of range for %s", value, feature))
}

func (r *Recorder) InvalidScalarValueOp(rl *rule.Rule, feature string, op string) {
	r.warn(rl, WarnInvalidScalarOp, fmt.Sprintf("%s applied to a segment without %s", op, feature))
}
