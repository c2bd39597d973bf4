package rule

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
	"github.com/rs/zerolog"
)

// Listener receives a rule's lifecycle events and its recoverable errors.
type Listener interface {
	RuleEntered(r *Rule, w *word.Word)
	RuleApplied(r *Rule, w *word.Word, at *word.Slice)
	RuleExited(r *Rule, w *word.Word)
	UndefinedVariableUsed(r *Rule, variable string)
	ScalarValueRangeViolation(r *Rule, feature string, value int)
	InvalidScalarValueOp(r *Rule, feature string, op string)
}

// ListenerFuncs is a Listener built from optional functions.
type ListenerFuncs struct {
	OnEntered         func(r *Rule, w *word.Word)
	OnApplied         func(r *Rule, w *word.Word, at *word.Slice)
	OnExited          func(r *Rule, w *word.Word)
	OnUndefined       func(r *Rule, variable string)
	OnScalarRange     func(r *Rule, feature string, value int)
	OnInvalidScalarOp func(r *Rule, feature string, op string)
}

func (f ListenerFuncs) RuleEntered(r *Rule, w *word.Word) {
	if f.OnEntered != nil {
		f.OnEntered(r, w)
	}
}

func (f ListenerFuncs) RuleApplied(r *Rule, w *word.Word, at *word.Slice) {
	if f.OnApplied != nil {
		f.OnApplied(r, w, at)
	}
}

func (f ListenerFuncs) RuleExited(r *Rule, w *word.Word) {
	if f.OnExited != nil {
		f.OnExited(r, w)
	}
}

func (f ListenerFuncs) UndefinedVariableUsed(r *Rule, variable string) {
	if f.OnUndefined != nil {
		f.OnUndefined(r, variable)
	}
}

func (f ListenerFuncs) ScalarValueRangeViolation(r *Rule, feature string, value int) {
	if f.OnScalarRange != nil {
		f.OnScalarRange(r, feature, value)
	}
}

func (f ListenerFuncs) InvalidScalarValueOp(r *Rule, feature string, op string) {
	if f.OnInvalidScalarOp != nil {
		f.OnInvalidScalarOp(r, feature, op)
	}
}

// Tracer logs rule events. Spell renders a word for the log; when nil the
// raw matrices are logged.
type Tracer struct {
	logger zerolog.Logger
	Spell  func(w *word.Word) string
}

// NewTracer creates a tracer logging through the "rule" component.
func NewTracer(spell func(w *word.Word) string) *Tracer {
	return &Tracer{
		logger: logging.GetLogger("rule"),
		Spell:  spell,
	}
}

func (t *Tracer) spell(w *word.Word) string {
	if t.Spell != nil {
		return t.Spell(w)
	}
	return w.String()
}

func (t *Tracer) RuleEntered(r *Rule, w *word.Word) {
	t.logger.Debug().Str("rule", r.Name()).Str("word", t.spell(w)).Msg("Rule entered")
}

func (t *Tracer) RuleApplied(r *Rule, w *word.Word, _ *word.Slice) {
	t.logger.Info().Str("rule", r.Name()).Str("word", t.spell(w)).Msg("Rule applied")
}

func (t *Tracer) RuleExited(r *Rule, w *word.Word) {
	t.logger.Debug().Str("rule", r.Name()).Str("word", t.spell(w)).Msg("Rule exited")
}

func (t *Tracer) UndefinedVariableUsed(r *Rule, variable string) {
	t.logger.Warn().Str("rule", r.Name()).Str("variable", variable).Msg("Undefined variable used")
}

func (t *Tracer) ScalarValueRangeViolation(r *Rule, feature string, value int) {
	t.logger.Warn().
		Str("rule", r.Name()).
		Str("feature", feature).
		Int("value", value).
		Msg("Scalar value out of range")
}

func (t *Tracer) InvalidScalarValueOp(r *Rule, feature string, op string) {
	t.logger.Warn().
		Str("rule", r.Name()).
		Str("feature", feature).
		Str("op", op).
		Msg("Invalid scalar operation")
}
