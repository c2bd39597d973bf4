package rule

import (
	"math/rand/v2"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
)

// Rule is a named pattern with an optional exclusion pattern. Configure it
// with the setters before the first Apply; it is read-only afterwards.
type Rule struct {
	name      string
	segments  []*Segment
	excluded  []*Segment
	filter    feature.Matcher
	direction word.Direction
	rate      float64
	rng       *rand.Rand
	listeners []Listener

	description string
}

// New creates a rule. Both lists are required; pass an empty exclusion
// list for a rule without exclusions.
func New(name string, segments, excluded []*Segment) (*Rule, error) {
	if segments == nil {
		return nil, errors.Newf(errors.ErrRuleInvalid, "rule %s has no segment list", name).
			WithDetail("rule", name)
	}
	if excluded == nil {
		return nil, errors.Newf(errors.ErrRuleInvalid, "rule %s has no exclusion list", name).
			WithDetail("rule", name)
	}
	for _, list := range [][]*Segment{segments, excluded} {
		for _, s := range list {
			if s == nil {
				return nil, errors.Newf(errors.ErrRuleInvalid, "rule %s contains a nil segment", name).
					WithDetail("rule", name)
			}
		}
	}

	return &Rule{
		name:     name,
		segments: append([]*Segment(nil), segments...),
		excluded: append([]*Segment(nil), excluded...),
		rate:     1.0,
	}, nil
}

func (r *Rule) Name() string { return r.name }

func (r *Rule) String() string { return r.name }

// Segments returns the rule pattern.
func (r *Rule) Segments() []*Segment { return append([]*Segment(nil), r.segments...) }

// Excluded returns the exclusion pattern.
func (r *Rule) Excluded() []*Segment { return append([]*Segment(nil), r.excluded...) }

// Filter restricts the positions the rule sees. Nil means every position.
func (r *Rule) Filter() feature.Matcher { return r.filter }

func (r *Rule) SetFilter(m feature.Matcher) { r.filter = m }

func (r *Rule) Direction() word.Direction { return r.direction }

func (r *Rule) SetDirection(d word.Direction) { r.direction = d }

// ApplicationRate is the probability of applying at each matching position.
func (r *Rule) ApplicationRate() float64 { return r.rate }

// SetApplicationRate sets the per-position application probability.
func (r *Rule) SetApplicationRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return errors.Newf(errors.ErrRuleInvalid, "application rate %g is outside [0, 1]", rate).
			WithDetail("rule", r.name).
			WithDetail("rate", rate)
	}
	r.rate = rate
	return nil
}

// SetRandom sets the source used for application-rate draws. Without one
// the rule draws from the process-wide generator.
func (r *Rule) SetRandom(rng *rand.Rand) { r.rng = rng }

// AddListener subscribes l to this rule's events.
func (r *Rule) AddListener(l Listener) {
	if l != nil {
		r.listeners = append(r.listeners, l)
	}
}

func (r *Rule) draw() float64 {
	if r.rng != nil {
		return r.rng.Float64()
	}
	return rand.Float64()
}

// Description renders the rule as "action => result / left _ right".
// Match-only segments before the first editing segment form the left
// context, the rest form the right context.
func (r *Rule) Description() string {
	if r.description != "" {
		return r.description
	}

	var leftCtx, rightCtx, act, result strings.Builder
	leftSide := true
	for _, s := range r.segments {
		if s.IsMatchOnly() {
			if leftSide {
				leftCtx.WriteString(s.MatchString())
			} else {
				rightCtx.WriteString(s.MatchString())
			}
			continue
		}
		act.WriteString(s.MatchString())
		result.WriteString(s.CombineString())
		leftSide = false
	}

	r.description = strings.TrimSpace(act.String() + " => " + result.String() +
		" / " + leftCtx.String() + " _ " + rightCtx.String())
	return r.description
}

// Apply runs the rule over w, editing it in place.
func (r *Rule) Apply(w *word.Word) {
	r.entered(w)
	defer r.exited(w)

	slices := w.Slices(r.direction, r.filter)
	for slices.Next() {
		slice := slices.Slice()

		if r.rate < 1 && r.draw() >= r.rate {
			continue
		}

		ctx := feature.NewContext()
		if !matchSeq(ctx, slice.Cursor(), r.segments, accept) {
			continue
		}

		if len(r.excluded) > 0 {
			cp := ctx.Checkpoint()
			blocked := matchSeq(ctx, slice.Cursor(), r.excluded, accept)
			ctx.Rollback(cp)
			if blocked {
				continue
			}
		}

		ctx.Replay()
		cur := slice.MutableCursor()
		for _, s := range r.segments {
			s.apply(ctx, cur, r.report)
		}
		r.applied(w, slice)
	}
}

// report hands a rewrite error to the listeners. Anything other than the
// three recoverable kinds is a defect in a combiner.
func (r *Rule) report(err error) {
	details := errors.GetErrorDetails(err)
	str := func(key string) string {
		s, _ := details[key].(string)
		return s
	}

	switch errors.GetErrorCode(err) {
	case errors.ErrUndefinedVariable:
		for _, l := range r.listeners {
			l.UndefinedVariableUsed(r, str("variable"))
		}
	case errors.ErrScalarRange:
		value, _ := details["value"].(int)
		for _, l := range r.listeners {
			l.ScalarValueRangeViolation(r, str("feature"), value)
		}
	case errors.ErrInvalidScalarOp:
		for _, l := range r.listeners {
			l.InvalidScalarValueOp(r, str("feature"), str("op"))
		}
	default:
		panic(errors.Wrapf(err, errors.ErrInternal, "rule %s: unexpected rewrite error", r.name))
	}
}

func (r *Rule) entered(w *word.Word) {
	for _, l := range r.listeners {
		l.RuleEntered(r, w)
	}
}

func (r *Rule) applied(w *word.Word, at *word.Slice) {
	for _, l := range r.listeners {
		l.RuleApplied(r, w, at)
	}
}

func (r *Rule) exited(w *word.Word) {
	for _, l := range r.listeners {
		l.RuleExited(r, w)
	}
}
