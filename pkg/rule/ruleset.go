package rule

import "github.com/NicholasDeLioncourt/phonix/pkg/word"

// RuleSet applies ordered rules in sequence. Persistent rules are applied
// again after every ordered rule.
type RuleSet struct {
	ordered    []*Rule
	persistent []*Rule
	listeners  []Listener
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Add appends an ordered rule.
func (s *RuleSet) Add(r *Rule) {
	s.attach(r)
	s.ordered = append(s.ordered, r)
}

// AddPersistent adds a rule that reapplies after every ordered rule.
func (s *RuleSet) AddPersistent(r *Rule) {
	s.attach(r)
	s.persistent = append(s.persistent, r)
}

func (s *RuleSet) attach(r *Rule) {
	for _, l := range s.listeners {
		r.AddListener(l)
	}
}

// AddListener subscribes l to every rule in the set, including rules
// added later.
func (s *RuleSet) AddListener(l Listener) {
	if l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
	for _, r := range s.ordered {
		r.AddListener(l)
	}
	for _, r := range s.persistent {
		r.AddListener(l)
	}
}

func (s *RuleSet) Rules() []*Rule { return append([]*Rule(nil), s.ordered...) }

func (s *RuleSet) Persistent() []*Rule { return append([]*Rule(nil), s.persistent...) }

// Get finds a rule by name.
func (s *RuleSet) Get(name string) (*Rule, bool) {
	for _, list := range [][]*Rule{s.ordered, s.persistent} {
		for _, r := range list {
			if r.name == name {
				return r, true
			}
		}
	}
	return nil, false
}

// ApplyAll runs every ordered rule over w, following each with the
// persistent rules.
func (s *RuleSet) ApplyAll(w *word.Word) {
	for _, r := range s.ordered {
		r.Apply(w)
		for _, p := range s.persistent {
			p.Apply(w)
		}
	}
}
