package feature

import (
	"strings"
	"sync"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/rs/zerolog"
)

// Set is a registry of features. It assigns each feature a dense index and
// rejects duplicate names. Features are registered at definition time; the
// lookups are safe to use concurrently afterwards.
type Set struct {
	mu       sync.RWMutex
	features []*Feature
	byName   map[string]*Feature
	logger   zerolog.Logger
}

// NewSet creates an empty feature set.
func NewSet() *Set {
	return &Set{
		byName: make(map[string]*Feature),
		logger: logging.GetLogger("feature.set"),
	}
}

func (s *Set) register(name string, kind Kind) (*Feature, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "feature name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "feature %s is already defined", name).
			WithDetail("feature", name)
	}

	f := &Feature{
		name:  name,
		kind:  kind,
		index: len(s.features),
	}
	f.null = newValue(f, null, "*"+name)
	f.variable = newValue(f, variable, "$"+name)

	s.features = append(s.features, f)
	s.byName[name] = f

	s.logger.Trace().
		Str("feature", name).
		Str("kind", kind.String()).
		Int("index", f.index).
		Msg("Registered feature")
	return f, nil
}

// NewUnary registers a feature that is either present or absent.
func (s *Set) NewUnary(name string) (*Feature, error) {
	f, err := s.register(name, Unary)
	if err != nil {
		return nil, err
	}
	f.unary = newValue(f, concrete, name)
	return f, nil
}

// NewBinary registers a feature with plus and minus values.
func (s *Set) NewBinary(name string) (*Feature, error) {
	f, err := s.register(name, Binary)
	if err != nil {
		return nil, err
	}
	f.plus = newValue(f, concrete, "+"+name)
	f.minus = newValue(f, concrete, "-"+name)
	return f, nil
}

// NewScalar registers an integer-valued feature without bounds.
func (s *Set) NewScalar(name string) (*Feature, error) {
	f, err := s.register(name, Scalar)
	if err != nil {
		return nil, err
	}
	f.scalars = make(map[int]*Value)
	return f, nil
}

// NewBoundedScalar registers an integer-valued feature restricted to
// [min, max]. All of its values are interned up front.
func (s *Set) NewBoundedScalar(name string, min, max int) (*Feature, error) {
	if min > max {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"scalar %s has an empty range (%d > %d)", name, min, max)
	}
	f, err := s.NewScalar(name)
	if err != nil {
		return nil, err
	}
	f.bounded = true
	f.min, f.max = min, max
	for n := min; n <= max; n++ {
		f.MustScalarValue(n)
	}
	return f, nil
}

// NewNode registers a grouping feature over existing features of this set.
// A feature can belong to at most one node.
func (s *Set) NewNode(name string, children ...*Feature) (*Feature, error) {
	if len(children) == 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "node feature %s has no children", name)
	}
	for _, c := range children {
		if c == nil || s.lookup(c.name) != c {
			return nil, errors.Newf(errors.ErrNotFound,
				"child of node %s is not part of this feature set", name)
		}
		if c.parent != nil {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"feature %s already belongs to node %s", c.name, c.parent.name)
		}
	}

	f, err := s.register(name, Node)
	if err != nil {
		return nil, err
	}
	f.children = append([]*Feature(nil), children...)
	for _, c := range children {
		c.parent = f
		f.leaves = append(f.leaves, c.Leaves()...)
	}
	f.exists = newValue(f, exists, name)
	return f, nil
}

func (s *Set) lookup(name string) *Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byName[name]
}

// Get finds a feature by name.
func (s *Set) Get(name string) (*Feature, bool) {
	f := s.lookup(name)
	return f, f != nil
}

// Has reports whether a feature with the given name is registered.
func (s *Set) Has(name string) bool {
	return s.lookup(name) != nil
}

// Features returns every registered feature in index order.
func (s *Set) Features() []*Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Feature(nil), s.features...)
}

// Len returns the number of registered features.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}
