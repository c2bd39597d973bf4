package feature_test

import (
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/stretchr/testify/require"
)

// fixture mirrors the small test inventory used throughout the engine
// tests: un, bn, sc, and a ROOT node over Node1 (n1a, n1b) and Node2 (n2a).
type fixture struct {
	set   *feature.Set
	un    *feature.Feature
	bn    *feature.Feature
	sc    *feature.Feature
	n1a   *feature.Feature
	n1b   *feature.Feature
	n2a   *feature.Feature
	node1 *feature.Feature
	node2 *feature.Feature
	root  *feature.Feature
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := feature.NewSet()
	f := fixture{set: s}
	var err error

	f.un, err = s.NewUnary("un")
	require.NoError(t, err)
	f.bn, err = s.NewBinary("bn")
	require.NoError(t, err)
	f.sc, err = s.NewBoundedScalar("sc", 0, 3)
	require.NoError(t, err)
	f.n1a, err = s.NewBinary("n1a")
	require.NoError(t, err)
	f.n1b, err = s.NewUnary("n1b")
	require.NoError(t, err)
	f.n2a, err = s.NewBinary("n2a")
	require.NoError(t, err)
	f.node1, err = s.NewNode("Node1", f.n1a, f.n1b)
	require.NoError(t, err)
	f.node2, err = s.NewNode("Node2", f.n2a)
	require.NoError(t, err)
	f.root, err = s.NewNode("ROOT", f.node1, f.node2)
	require.NoError(t, err)
	return f
}

// panicCode runs fn and returns the error code it panicked with.
func panicCode(fn func()) (code errors.ErrorCode) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				code = errors.GetErrorCode(err)
				return
			}
			code = errors.ErrUnknown
		}
	}()
	fn()
	return ""
}
