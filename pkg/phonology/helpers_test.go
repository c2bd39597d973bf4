// pkg/phonology/helpers_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: embedded std definition
// PURPOSE: Shared helpers building phonologies from TOML snippets

package phonology_test

import (
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/phonology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withStd builds a phonology from a TOML snippet that imports std.
func withStd(t *testing.T, doc string) *phonology.Phonology {
	t.Helper()
	def, err := phonology.ParseDefinition([]byte("imports = [\"std\"]\n"+doc), phonology.FormatTOML)
	require.NoError(t, err)
	p, err := phonology.Build(def)
	require.NoError(t, err)
	return p
}

func assertDerives(t *testing.T, p *phonology.Phonology, input, want string) {
	t.Helper()
	got, err := p.Derive(input)
	require.NoError(t, err)
	assert.Equal(t, want, got, "derive %q", input)
}
