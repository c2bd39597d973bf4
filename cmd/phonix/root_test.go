// cmd/phonix/root_test.go
// TEST TYPE: CLI Integration
// DEPENDENCIES: phonology testdata, temp config file
// PURPOSE: Run the phonix command tree end to end

package phonix

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/commands"
	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	soundChanges = "../../pkg/phonology/testdata/sound-changes.toml"
	broken       = "../../pkg/commands/inspect/testdata/broken.toml"
)

// run executes phonix with an empty config file so the user's own
// settings never leak in.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, nil, 0644))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfg, "--color", "never"}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err)
	return out
}

func TestDerive(t *testing.T) {
	out := mustRun(t, "derive", "-d", soundChanges, "pata", "katab")
	assert.Equal(t, "pata → pada\nkatab → kadap\n", out)
}

func TestDerive_Trace(t *testing.T) {
	out := mustRun(t, "derive", "-d", soundChanges, "--trace", "katab")
	assert.Contains(t, out, "phonix · sound-changes")
	assert.Contains(t, out, "  intervocalic-voicing")
	assert.Contains(t, out, "katab → kadab")
	assert.Contains(t, out, "  final-devoicing")
}

func TestDerive_JSON(t *testing.T) {
	out := mustRun(t, "derive", "-d", soundChanges, "-o", "json", "sta")

	var rep export.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "sound-changes", rep.Phonology)
	require.Len(t, rep.Derivations, 1)
	assert.Equal(t, "esta", rep.Derivations[0].Output)
}

func TestDerive_XML(t *testing.T) {
	out := mustRun(t, "derive", "-d", soundChanges, "-o", "xml", "pata")
	assert.Contains(t, out, "<?xml")
	assert.Contains(t, out, `<derivation input="pata" output="pada">`)
}

func TestDerive_InputFile(t *testing.T) {
	words := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("# words\npata\nsta\n"), 0644))

	out := mustRun(t, "derive", "-d", soundChanges, "-i", words, "--seed", "7")
	assert.Equal(t, "pata → pada\nsta → esta\n", out)
}

func TestDerive_Stdin(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, nil, 0644))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetIn(bytes.NewBufferString("katab\n"))
	root.SetArgs([]string{"--config", cfg, "--color", "never", "derive", "-d", soundChanges, "-i", "-"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "katab → kadap\n", out.String())
}

func TestDerive_Errors(t *testing.T) {
	t.Run("bad format", func(t *testing.T) {
		_, err := run(t, "derive", "-o", "csv", "pata")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := run(t, "derive", "-i", filepath.Join(t.TempDir(), "none.txt"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := run(t, "derive", "-d", soundChanges, "pa?a")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestRules(t *testing.T) {
	out := mustRun(t, "rules", "-d", soundChanges, "-o", "json")

	var rules []commands.RuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Len(t, rules, 3)
	assert.Equal(t, "final-devoicing", rules[1].Name)

	out = mustRun(t, "rules", "-d", soundChanges)
	assert.Contains(t, out, "intervocalic-voicing")
	assert.Contains(t, out, "leftward")

	assert.Equal(t, "No rules.\n", mustRun(t, "rules"))
}

func TestFeaturesAndSymbols(t *testing.T) {
	out := mustRun(t, "features")
	assert.Contains(t, out, "Coronal")
	assert.Contains(t, out, "ant dist")
	assert.Contains(t, out, "0..2")

	out = mustRun(t, "symbols", "-o", "yaml")
	assert.Contains(t, out, "- label: p\n")
	assert.Contains(t, out, "diacritic: true")
}

func TestCheck(t *testing.T) {
	out := mustRun(t, "check", "-d", soundChanges)
	assert.Equal(t, "✓ sound-changes: 18 features, 28 symbols, 2 diacritics, 3 rules\n", out)

	_, err := run(t, "check", "-d", broken)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
}

func TestConfig(t *testing.T) {
	out := mustRun(t, "config", "--defaults")
	assert.Contains(t, out, "[derive]")

	out = mustRun(t, "config", "-o", "yaml", "-d", "rules.toml")
	assert.Contains(t, out, "rules.toml")
	assert.Contains(t, out, "yaml")
}

func TestMisc(t *testing.T) {
	assert.Contains(t, mustRun(t, "version"), "phonix version")
	assert.Contains(t, mustRun(t, "completion", "bash"), "bash completion")

	_, err := run(t)
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	out := mustRun(t, "help", "topics")
	assert.Contains(t, out, "notation")
	assert.Contains(t, out, "--seed")

	assert.Contains(t, mustRun(t, "help", "notation"), "Feature notation")
	assert.Contains(t, mustRun(t, "help", "--seed"), "reproducible")
}
