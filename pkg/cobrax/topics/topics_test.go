// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory file system
// PURPOSE: Test topic discovery, lookup and the help command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"notation.md":      {Data: []byte("# Notation\n\nRules are written as segments.")},
		"option-seed.txt":  {Data: []byte("Seed help")},
		"nested/inner.txt": {Data: []byte("Nested help")},
		"sketch.txxt":      {Data: []byte("Draft")},
		"ignored.json":     {Data: []byte("{}")},
	}
}

func TestManager_Scan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m, err := New(testFS(), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"inner", "notation", "option-seed"}, m.Names())

		topic, ok := m.Get("notation")
		require.True(t, ok)
		assert.Equal(t, ".md", topic.Format())
		assert.Contains(t, topic.Content, "Rules are written")
	})

	t.Run("custom extensions", func(t *testing.T) {
		m, err := New(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"sketch"}, m.Names())
	})
}

func TestManager_Get(t *testing.T) {
	m, err := New(testFS(), Options{})
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"notation", "notation", true},
		{"option-seed", "option-seed", true},
		{"--seed", "option-seed", true},
		{"-seed", "option-seed", true},
		{"seed", "option-seed", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := m.Get(tt.input)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, topic.Name)
			}
		})
	}
}

func TestManager_WriteIndex(t *testing.T) {
	m, err := New(testFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteIndex(&buf, "phonix")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  inner\n  notation\n")
	assert.Contains(t, out, "Option topics:\n  --seed\n")
	assert.Contains(t, out, "phonix help <topic>")

	empty, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.WriteIndex(&buf, "phonix")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestPositional(t *testing.T) {
	root := &cobra.Command{Use: "phonix"}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().StringP("output", "o", "text", "")
	root.PersistentFlags().CountP("verbose", "v", "")

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"notation"}, []string{"notation"}},
		{[]string{"--config", "c.toml", "notation"}, []string{"notation"}},
		{[]string{"--config=c.toml", "-o", "json", "--seed"}, []string{"--seed"}},
		{[]string{"-v", "derive"}, []string{"derive"}},
		{nil, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, positional(root, tt.args), "%v", tt.args)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	if format == ".md" {
		return strings.ToUpper(content)
	}
	return content
}

func TestInitialize(t *testing.T) {
	root := &cobra.Command{Use: "phonix"}
	root.AddCommand(&cobra.Command{Use: "derive", Short: "Derive words", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testFS(), Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Contains(t, run("help", "notation"), "RULES ARE WRITTEN")
	assert.Equal(t, "Seed help", run("help", "--seed"))
	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.Contains(t, run("help", "derive"), "Derive words")
}

func TestGlamourRenderer_PassesThroughText(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	out := r.Render("# Title\n\nbody text", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}
