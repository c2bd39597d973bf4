// Package topics adds file-based help topics to a Cobra command tree.
//
// Topics are read from an fs.FS, usually an embedded directory, and are
// shown by "help <topic>". Files named option-<flag> document a flag and
// can be looked up as "help --<flag>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/spf13/cobra"
)

const optionPrefix = "option-"

// Manager holds the topics found in a file system.
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Topic is one help file.
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Format is the topic's file extension.
func (t *Topic) Format() string {
	return path.Ext(t.Path)
}

// Options configures a Manager.
type Options struct {
	// Extensions lists the file extensions read as topics. Defaults to
	// .txt and .md.
	Extensions []string
	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New reads every topic in fsys.
func New(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	if err := m.scan(fsys); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) scan(fsys fs.FS) error {
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := path.Ext(p)
		if d.IsDir() || !slices.Contains(m.extensions, ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to scan help topics")
	}
	return nil
}

// Get finds a topic by name. Flag spellings ("--seed", "-seed") find the
// matching option topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// Names returns every topic name, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the manager's renderer.
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, t.Format())
}

// WriteIndex lists the topics, general ones first.
func (m *Manager) WriteIndex(w io.Writer, program string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, optionPrefix); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Initialize reads the topics in fsys and installs a help command that
// serves them alongside command help.
func Initialize(root *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m, err := New(fsys, opts)
	if err != nil {
		return nil, err
	}

	commandHelp := root.HelpFunc()
	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		DisableFlagParsing: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			args = positional(root, args)
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				commandHelp(root, nil)
			case args[0] == "topics":
				m.WriteIndex(out, root.Name())
			default:
				if t, ok := m.Get(args[0]); ok {
					fmt.Fprint(out, m.Render(t))
					return
				}
				target, _, err := root.Find(args)
				if err != nil || target == nil {
					target = root
				}
				commandHelp(target, args)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
	return m, nil
}

// positional drops the root's persistent flags, and their values, from
// args. The help command parses no flags itself so that "help --flag"
// reaches the option topics.
func positional(root *cobra.Command, args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			out = append(out, arg)
			continue
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		flags := root.PersistentFlags()
		f := flags.Lookup(name)
		if f == nil && !strings.HasPrefix(arg, "--") && len(name) == 1 {
			f = flags.ShorthandLookup(name)
		}
		if f == nil {
			out = append(out, arg)
			continue
		}
		if !hasValue && f.NoOptDefVal == "" {
			i++
		}
	}
	return out
}
