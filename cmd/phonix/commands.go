package phonix

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NicholasDeLioncourt/phonix/internal/version"
	"github.com/NicholasDeLioncourt/phonix/pkg/commands"
	"github.com/NicholasDeLioncourt/phonix/pkg/config"
	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/export"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (g *globals) format() (export.Format, error) {
	return export.ParseFormat(g.cfg.Output.Format)
}

func (g *globals) inspectOptions() commands.InspectOptions {
	return commands.InspectOptions{Definition: g.cfg.Derive.Definition}
}

func newDeriveCmd(g *globals) *cobra.Command {
	var (
		seed  uint64
		trace bool
		input string
	)

	cmd := &cobra.Command{
		Use:     "derive [words...]",
		Short:   MsgDeriveShort,
		Long:    MsgDeriveLong,
		Example: MsgDeriveExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := g.format()
			if err != nil {
				return err
			}

			opts := commands.DeriveOptions{
				Definition: g.cfg.Derive.Definition,
				Words:      args,
				Seed:       g.cfg.Derive.Seed,
				Trace:      g.cfg.Derive.ShowTrace,
			}
			if input != "" {
				r, closeFn, err := openInput(cmd, input)
				if err != nil {
					return err
				}
				defer closeFn()
				opts.Input = r
			}

			log.Info().
				Str("definition", opts.Definition).
				Int("words", len(args)).
				Uint64("seed", opts.Seed).
				Msg("Deriving")

			report, err := commands.Derive(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := resolveColor(g.cfg.Output.Color, out)
			return export.Render(out, report, format, export.Options{
				NoColor:    !color.enabled,
				ForceColor: color.forced,
				Trace:      opts.Trace,
			})
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, MsgFlagSeed)
	cmd.Flags().BoolVar(&trace, "trace", false, MsgFlagTrace)
	cmd.Flags().StringVarP(&input, "input", "i", "", MsgFlagInput)
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrInvalidInput
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, nil, errors.Wrapf(err, code, MsgErrOpenInput, path).WithDetail("path", path)
	}
	return f, func() { _ = f.Close() }, nil
}

// listing writes rows as a table for text output and as data otherwise.
func listing(cmd *cobra.Command, g *globals, data interface{}, header []string, rows [][]string) error {
	format, err := g.format()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format != export.FormatText {
		return export.RenderData(out, data, format)
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(append([][]string{header}, rows...)).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, table)
	return err
}

func newRulesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "inspect",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := commands.ListRules(g.inspectOptions())
			if err != nil {
				return err
			}
			if len(rules) == 0 && g.cfg.Output.Format == string(export.FormatText) {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoRules)
				return nil
			}

			rows := make([][]string, 0, len(rules))
			for _, r := range rules {
				var notes []string
				if r.Direction != "rightward" {
					notes = append(notes, r.Direction)
				}
				if r.Rate < 1 {
					notes = append(notes, fmt.Sprintf("rate %g", r.Rate))
				}
				if r.Filter != "" {
					notes = append(notes, "filter "+r.Filter)
				}
				if r.Persistent {
					notes = append(notes, MsgPersistent)
				}
				rows = append(rows, []string{r.Name, r.Description, strings.Join(notes, ", ")})
			}
			return listing(cmd, g, rules, []string{"Rule", "Description", "Notes"}, rows)
		},
	}
}

func newFeaturesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "features",
		Short:   MsgFeaturesShort,
		GroupID: "inspect",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := commands.ListFeatures(g.inspectOptions())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(features))
			for _, f := range features {
				detail := f.Range
				if len(f.Children) > 0 {
					detail = strings.Join(f.Children, " ")
				}
				rows = append(rows, []string{f.Name, f.Kind, f.Parent, detail})
			}
			return listing(cmd, g, features, []string{"Feature", "Kind", "Parent", "Range/Children"}, rows)
		},
	}
}

func newSymbolsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "symbols",
		Short:   MsgSymbolsShort,
		GroupID: "inspect",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols, err := commands.ListSymbols(g.inspectOptions())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(symbols))
			for _, s := range symbols {
				kind := "base"
				if s.Diacritic {
					kind = "diacritic"
				}
				rows = append(rows, []string{s.Label, kind, s.Matrix})
			}
			return listing(cmd, g, symbols, []string{"Symbol", "Kind", "Matrix"}, rows)
		},
	}
}

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Check(g.inspectOptions())
			if err != nil {
				return err
			}
			format, err := g.format()
			if err != nil {
				return err
			}
			if format != export.FormatText {
				return export.RenderData(cmd.OutOrStdout(), result, format)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgCheckOK, result)
			return nil
		},
	}
}

func newConfigCmd(g *globals) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := io.WriteString(out, config.DefaultsContent())
				return err
			}
			data, err := gotoml.Marshal(g.cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
