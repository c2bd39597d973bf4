package phonix

import (
	"fmt"

	"github.com/NicholasDeLioncourt/phonix/internal/version"
	"github.com/NicholasDeLioncourt/phonix/pkg/cobrax/topics"
	"github.com/NicholasDeLioncourt/phonix/pkg/config"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags and the configuration they resolve
// to.
type globals struct {
	verbosity  int
	configFile string
	definition string
	output     string
	color      string

	cfg *config.Config
}

// overrides maps flags the user set to config keys.
func (g *globals) overrides(cmd *cobra.Command) map[string]interface{} {
	keys := map[string]string{
		"definition": "derive.definition",
		"output":     "output.format",
		"color":      "output.color",
		"seed":       "derive.seed",
		"trace":      "derive.show_trace",
	}

	out := make(map[string]interface{})
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		out[key] = f.Value.String()
	}
	return out
}

func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{
		Path:      g.configFile,
		Overrides: g.overrides(cmd),
	})
	if err != nil {
		return err
	}
	g.cfg = cfg

	if cfg.Logging.Verbosity > g.verbosity {
		logging.SetupLogger(cfg.Logging.Verbosity)
	}
	resolveColor(cfg.Output.Color, cmd.OutOrStdout()).apply()
	return nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "phonix",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return g.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&g.configFile, "config", "", MsgFlagConfig)
	flags.StringVarP(&g.definition, "definition", "d", "", MsgFlagDefinition)
	flags.StringVarP(&g.output, "output", "o", "text", MsgFlagOutput)
	flags.StringVar(&g.color, "color", "auto", MsgFlagColor)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "INSPECT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newDeriveCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newRulesCmd(g))
	rootCmd.AddCommand(newFeaturesCmd(g))
	rootCmd.AddCommand(newSymbolsCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.Initialize(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}
