package phonix

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "A phonological rule engine"
	MsgDeriveShort     = "Run words through a phonology's rules"
	MsgRulesShort      = "List the rules of a phonology"
	MsgFeaturesShort   = "List the features of a phonology"
	MsgSymbolsShort    = "List the symbols of a phonology"
	MsgCheckShort      = "Validate a phonology definition"
	MsgConfigShort     = "Show the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default is $XDG_CONFIG_HOME/phonix/config.toml)"
	MsgFlagDefinition = "Phonology definition file (default: built-in std)"
	MsgFlagOutput     = "Output format: text, json, yaml or xml"
	MsgFlagColor      = "Color output: auto, always or never"
	MsgFlagSeed       = "Seed for rules with an application rate below 1 (0 is unseeded)"
	MsgFlagTrace      = "Show every rule application"
	MsgFlagInput      = "Read words from a file (- for stdin)"
	MsgFlagDefaults   = "Print the built-in defaults"

	// Listing output
	MsgNoRules    = "No rules."
	MsgCheckOK    = "✓ %s\n"
	MsgPersistent = "persistent"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrOpenInput = "failed to open input %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/derive-long.txt
	msgDeriveLongRaw string
	MsgDeriveLong    = strings.TrimSpace(msgDeriveLongRaw)

	//go:embed msgs/derive-example.txt
	msgDeriveExampleRaw string
	MsgDeriveExample    = strings.TrimRight(msgDeriveExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
