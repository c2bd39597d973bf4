// Package commands provides the high-level operations behind the phonix
// CLI.
//
// Each command is implemented in its own subdirectory:
//   - derive/   - Derive command
//   - inspect/  - Rules, Features, Symbols and Check commands
//   - internal/ - Shared phonology loading
//
// This file re-exports the command functions so callers need a single
// import.
package commands

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/commands/derive"
	"github.com/NicholasDeLioncourt/phonix/pkg/commands/inspect"
	"github.com/NicholasDeLioncourt/phonix/pkg/export"
)

// Derive runs words through a phonology and reports each derivation.
type DeriveOptions = derive.Options

func Derive(opts DeriveOptions) (*export.Report, error) {
	return derive.Derive(opts)
}

// Inspection commands share their options.
type InspectOptions = inspect.Options

type (
	RuleInfo    = inspect.RuleInfo
	FeatureInfo = inspect.FeatureInfo
	SymbolInfo  = inspect.SymbolInfo
	CheckResult = inspect.CheckResult
)

func ListRules(opts InspectOptions) ([]RuleInfo, error) {
	return inspect.Rules(opts)
}

func ListFeatures(opts InspectOptions) ([]FeatureInfo, error) {
	return inspect.Features(opts)
}

func ListSymbols(opts InspectOptions) ([]SymbolInfo, error) {
	return inspect.Symbols(opts)
}

func Check(opts InspectOptions) (*CheckResult, error) {
	return inspect.Check(opts)
}
