package phonix

import (
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}

// colorMode decides how output to w is styled.
type colorMode struct {
	enabled bool
	forced  bool
}

func resolveColor(setting string, w io.Writer) colorMode {
	switch setting {
	case "always":
		return colorMode{enabled: true, forced: true}
	case "never":
		return colorMode{}
	}
	return colorMode{enabled: isTerminal(w)}
}

// apply switches pterm styling to match.
func (c colorMode) apply() {
	if c.enabled {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}
}
