package topics

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour. Other formats
// pass through.
type GlamourRenderer struct {
	// Style is a standard style name ("dark", "light", "notty", ...),
	// "auto", or a path to a JSON style file.
	Style string
	// Width wraps output; 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer creates a renderer that picks its style from the
// terminal.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "dracula", "pink", "ascii":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}

func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	logger := logging.GetLogger("topics")
	renderer, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		logger.Debug().Err(err).Str("style", r.Style).Msg("Markdown renderer unavailable")
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown rendering failed")
		return content
	}
	return rendered
}
