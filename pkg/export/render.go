package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format is a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatXML:
		return f, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q", s).
		WithDetail("format", s)
}

// Options tune rendering.
type Options struct {
	// NoColor disables styling in text output
	NoColor bool
	// ForceColor styles text output even when w is not a terminal
	ForceColor bool
	// Trace includes rule steps and warnings in text output
	Trace bool
}

// Render writes rep to w in the given format.
func Render(w io.Writer, rep *Report, format Format, opts Options) error {
	log := logging.GetLogger("export")
	log.Debug().
		Str("format", string(format)).
		Str("report", rep.ID).
		Int("derivations", len(rep.Derivations)).
		Msg("Rendering report")

	switch format {
	case FormatText:
		return RenderText(w, rep, opts)
	case FormatJSON:
		return RenderJSON(w, rep)
	case FormatYAML:
		return RenderYAML(w, rep)
	case FormatXML:
		return RenderXML(w, rep)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown output format %q", format)
}

// RenderText writes one line per derivation, optionally followed by its
// steps and warnings.
func RenderText(w io.Writer, rep *Report, opts Options) error {
	st := plainStyles()
	if !opts.NoColor {
		r := lipgloss.NewRenderer(w)
		if opts.ForceColor {
			r.SetColorProfile(termenv.ANSI256)
		}
		st = newStyles(r)
	}

	var b strings.Builder
	if opts.Trace {
		header := "phonix"
		if rep.Phonology != "" {
			header += " · " + rep.Phonology
		}
		b.WriteString(st.Header.Render(header))
		b.WriteString(st.Muted.Render(" " + rep.ID))
		b.WriteString("\n")
	}

	for _, d := range rep.Derivations {
		arrow := st.Muted.Render(" → ")
		out := st.Word.Render(d.Output)
		if d.Changed() {
			out = st.Change.Render(d.Output)
		}
		b.WriteString(st.Word.Render(d.Input) + arrow + out + "\n")

		if !opts.Trace {
			continue
		}
		for _, s := range d.Steps {
			b.WriteString(st.Rule.Render(s.Rule))
			b.WriteString(st.Muted.Render(" (" + s.Description + ")"))
			b.WriteString(": " + s.Before + arrow + s.After + "\n")
		}
		for _, warn := range d.Warnings {
			b.WriteString(st.Warn.Render(fmt.Sprintf("warning: %s: %s", warn.Rule, warn.Message)))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes rep as indented JSON.
func RenderJSON(w io.Writer, rep *Report) error {
	return RenderData(w, rep, FormatJSON)
}

// RenderYAML writes rep as YAML.
func RenderYAML(w io.Writer, rep *Report) error {
	return RenderData(w, rep, FormatYAML)
}

// RenderXML writes rep as an XML document.
func RenderXML(w io.Writer, rep *Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("id", rep.ID)
	root.CreateAttr("phonology", rep.Phonology)
	root.CreateAttr("created", rep.Created.Format(time.RFC3339))
	if rep.Definition != "" {
		root.CreateAttr("definition", rep.Definition)
		root.CreateAttr("checksum", rep.Checksum)
	}

	for _, d := range rep.Derivations {
		de := root.CreateElement("derivation")
		de.CreateAttr("input", d.Input)
		de.CreateAttr("output", d.Output)
		for i, s := range d.Steps {
			se := de.CreateElement("step")
			se.CreateAttr("n", strconv.Itoa(i+1))
			se.CreateAttr("rule", s.Rule)
			se.CreateAttr("before", s.Before)
			se.CreateAttr("after", s.After)
			se.SetText(s.Description)
		}
		for _, warn := range d.Warnings {
			we := de.CreateElement("warning")
			we.CreateAttr("rule", warn.Rule)
			we.CreateAttr("kind", warn.Kind)
			we.SetText(warn.Message)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// RenderData writes any value as JSON or YAML. Listings that have no
// text or XML layout of their own go through here.
func RenderData(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return errors.Newf(errors.ErrInvalidInput, "%s output is not available here", format).
		WithDetail("format", string(format))
}
