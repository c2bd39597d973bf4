// Package export records derivations and renders them as reports.
//
// A Recorder is a rule.Listener: attach it to a rule set, bracket each
// word with Begin and End, and hand the collected derivations to
// NewReport. Reports render as styled text, JSON, YAML or XML.
package export
