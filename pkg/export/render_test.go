// pkg/export/render_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Verify report rendering in every output format

package export_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/export"
	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *export.Report {
	rep := export.NewReport("sound-changes", []export.Derivation{
		{
			Input:  "katab",
			Output: "kadap",
			Steps: []export.Step{
				{Rule: "intervocalic-voicing", Description: "[-son -cont] => [+vc] / [+syl] _ [+syl]", Before: "katab", After: "kadab"},
				{Rule: "final-devoicing", Description: "[-son] => [-vc] /  _ $", Before: "kadab", After: "kadap"},
			},
		},
		{
			Input:  "ta",
			Output: "ta",
			Warnings: []export.Warning{
				{Rule: "copy-voice", Kind: export.WarnUndefinedVariable, Message: "variable vc used before it was bound"},
			},
		},
	})
	rep.Created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return rep
}

func TestNewReport(t *testing.T) {
	rep := export.NewReport("x", nil)
	_, err := uuid.Parse(rep.ID)
	assert.NoError(t, err)
	assert.Equal(t, "x", rep.Phonology)
	assert.False(t, rep.Created.IsZero())
	assert.NotEqual(t, rep.ID, export.NewReport("x", nil).ID)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "YAML", "xml"} {
		_, err := export.ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := export.ParseFormat("csv")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRenderText(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, export.RenderText(&buf, rep, export.Options{NoColor: true}))
	assert.Equal(t, "katab → kadap\nta → ta\n", buf.String())

	buf.Reset()
	require.NoError(t, export.RenderText(&buf, rep, export.Options{NoColor: true, Trace: true}))
	out := buf.String()
	assert.Contains(t, out, "phonix · sound-changes "+rep.ID)
	assert.Contains(t, out, "  intervocalic-voicing ([-son -cont] => [+vc] / [+syl] _ [+syl]): katab → kadab")
	assert.Contains(t, out, "  final-devoicing")
	assert.Contains(t, out, "  warning: copy-voice: variable vc used before it was bound")
}

func TestRenderText_Color(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, export.RenderText(&buf, rep, export.Options{ForceColor: true}))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "katab")

	buf.Reset()
	require.NoError(t, export.RenderText(&buf, rep, export.Options{NoColor: true, ForceColor: true}))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderJSON(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, export.Render(&buf, rep, export.FormatJSON, export.Options{}))

	var got export.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rep.ID, got.ID)
	assert.Equal(t, "sound-changes", got.Phonology)
	require.Len(t, got.Derivations, 2)
	assert.Len(t, got.Derivations[0].Steps, 2)
	assert.Contains(t, buf.String(), "\n  \"phonology\": \"sound-changes\"")
	assert.NotContains(t, buf.String(), `"steps": null`)
}

func TestRenderYAML(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, export.Render(&buf, rep, export.FormatYAML, export.Options{}))

	var got export.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rep.ID, got.ID)
	require.Len(t, got.Derivations, 2)
	assert.Equal(t, "kadap", got.Derivations[0].Output)
	assert.Equal(t, export.WarnUndefinedVariable, got.Derivations[1].Warnings[0].Kind)
}

func TestRenderXML(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, export.Render(&buf, rep, export.FormatXML, export.Options{}))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("report")
	require.NotNil(t, root)
	assert.Equal(t, rep.ID, root.SelectAttrValue("id", ""))
	assert.Equal(t, "2024-03-01T12:00:00Z", root.SelectAttrValue("created", ""))
	assert.Nil(t, root.SelectAttr("definition"))

	ds := root.SelectElements("derivation")
	require.Len(t, ds, 2)
	steps := ds[0].SelectElements("step")
	require.Len(t, steps, 2)
	assert.Equal(t, "1", steps[0].SelectAttrValue("n", ""))
	assert.Equal(t, "kadab", steps[0].SelectAttrValue("after", ""))
	assert.Equal(t, "[-son -cont] => [+vc] / [+syl] _ [+syl]", steps[0].Text())

	w := ds[1].SelectElement("warning")
	require.NotNil(t, w)
	assert.Equal(t, export.WarnUndefinedVariable, w.SelectAttrValue("kind", ""))
}

func TestRenderData(t *testing.T) {
	data := []map[string]string{{"name": "vc"}}

	var buf bytes.Buffer
	require.NoError(t, export.RenderData(&buf, data, export.FormatYAML))
	assert.Equal(t, "- name: vc\n", buf.String())

	buf.Reset()
	require.NoError(t, export.RenderData(&buf, data, export.FormatJSON))
	assert.JSONEq(t, `[{"name":"vc"}]`, buf.String())

	err := export.RenderData(&buf, data, export.FormatXML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := export.Render(&buf, sampleReport(), export.Format("csv"), export.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
