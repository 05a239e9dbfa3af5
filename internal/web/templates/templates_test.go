package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajkumarmali01/Employee-Analysis/internal/core"
)

func TestResultPage(t *testing.T) {
	p := ResultParams{
		RunID:   "run-1",
		Profile: "elcm-city",
		Diagnostics: core.Diagnostics{
			{Severity: core.SeverityWarning, Table: core.TableSeating, Message: `bad <row> "x"`, Code: "FILE006"},
		},
		PrimaryColumns: []string{"Employee Code", "Location City"},
		Columns:        []string{"Employee Code", "Floor"},
		Rows:           [][]string{{"007", "<3>"}},
		TotalRows:      2,
		Join:           &core.JoinReport{Matched: 1, Unmatched: 1},
		Downloads: []Download{
			{Label: "Download CSV", FileName: "out.csv", MIME: "text/csv", Data: []byte("a,b\n")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ResultPage(p).Render(t.Context(), &buf))
	body := buf.String()

	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, `<div class="diag diag-warning">`)
	assert.Contains(t, body, `<strong>seating:</strong> bad &lt;row&gt; &#34;x&#34; <span class="code">(FILE006)</span>`)
	assert.Contains(t, body, `<span class="code">run-1</span>`)
	assert.Contains(t, body, `download="out.csv" href="data:text/csv;base64,YSxiCg=="`)
	assert.Contains(t, body, "<strong>Main employee data:</strong> Employee Code, Location City")
	assert.NotContains(t, body, "Seating data:")
	assert.Contains(t, body, "1 matched, 1 without seating.")
	assert.Contains(t, body, "First 1 of 2 rows.")
	assert.Contains(t, body, "<th>Floor</th>")
	assert.Contains(t, body, "<td>&lt;3&gt;</td>")
}

func TestIndexPage(t *testing.T) {
	p := IndexParams{
		Profiles: []core.ProfileInfo{
			{Name: "elcm-city", Label: "City"},
			{Name: "elcm-group", Label: "Group", PrimaryColumns: []string{"Employee Code", "Date of Joining"}},
		},
		DefaultProfile: "elcm-group",
		MaxFileSizeMB:  25,
	}

	var buf bytes.Buffer
	require.NoError(t, IndexPage(p).Render(t.Context(), &buf))
	body := buf.String()

	assert.Contains(t, body, `<option value="elcm-city">City</option>`)
	assert.Contains(t, body, `<option value="elcm-group" selected>Group</option>`)
	assert.Contains(t, body, "Up to 25 MB per file.")
	assert.Contains(t, body, "Main file columns: Employee Code, Date of Joining")
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage("No file was selected", "Please select a CSV file", "FILE004").Render(t.Context(), &buf))
	body := buf.String()

	assert.Contains(t, body, `<div class="diag diag-error" role="alert"><strong>No file was selected</strong> <span class="code">(FILE004)</span><div>Please select a CSV file</div></div>`)
	assert.Contains(t, body, `href="/"`)
}

func TestPreviewSummary(t *testing.T) {
	assert.Equal(t, "First 5 of 9 rows.", previewSummary(5, 9))
	assert.Equal(t, "9 rows.", previewSummary(9, 9))
}
