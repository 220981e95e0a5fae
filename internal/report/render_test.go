package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shadab909/couchbase-cluster-report-automation/internal/dataset"
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

func row(host, disk, mem, swap, uptime string) dataset.Row {
	return dataset.Row{Record: model.MetricRecord{
		Date:     "2026-08-30",
		Period:   "OffShift",
		Cluster:  "alpha",
		Hostname: host,
		Health:   "healthy",
		DiskUtil: disk,
		MemUtil:  mem,
		SwapUtil: swap,
		Uptime:   uptime,
		Services: "Data",
	}}
}

func renderOne(t *testing.T, r dataset.Row) string {
	t.Helper()
	return Render([]dataset.Row{r}, []string{"alpha"}, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
}

// cellFor returns the <td> element containing the given text.
func cellFor(t *testing.T, doc, text string) string {
	t.Helper()
	for _, cell := range strings.Split(doc, "<td") {
		if strings.Contains(cell, ">"+text+"</td>") {
			return "<td" + cell[:strings.Index(cell, "</td>")]
		}
	}
	t.Fatalf("no cell containing %q in document:\n%s", text, doc)
	return ""
}

func TestRender_DiskThresholdBoundary(t *testing.T) {
	doc := renderOne(t, row("n1", "75%", "10%", "0%", "1 days(s)"))
	assert.Contains(t, cellFor(t, doc, "75%"), breachStyle, "disk 75 breaches")

	doc = renderOne(t, row("n1", "74%", "10%", "0%", "1 days(s)"))
	assert.NotContains(t, cellFor(t, doc, "74%"), "background-color", "disk 74 does not breach")
}

func TestRender_MemThresholdBoundary(t *testing.T) {
	doc := renderOne(t, row("n1", "10%", "80%", "0%", "1 days(s)"))
	assert.Contains(t, cellFor(t, doc, "80%"), breachStyle)

	doc = renderOne(t, row("n1", "10%", "79%", "0%", "1 days(s)"))
	assert.NotContains(t, cellFor(t, doc, "79%"), "background-color")
}

func TestRender_SwapThresholdBoundary(t *testing.T) {
	doc := renderOne(t, row("n1", "10%", "20%", "1%", "1 days(s)"))
	assert.Contains(t, cellFor(t, doc, "1%"), breachStyle, "any swap usage breaches")

	doc = renderOne(t, row("n1", "10%", "20%", "0%", "1 days(s)"))
	assert.NotContains(t, cellFor(t, doc, "0%"), "background-color", "zero swap does not breach")
}

func TestRender_UptimeThresholdBoundary(t *testing.T) {
	doc := renderOne(t, row("n1", "10%", "20%", "0%", "30 days(s)"))
	assert.Contains(t, cellFor(t, doc, "30 days(s)"), breachStyle)

	doc = renderOne(t, row("n1", "10%", "20%", "0%", "29 days(s)"))
	assert.NotContains(t, cellFor(t, doc, "29 days(s)"), "background-color")
}

func TestRender_EmptyDiskGetsUnknownStyleNotBreach(t *testing.T) {
	doc := renderOne(t, row("n1", "", "20%", "0%", "1 days(s)"))

	cell := cellFor(t, doc, "")
	assert.Contains(t, cell, unknownStyle)
	assert.NotContains(t, cell, breachStyle)
}

func TestRender_CaptionEscaped(t *testing.T) {
	rows := []dataset.Row{row("n1", "10%", "20%", "0%", "1 days(s)")}
	doc := Render(rows, []string{`Pay<ments> & "Core"`}, time.Now())

	assert.Contains(t, doc, "Pay&lt;ments&gt; &amp; &#34;Core&#34; Cluster")
	assert.NotContains(t, doc, `<ments>`)
}

func TestRender_CellTextEscaped(t *testing.T) {
	r := row("n1", "10%", "20%", "0%", "1 days(s)")
	r.Record.Health = `<script>alert("x")</script>`

	doc := Render([]dataset.Row{r}, []string{"alpha"}, time.Now())
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;")
}

func TestRender_GroupsSplitAtMarkers(t *testing.T) {
	rows := []dataset.Row{
		row("a1", "10%", "20%", "0%", "1 days(s)"),
		row("a2", "10%", "20%", "0%", "1 days(s)"),
		{Marker: true},
		row("b1", "10%", "20%", "0%", "1 days(s)"),
	}

	doc := Render(rows, []string{"alpha", "beta"}, time.Now())

	assert.Equal(t, 2, strings.Count(doc, "<table>"))
	assert.Contains(t, doc, "alpha Cluster")
	assert.Contains(t, doc, "beta Cluster")

	alphaIdx := strings.Index(doc, "alpha Cluster")
	betaIdx := strings.Index(doc, "beta Cluster")
	require.True(t, alphaIdx < betaIdx, "groups render in configuration order")
}

func TestRender_SkipsEmptyTrailingGroup(t *testing.T) {
	rows := []dataset.Row{
		row("a1", "10%", "20%", "0%", "1 days(s)"),
		{Marker: true},
	}

	doc := Render(rows, []string{"alpha", "beta"}, time.Now())
	assert.Equal(t, 1, strings.Count(doc, "<table>"))
}

func TestRender_HeaderExcludesContextColumns(t *testing.T) {
	doc := renderOne(t, row("n1", "10%", "20%", "0%", "1 days(s)"))

	assert.Contains(t, doc, "<th>HOSTNAME</th>")
	assert.Contains(t, doc, "<th>CB_SERVICE</th>")
	assert.NotContains(t, doc, "<th>date</th>")
	assert.NotContains(t, doc, "<th>period</th>")
	assert.NotContains(t, doc, "<th>cluster</th>")
}

func TestRender_TimestampSubstituted(t *testing.T) {
	doc := renderOne(t, row("n1", "10%", "20%", "0%", "1 days(s)"))

	assert.Contains(t, doc, "Generated at 2026-08-30 10:00:00")
	assert.NotContains(t, doc, generatedAtPlaceholder)
}

func TestLeadingNumber(t *testing.T) {
	cases := map[string]int{
		"74%":        74,
		"75%":        75,
		"5 days(s)":  5,
		"30 days(s)": 30,
		"":           0,
		"N/A":        0,
		"0%":         0,
	}
	for input, want := range cases {
		assert.Equal(t, want, leadingNumber(input), "input %q", input)
	}
}
