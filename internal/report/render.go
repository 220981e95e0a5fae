package report

import (
	"html"
	"strings"
	"time"

	"github.com/Shadab909/couchbase-cluster-report-automation/internal/dataset"
)

const generatedAtPlaceholder = "__GENERATED_AT__"

const documentHeader = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, Helvetica, sans-serif; }
h2 { color: #333333; }
table { border-collapse: collapse; margin-bottom: 24px; }
caption { font-weight: bold; padding: 6px; text-align: left; }
th, td { border: 1px solid #999999; padding: 4px 10px; text-align: left; }
th { background-color: #4472c4; color: #ffffff; }
</style>
</head>
<body>
<h2>Couchbase Cluster Health Report</h2>
<p>Generated at ` + generatedAtPlaceholder + `</p>
`

const documentFooter = `</body>
</html>
`

const (
	breachStyle  = ` style="background-color:#ff9999"`
	unknownStyle = ` style="background-color:#d9d9d9"`
)

// Rendered column positions (HOSTNAME = 0 .. CB_SERVICE = 6).
const (
	colDisk   = 2
	colMem    = 3
	colSwap   = 4
	colUptime = 5
)

const (
	diskThreshold   = 75
	memThreshold    = 80
	uptimeThreshold = 30
)

// Render assembles the HTML report: one table per cluster group, captions in
// cluster order, per-cell threshold highlighting. Empty groups (a cluster
// whose marker was followed by nothing) are skipped.
func Render(rows []dataset.Row, captions []string, generatedAt time.Time) string {
	var doc strings.Builder
	doc.WriteString(strings.Replace(documentHeader, generatedAtPlaceholder,
		generatedAt.Format("2006-01-02 15:04:05"), 1))

	groups := splitGroups(rows)
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}
		writeTable(&doc, caption, group)
	}

	doc.WriteString(documentFooter)
	return doc.String()
}

func splitGroups(rows []dataset.Row) [][]dataset.Row {
	groups := [][]dataset.Row{nil}
	for _, row := range rows {
		if row.Marker {
			groups = append(groups, nil)
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
	}
	return groups
}

func writeTable(doc *strings.Builder, caption string, group []dataset.Row) {
	doc.WriteString("<table>\n")
	doc.WriteString("<caption>" + html.EscapeString(caption+" Cluster") + "</caption>\n")

	doc.WriteString("<tr>")
	for _, name := range dataset.Header()[3:] {
		doc.WriteString("<th>" + html.EscapeString(name) + "</th>")
	}
	doc.WriteString("</tr>\n")

	for _, row := range group {
		fields := row.Record.Fields()[3:]
		doc.WriteString("<tr>")
		for col, text := range fields {
			doc.WriteString("<td" + cellStyle(col, text) + ">" + html.EscapeString(text) + "</td>")
		}
		doc.WriteString("</tr>\n")
	}
	doc.WriteString("</table>\n")
}

func cellStyle(col int, text string) string {
	switch col {
	case colDisk:
		if text == "" {
			return unknownStyle
		}
		if leadingNumber(text) >= diskThreshold {
			return breachStyle
		}
	case colMem:
		if leadingNumber(text) >= memThreshold {
			return breachStyle
		}
	case colSwap:
		if leadingNumber(text) > 0 {
			return breachStyle
		}
	case colUptime:
		if leadingNumber(text) >= uptimeThreshold {
			return breachStyle
		}
	}
	return ""
}

// leadingNumber reads the leading decimal token of a cell, ignoring any "%"
// or unit suffix. Empty or non-numeric cells compare as 0.
func leadingNumber(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n := 0
	for _, c := range s[:i] {
		n = n*10 + int(c-'0')
	}
	return n
}
