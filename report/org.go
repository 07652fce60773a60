// Package report renders a rules.Report for people: an Org-mode block for
// the journal file and a Markdown summary for chat or the terminal.
package report

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/franklinfx2/master-trader-sub000/rules"
)

// Section is one bucket of a report with its display title.
type Section struct {
	Title string
	Rules []rules.Rule
}

// Sections lists the four buckets in display order.
func Sections(rep rules.Report) []Section {
	return []Section{
		{"Do more", rep.DoMore},
		{"Required conditions", rep.RequiredConditions},
		{"Stop doing", rep.StopDoing},
		{"Never trade", rep.NoTrade},
	}
}

type orgView struct {
	rules.Report
	Sections []Section
}

var orgFuncs = template.FuncMap{
	"pct": func(x float64) string { return fmt.Sprintf("%.1f%%", x) },
	"pp":  func(x float64) string { return fmt.Sprintf("%+.1fpp", x) },
	"r":   func(x float64) string { return fmt.Sprintf("%+.2fR", x) },
}

var orgTmpl = template.Must(template.New("rules").Funcs(orgFuncs).Parse(OrgTemplate))

// Org renders rep as an Org-mode heading with a PROPERTIES drawer and one
// table per bucket.
func Org(rep rules.Report) (string, error) {
	view := orgView{Report: rep}
	if rep.Status == rules.StatusOK {
		view.Sections = Sections(rep)
	}

	buf := new(bytes.Buffer)
	if err := orgTmpl.Execute(buf, view); err != nil {
		return "", fmt.Errorf("render org report: %w", err)
	}
	return buf.String(), nil
}

const OrgTemplate = `* TRADING RULES
:PROPERTIES:
:STATUS:        {{.Status}}
:TRADES:        {{.TotalTrades}}
:MIN_TRADES:    {{.RequiredTrades}}
{{- if eq .Status "ok"}}
:BASE_WINRATE:  {{pct .BaselineWinRate}}
:BASE_EXP:      {{r .BaselineExpectancy}}
:GROUPS:        {{.Groups}}
{{- end}}
:END:
{{- if .Message}}

{{.Message}}
{{- end}}
{{- range .Sections}}

** {{.Title}}
{{- if .Rules}}
| Rule | Trades | Win rate | vs base | Expectancy | Avg win |
|------+--------+----------+---------+------------+---------|
{{- range .Rules}}
| {{.Statement}} | {{.SampleSize}} | {{pct .WinRate}} | {{pp .WinRateDiff}} | {{r .Expectancy}} | {{r .AvgWinR}} |
{{- end}}
{{- else}}
- none
{{- end}}
{{- end}}
`
