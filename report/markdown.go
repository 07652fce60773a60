package report

import (
	"fmt"
	"strings"

	"github.com/franklinfx2/master-trader-sub000/rules"
)

// Markdown renders rep as a Markdown document.
func Markdown(rep rules.Report) string {
	var sb strings.Builder

	sb.WriteString("# Trading Rules\n\n")

	if rep.Status != rules.StatusOK {
		sb.WriteString(fmt.Sprintf("**Not enough data.** %s\n", rep.Message))
		return sb.String()
	}

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Closed trades | %d |\n", rep.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Baseline win rate | %.1f%% |\n", rep.BaselineWinRate))
	sb.WriteString(fmt.Sprintf("| Baseline expectancy | %+.2fR |\n", rep.BaselineExpectancy))
	sb.WriteString(fmt.Sprintf("| Groups analyzed | %d |\n", rep.Groups))
	sb.WriteString("\n")

	if rep.Message != "" {
		sb.WriteString(rep.Message)
		sb.WriteString("\n\n")
	}

	for _, sec := range Sections(rep) {
		sb.WriteString(fmt.Sprintf("## %s\n\n", sec.Title))
		if len(sec.Rules) == 0 {
			sb.WriteString("None.\n\n")
			continue
		}
		sb.WriteString("| Rule | Trades | Win rate | vs base | Expectancy | Avg win |\n")
		sb.WriteString("|------|--------|----------|---------|------------|---------|\n")
		for _, r := range sec.Rules {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %+.1fpp | %+.2fR | %+.2fR |\n",
				escapeCell(r.Statement), r.SampleSize, r.WinRate, r.WinRateDiff, r.Expectancy, r.AvgWinR))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
