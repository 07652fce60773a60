package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block for pasting into a
// journal. Structured facts go in the PROPERTIES drawer; blank fields are
// left out.
func FormatTradeOrg(t trade.Record) string {
	instrument := t.Instrument
	if instrument == "" {
		instrument = "(instrument?)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s (%s)\n", instrument, strings.ToUpper(string(t.Outcome)), shortID(t.TradeID))
	b.WriteString(":PROPERTIES:\n")
	prop := func(key, val string) {
		if val != "" {
			fmt.Fprintf(&b, ":%s: %s\n", key, val)
		}
	}
	prop("TRADE_ID", t.TradeID)
	prop("ID", t.TradeID)
	prop("INSTRUMENT", t.Instrument)
	prop("OUTCOME", string(t.Outcome))
	if t.RMultiple != nil {
		prop("R_MULTIPLE", fmt.Sprintf("%.2f", *t.RMultiple))
	}
	if !t.ExecutedAt.IsZero() {
		prop("EXECUTED_AT", t.ExecutedAt.UTC().Format(time.RFC3339))
	}
	prop("SESSION", t.Session)
	prop("SETUP", t.SetupType)
	prop("HTF_BIAS", t.HTFBias)
	prop("RULES_FOLLOWED", optBool(t.RulesFollowed))
	prop("GRADE", t.Grade)
	prop("DIRECTION", t.Direction)
	prop("CONFIDENCE", optInt(t.Confidence))
	if t.RiskPct != nil {
		prop("RISK_PCT", fmt.Sprintf("%.2f", *t.RiskPct))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n")
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		for _, line := range strings.Split(notes, "\n") {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(line))
		}
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Record) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
