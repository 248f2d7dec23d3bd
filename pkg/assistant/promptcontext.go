package assistant

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildPortfolioContext renders the portfolio snapshot as the textual block
// embedded verbatim into remote-provider prompts. This is the only portfolio
// information remote providers receive; field order is stable across calls.
func BuildPortfolioContext(summary PortfolioSummary, assets []Asset, allocation []AllocationEntry) string {
	var sb strings.Builder

	sb.WriteString("PORTFOLIO SUMMARY:\n")
	fmt.Fprintf(&sb, "- Total Value: $%s\n", summary.TotalValue.Display())
	fmt.Fprintf(&sb, "- Total P&L: $%s (%s%%)\n", summary.TotalUnrealizedPnL.Display(), formatPercent(summary.TotalUnrealizedPnLPercent))
	fmt.Fprintf(&sb, "- Day Change: $%s (%s%%)\n", summary.DayChange.Display(), formatPercent(summary.DayChangePercent))
	fmt.Fprintf(&sb, "- Week Change: $%s (%s%%)\n", summary.WeekChange.Display(), formatPercent(summary.WeekChangePercent))
	fmt.Fprintf(&sb, "- Month Change: $%s (%s%%)\n", summary.MonthChange.Display(), formatPercent(summary.MonthChangePercent))

	sb.WriteString("\nHOLDINGS:\n")
	for _, asset := range assets {
		fmt.Fprintf(&sb, "- %s (%s): %s shares, $%s each, P&L: $%s (%s%%)\n",
			asset.Symbol, asset.Name,
			formatQuantity(asset.Quantity),
			asset.CurrentPrice.Display(),
			asset.UnrealizedPnL.Display(),
			formatPercent(asset.UnrealizedPnLPercent),
		)
	}

	if len(allocation) > 0 {
		sb.WriteString("\nALLOCATION:\n- ")
		parts := make([]string, 0, len(allocation))
		for _, entry := range allocation {
			parts = append(parts, fmt.Sprintf("%s: %s%%", entry.Label, formatPercent(entry.Percent)))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
