package assistant

import (
	"context"
	"fmt"
	"strings"
)

const providerNamePattern = "pattern"

// patternProvider is the rules-based local engine. It is always configured
// and serves as the registry's default fallback.
type patternProvider struct {
	core *Core
}

func newPatternProvider(c *Core) *patternProvider {
	return &patternProvider{core: c}
}

func (p *patternProvider) Name() string        { return providerNamePattern }
func (p *patternProvider) DisplayName() string { return "Pattern Matching" }
func (p *patternProvider) IsConfigured() bool  { return true }

func (p *patternProvider) GenerateResponse(ctx context.Context, query string, intent QueryIntent, portfolioContext string) (string, error) {
	summary, assets, err := p.core.snapshot()
	if err != nil {
		return "", err
	}

	switch intent.Category {
	case IntentPerformance:
		return performanceResponse(intent, summary), nil
	case IntentAssets:
		return assetsResponse(intent, assets), nil
	case IntentAllocation:
		return p.allocationResponse()
	default:
		return p.generalResponse(), nil
	}
}

func performanceResponse(intent QueryIntent, summary PortfolioSummary) string {
	switch intent.Timeframe {
	case TimeframeDay:
		direction := "positive"
		remark := "Nice gains today! 📈"
		if summary.DayChangePercent < 0 {
			direction = "negative"
			remark = "A bit down today, but that's normal market movement. 📊"
		}
		return fmt.Sprintf("Your portfolio had a %s day with a change of $%s (%s%%). %s",
			direction, summary.DayChange.Display(), formatPercent(summary.DayChangePercent), remark)

	case TimeframeWeek:
		direction := "gained"
		if summary.WeekChangePercent < 0 {
			direction = "lost"
		}
		var remark string
		switch {
		case summary.WeekChangePercent >= 2:
			remark = "Great weekly performance! 🚀"
		case summary.WeekChangePercent >= 0:
			remark = "Solid week overall! 📊"
		default:
			remark = "Weekly dip, but stay focused on long-term trends. 📉"
		}
		return fmt.Sprintf("This week your portfolio %s $%s (%s%%). %s",
			direction, summary.WeekChange.Abs().Display(), formatPercent(summary.WeekChangePercent), remark)

	case TimeframeMonth:
		direction := "gain"
		if summary.MonthChangePercent < 0 {
			direction = "loss"
		}
		var remark string
		switch {
		case summary.MonthChangePercent >= 5:
			remark = "Excellent monthly returns! 🎉"
		case summary.MonthChangePercent >= 0:
			remark = "Positive monthly trend! 📈"
		default:
			remark = "Monthly pullback - consider this normal market volatility. 📊"
		}
		return fmt.Sprintf("Your monthly performance shows a %s of $%s (%s%%). %s",
			direction, summary.MonthChange.Abs().Display(), formatPercent(summary.MonthChangePercent), remark)
	}

	var remark string
	switch {
	case summary.TotalUnrealizedPnLPercent >= 10:
		remark = "Outstanding overall performance! 🌟"
	case summary.TotalUnrealizedPnLPercent >= 0:
		remark = "Your portfolio is in positive territory! 📊"
	default:
		remark = "Currently showing some unrealized losses, which is normal in volatile markets. 📉"
	}
	return fmt.Sprintf("Your portfolio is currently valued at $%s with total unrealized P&L of $%s (%s%%). %s",
		summary.TotalValue.Display(), summary.TotalUnrealizedPnL.Display(),
		formatPercent(summary.TotalUnrealizedPnLPercent), remark)
}

func assetsResponse(intent QueryIntent, assets []Asset) string {
	if intent.SpecificAsset != "" {
		fragment := strings.ToLower(intent.SpecificAsset)
		// First match in collection order wins.
		for _, asset := range assets {
			if !strings.Contains(strings.ToLower(asset.Symbol), fragment) {
				continue
			}
			var remark string
			switch {
			case asset.UnrealizedPnLPercent >= 5:
				remark = "Strong performer! 🚀"
			case asset.UnrealizedPnLPercent >= 0:
				remark = "Looking good! 📈"
			default:
				remark = "Currently down, but holding steady. 📊"
			}
			return fmt.Sprintf("%s (%s): You own %s shares at $%s each. Current value: $%s with P&L of $%s (%s%%). %s",
				asset.Symbol, asset.Name,
				formatQuantity(asset.Quantity),
				asset.CurrentPrice.Display(),
				asset.MarketValue.Display(),
				asset.UnrealizedPnL.Display(),
				formatPercent(asset.UnrealizedPnLPercent),
				remark)
		}

		symbols := make([]string, 0, len(assets))
		for _, asset := range assets {
			symbols = append(symbols, asset.Symbol)
		}
		return fmt.Sprintf("I don't see %s in your current portfolio. Your holdings include: %s.",
			intent.SpecificAsset, strings.Join(symbols, ", "))
	}

	if len(assets) == 0 {
		return "You don't hold any positions yet."
	}

	top := assets[0]
	for _, asset := range assets[1:] {
		if asset.UnrealizedPnLPercent > top.UnrealizedPnLPercent {
			top = asset
		}
	}
	return fmt.Sprintf("You hold %d different positions. Your top performer is %s with a %s%% gain ($%s). Your portfolio spans technology, finance, and cryptocurrency sectors. 📊",
		len(assets), top.Symbol, formatPercent(top.UnrealizedPnLPercent), top.UnrealizedPnL.Display())
}

func (p *patternProvider) allocationResponse() (string, error) {
	allocation, err := p.core.GetAllocation()
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(allocation))
	for _, entry := range allocation {
		parts = append(parts, fmt.Sprintf("%s%% in %s", formatPercent(entry.Percent), entry.Label))
	}
	return fmt.Sprintf("Your portfolio allocation: %s. You have a growth-focused allocation with good diversification across asset classes. 📊",
		strings.Join(parts, ", ")), nil
}

var generalResponses = []string{
	"Your portfolio looks well-diversified across technology, finance, and crypto sectors. The mix of individual stocks and ETFs provides good balance. 📊",
	"I can help you analyze performance trends, review specific holdings, or break down your asset allocation. What interests you most? 🤔",
	"Your portfolio shows active management with positions in growth stocks, stable ETFs, and some cryptocurrency exposure. Nice diversification! 📈",
}

func (p *patternProvider) generalResponse() string {
	return generalResponses[p.core.randIntn(len(generalResponses))]
}
