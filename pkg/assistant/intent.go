package assistant

import (
	"regexp"
	"strings"
)

var performanceKeywords = []string{"performance", "return", "gain", "loss", "p&l", "profit"}

var assetKeywords = []string{"stock", "asset", "holding", "position"}

var allocationKeywords = []string{"allocation", "distribution", "breakdown", "diversif"}

// symbolAliasPattern matches known ticker symbols and company-name variants.
var symbolAliasPattern = regexp.MustCompile(`\b(aapl|apple|googl|google|tsla|tesla|msft|microsoft|nvda|nvidia|meta|amd|jpm|spy|vti|btc|bitcoin|eth|ethereum)\b`)

// AnalyzeQuery classifies a raw user query into a structured intent.
// Rules are ordered and first match wins: a query mentioning both
// performance and asset vocabulary classifies as performance.
func AnalyzeQuery(query string) QueryIntent {
	lower := strings.ToLower(query)

	if containsAny(lower, performanceKeywords) {
		timeframe := TimeframeOverall
		switch {
		case strings.Contains(lower, "today") || strings.Contains(lower, "day"):
			timeframe = TimeframeDay
		case strings.Contains(lower, "week"):
			timeframe = TimeframeWeek
		case strings.Contains(lower, "month"):
			timeframe = TimeframeMonth
		}
		return QueryIntent{Category: IntentPerformance, Timeframe: timeframe, Confidence: 0.9}
	}

	if containsAny(lower, assetKeywords) || symbolAliasPattern.MatchString(lower) {
		return QueryIntent{
			Category:      IntentAssets,
			SpecificAsset: symbolAliasPattern.FindString(lower),
			Confidence:    0.8,
		}
	}

	if containsAny(lower, allocationKeywords) {
		return QueryIntent{Category: IntentAllocation, Confidence: 0.8}
	}

	return QueryIntent{Category: IntentGeneral, Confidence: 0.5}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
