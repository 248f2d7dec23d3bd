package assistant

import "time"

// IntentCategory classifies what a user query is asking about.
type IntentCategory string

const (
	IntentPerformance IntentCategory = "performance"
	IntentAssets      IntentCategory = "assets"
	IntentAllocation  IntentCategory = "allocation"
	IntentGeneral     IntentCategory = "general"
)

// Timeframe narrows a performance query to a reporting window.
type Timeframe string

const (
	TimeframeDay     Timeframe = "day"
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeOverall Timeframe = "overall"
)

// QueryIntent is the structured classification of a user query.
// Confidence is informational only; no routing decision consults it.
type QueryIntent struct {
	Category      IntentCategory `json:"category"`
	Timeframe     Timeframe      `json:"timeframe,omitempty"`
	SpecificAsset string         `json:"specific_asset,omitempty"`
	Confidence    float64        `json:"confidence"`
}

// PortfolioSummary holds the aggregate monetary figures for the portfolio.
type PortfolioSummary struct {
	TotalValue                Amount  `json:"total_value"`
	TotalUnrealizedPnL        Amount  `json:"total_unrealized_pnl"`
	TotalUnrealizedPnLPercent float64 `json:"total_unrealized_pnl_percent"`
	DayChange                 Amount  `json:"day_change"`
	DayChangePercent          float64 `json:"day_change_percent"`
	WeekChange                Amount  `json:"week_change"`
	WeekChangePercent         float64 `json:"week_change_percent"`
	MonthChange               Amount  `json:"month_change"`
	MonthChangePercent        float64 `json:"month_change_percent"`
}

// Valid asset type codes.
var AssetTypes = []string{"stock", "etf", "bond", "crypto", "reit", "commodity"}

// AssetTypeLabels maps asset type codes to display labels.
var AssetTypeLabels = map[string]string{
	"stock":     "Stocks",
	"etf":       "ETFs",
	"bond":      "Bonds",
	"crypto":    "Crypto",
	"reit":      "REITs",
	"commodity": "Commodities",
}

// Asset represents a single holding with derived valuation figures.
type Asset struct {
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	Quantity             float64 `json:"quantity"`
	AvgCost              Amount  `json:"avg_cost"`
	CurrentPrice         Amount  `json:"current_price"`
	MarketValue          Amount  `json:"market_value"`
	UnrealizedPnL        Amount  `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64 `json:"unrealized_pnl_percent"`
	Sector               string  `json:"sector"`
	AssetType            string  `json:"asset_type"`
}

// AllocationEntry represents the share of the portfolio held in one asset type.
type AllocationEntry struct {
	AssetType string  `json:"asset_type"`
	Label     string  `json:"label"`
	Value     Amount  `json:"value"`
	Percent   float64 `json:"percent"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation returned to the caller.
// Provider records which registry entry actually produced the content,
// including the fallback provider when a fallback fired.
type ChatMessage struct {
	ID        string        `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Provider  string        `json:"provider,omitempty"`
	Chart     *ChartPayload `json:"chart,omitempty"`
}

// PricePoint is a single (date, price) sample in a chart series.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// ChartPayload is the synthesized price series attached to a response when
// the query implies a performance visualization.
type ChartPayload struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Points        []PricePoint `json:"points"`
	CurrentPrice  float64      `json:"current_price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"change_percent"`
	Timeframe     string       `json:"timeframe"`
}

// ChartRequest is the chart detector's verdict for a query. Timeframe uses
// the chart vocabulary ("1m", "3m", "6m", "1y"), not the intent timeframe.
type ChartRequest struct {
	Symbol       string `json:"symbol,omitempty"`
	Timeframe    string `json:"timeframe"`
	ShouldRender bool   `json:"should_render"`
}

// ProviderInfo describes one registry entry for the mode-toggle UI.
type ProviderInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Configured  bool   `json:"configured"`
	Selected    bool   `json:"selected"`
}

// Settings are the persisted assistant preferences. API keys are read from
// the environment at registry construction and never stored.
type Settings struct {
	Provider       string `json:"provider"`
	GeminiModel    string `json:"gemini_model"`
	OpenAIModel    string `json:"openai_model"`
	AnthropicModel string `json:"anthropic_model"`
	RestModel      string `json:"rest_model"`
}
