package assistant

import (
	"math"
	"strings"
	"time"
)

// Chart timeframe labels and their series lengths in daily points.
const (
	chartTimeframe1M = "1m"
	chartTimeframe3M = "3m"
	chartTimeframe6M = "6m"
	chartTimeframe1Y = "1y"

	defaultChartTimeframe = chartTimeframe3M
)

var chartTimeframeDays = map[string]int{
	chartTimeframe1M: 30,
	chartTimeframe3M: 90,
	chartTimeframe6M: 180,
	chartTimeframe1Y: 365,
}

var chartTimeframePhrases = []struct {
	timeframe string
	phrases   []string
}{
	{chartTimeframe1Y, []string{"1 year", "one year", "12 months", "twelve months", "1y", "annual", "yearly"}},
	{chartTimeframe6M, []string{"6 months", "six months", "6m", "half year"}},
	{chartTimeframe1M, []string{"1 month", "one month", "30 days", "1m", "past month", "last month"}},
	{chartTimeframe3M, []string{"3 months", "three months", "90 days", "3m", "quarter"}},
}

// chartVocabulary is the intent-to-visualize term set. A symbol alone does
// not trigger a chart; one of these must also be present.
var chartVocabulary = []string{
	"performance", "chart", "graph", "trend", "history",
	"return", "gain", "loss", "doing", "over time",
}

type chartProfile struct {
	symbol    string
	name      string
	basePrice float64
	drift     float64
}

// chartSymbolProfiles anchors each known symbol to a base price and a daily
// drift factor used when synthesizing the series.
var chartSymbolProfiles = map[string]chartProfile{
	"aapl":  {symbol: "AAPL", name: "Apple Inc.", basePrice: 173.50, drift: 0.0004},
	"googl": {symbol: "GOOGL", name: "Alphabet Inc.", basePrice: 142.80, drift: 0.0003},
	"msft":  {symbol: "MSFT", name: "Microsoft Corp.", basePrice: 412.20, drift: 0.0005},
	"nvda":  {symbol: "NVDA", name: "NVIDIA Corp.", basePrice: 875.30, drift: 0.0012},
	"meta":  {symbol: "META", name: "Meta Platforms Inc.", basePrice: 485.60, drift: 0.0006},
	"amd":   {symbol: "AMD", name: "Advanced Micro Devices", basePrice: 176.50, drift: 0.0002},
	"tsla":  {symbol: "TSLA", name: "Tesla Inc.", basePrice: 248.90, drift: -0.0003},
	"jpm":   {symbol: "JPM", name: "JPMorgan Chase & Co.", basePrice: 198.40, drift: 0.0003},
	"spy":   {symbol: "SPY", name: "SPDR S&P 500 ETF", basePrice: 520.75, drift: 0.0003},
	"vti":   {symbol: "VTI", name: "Vanguard Total Stock Market ETF", basePrice: 258.30, drift: 0.0003},
	"btc":   {symbol: "BTC", name: "Bitcoin", basePrice: 67420.00, drift: 0.0008},
	"eth":   {symbol: "ETH", name: "Ethereum", basePrice: 3285.50, drift: 0.0006},
}

// Company-name variants resolving to the same profiles as the tickers.
var chartSymbolAliases = map[string]string{
	"apple":     "aapl",
	"alphabet":  "googl",
	"google":    "googl",
	"microsoft": "msft",
	"nvidia":    "nvda",
	"tesla":     "tsla",
	"jpmorgan":  "jpm",
	"bitcoin":   "btc",
	"ethereum":  "eth",
}

// DetectChartRequest decides whether a query asks for a price visualization.
// It triggers only when the query names both a known symbol (ticker or
// company name) and a performance term.
func DetectChartRequest(query string) ChartRequest {
	lowered := strings.ToLower(query)

	symbol := ""
	for alias, ticker := range chartSymbolAliases {
		if containsWord(lowered, alias) {
			symbol = ticker
			break
		}
	}
	if symbol == "" {
		for ticker := range chartSymbolProfiles {
			if containsWord(lowered, ticker) {
				symbol = ticker
				break
			}
		}
	}

	timeframe := defaultChartTimeframe
	for _, group := range chartTimeframePhrases {
		matched := false
		for _, phrase := range group.phrases {
			if strings.Contains(lowered, phrase) {
				matched = true
				break
			}
		}
		if matched {
			timeframe = group.timeframe
			break
		}
	}

	if symbol == "" {
		return ChartRequest{Timeframe: timeframe}
	}

	wantsChart := false
	for _, term := range chartVocabulary {
		if strings.Contains(lowered, term) {
			wantsChart = true
			break
		}
	}

	return ChartRequest{
		Symbol:       chartSymbolProfiles[symbol].symbol,
		Timeframe:    timeframe,
		ShouldRender: wantsChart,
	}
}

func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isWordChar(s[start-1])
		rightOK := end == len(s) || !isWordChar(s[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// GenerateChart synthesizes a daily price series for the requested symbol
// and timeframe. The series walks backward from today: per-symbol base price
// and drift, bounded random daily variation, a sinusoidal weekly term, and a
// compounding trend. Mock data; a market-data client would replace this.
func (c *Core) GenerateChart(req ChartRequest) *ChartPayload {
	if !req.ShouldRender || req.Symbol == "" {
		return nil
	}
	profile, ok := chartSymbolProfiles[strings.ToLower(req.Symbol)]
	if !ok {
		return nil
	}

	days, ok := chartTimeframeDays[req.Timeframe]
	if !ok {
		days = chartTimeframeDays[defaultChartTimeframe]
	}

	points := make([]PricePoint, 0, days)
	today := time.Now()
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1)
		daily := (c.randFloat() - 0.5) * 0.03
		weekly := math.Sin(float64(i)/7.0*math.Pi) * 0.008
		trend := math.Pow(1+profile.drift, float64(i))
		price := profile.basePrice * trend * (1 + daily + weekly)
		points = append(points, PricePoint{
			Date:  date.Format("2006-01-02"),
			Price: math.Round(price*100) / 100,
		})
	}

	current := points[len(points)-1].Price
	change := 0.0
	changePercent := 0.0
	if len(points) > 1 {
		prev := points[len(points)-2].Price
		change = math.Round((current-prev)*100) / 100
		if prev != 0 {
			changePercent = math.Round(change/prev*10000) / 100
		}
	}

	return &ChartPayload{
		Symbol:        profile.symbol,
		Name:          profile.name,
		Points:        points,
		CurrentPrice:  current,
		Change:        change,
		ChangePercent: changePercent,
		Timeframe:     req.Timeframe,
	}
}
