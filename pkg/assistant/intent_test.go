package assistant

import "testing"

func TestAnalyzeQueryPerformance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query     string
		timeframe Timeframe
	}{
		{"What's my performance today?", TimeframeDay},
		{"did I gain anything today", TimeframeDay},
		{"How is my performance this week?", TimeframeWeek},
		{"any losses this week?", TimeframeWeek},
		{"monthly returns please", TimeframeMonth},
		{"What's my total return?", TimeframeOverall},
		{"show me my p&l", TimeframeOverall},
		{"any profit so far?", TimeframeOverall},
	}
	for _, tt := range tests {
		intent := AnalyzeQuery(tt.query)
		if intent.Category != IntentPerformance {
			t.Errorf("%q: expected performance, got %s", tt.query, intent.Category)
		}
		if intent.Timeframe != tt.timeframe {
			t.Errorf("%q: expected timeframe %s, got %s", tt.query, tt.timeframe, intent.Timeframe)
		}
		if intent.Confidence != 0.9 {
			t.Errorf("%q: expected confidence 0.9, got %v", tt.query, intent.Confidence)
		}
	}
}

func TestAnalyzeQueryDayBeatsWeek(t *testing.T) {
	t.Parallel()

	// "today" wins over week/month when both appear.
	intent := AnalyzeQuery("performance today vs this week")
	if intent.Category != IntentPerformance || intent.Timeframe != TimeframeDay {
		t.Fatalf("got %+v", intent)
	}
}

func TestAnalyzeQueryAssets(t *testing.T) {
	t.Parallel()

	intent := AnalyzeQuery("Tell me about AAPL")
	if intent.Category != IntentAssets {
		t.Fatalf("expected assets, got %s", intent.Category)
	}
	if intent.SpecificAsset != "aapl" {
		t.Fatalf("expected specific asset aapl, got %q", intent.SpecificAsset)
	}
	if intent.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", intent.Confidence)
	}

	intent = AnalyzeQuery("Which positions do I hold?")
	if intent.Category != IntentAssets || intent.SpecificAsset != "" {
		t.Fatalf("got %+v", intent)
	}

	intent = AnalyzeQuery("how is tesla doing")
	if intent.Category != IntentAssets || intent.SpecificAsset != "tesla" {
		t.Fatalf("got %+v", intent)
	}
}

func TestAnalyzeQueryPerformanceBeatsAssets(t *testing.T) {
	t.Parallel()

	// Rule order: performance keywords are checked first.
	intent := AnalyzeQuery("What is the performance of my AAPL stock?")
	if intent.Category != IntentPerformance {
		t.Fatalf("expected performance, got %s", intent.Category)
	}
}

func TestAnalyzeQueryAllocation(t *testing.T) {
	t.Parallel()

	for _, query := range []string{
		"Show me my allocation breakdown",
		"how diversified am I",
		"distribution by type",
	} {
		intent := AnalyzeQuery(query)
		if intent.Category != IntentAllocation {
			t.Errorf("%q: expected allocation, got %s", query, intent.Category)
		}
		if intent.Confidence != 0.8 {
			t.Errorf("%q: expected confidence 0.8, got %v", query, intent.Confidence)
		}
	}
}

func TestAnalyzeQueryGeneral(t *testing.T) {
	t.Parallel()

	intent := AnalyzeQuery("Hello")
	if intent.Category != IntentGeneral {
		t.Fatalf("expected general, got %s", intent.Category)
	}
	if intent.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", intent.Confidence)
	}
	if intent.Timeframe != "" || intent.SpecificAsset != "" {
		t.Fatalf("expected empty timeframe and asset, got %+v", intent)
	}
}
