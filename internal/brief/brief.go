// Package brief synthesizes the natural-language market brief from the
// current snapshots and category scores. Generation is deterministic:
// given identical inputs and the same clock reading, the output is
// byte-identical.
package brief

import (
	"fmt"
	"time"

	"the-signal/internal/domain"
	"the-signal/internal/signal"
)

// Generate builds one Brief from the category scores plus raw snapshot
// fields needed for narrative specificity. Categories without data are
// left out of sections, takeaways and the composite denominator.
func Generate(data domain.MarketData, scores map[domain.Category]domain.CategoryScore, now time.Time) domain.Brief {
	composite := signal.CompositeScore(scores)
	sentiment := domain.SentimentForScore(composite)

	fg := 50
	fgLabel := "N/A"
	if data.FearGreed != nil {
		fg = data.FearGreed.Value
		fgLabel = data.FearGreed.Label
	}
	mcChange := 0.0
	if data.GlobalMarket != nil {
		mcChange = data.GlobalMarket.MarketCapChange24h
	}
	dexChange := 0.0
	if data.DexVolumes != nil {
		dexChange = data.DexVolumes.Change7d
	}
	tvlChange := 0.0
	if data.TVL != nil {
		tvlChange = data.TVL.Change7d
	}

	return domain.Brief{
		ID:             "brief-" + now.UTC().Format("2006-01-02"),
		Timestamp:      formatTimestamp(now),
		CompositeScore: composite,
		Sentiment:      sentiment,
		Headline:       headline(fg, dexChange, tvlChange, mcChange),
		TLDR:           tldr(data, composite, sentiment, fg, fgLabel, mcChange, dexChange),
		Sections:       buildSections(data, fg, fgLabel, mcChange),
		KeyTakeaways:   keyTakeaways(data, fg, dexChange, tvlChange, mcChange),
		RiskFactors:    riskFactors(data, fg, dexChange, tvlChange),
	}
}

func tldr(data domain.MarketData, composite int, sentiment domain.Sentiment, fg int, fgLabel string, mcChange, dexChange float64) string {
	mcDirection := "down"
	if mcChange > 0 {
		mcDirection = "up"
	}
	dexVolume := "N/A"
	if data.DexVolumes != nil {
		dexVolume = fmtUSD(data.DexVolumes.Total24h)
	}
	tvl := "N/A"
	if data.TVL != nil {
		tvl = fmtUSD(data.TVL.TotalTVL)
	}
	return fmt.Sprintf(
		"Composite score sits at %d/100 (%s). Fear & Greed at %d (%s). Market cap %s %.2f%% in 24h. DEX volume at %s (%s 7d). Total DeFi TVL at %s.",
		composite, sentiment, fg, fgLabel, mcDirection, abs(mcChange), dexVolume, signedPct(dexChange, 1), tvl)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func signedPct(v float64, decimals int) string {
	if v > 0 {
		return fmt.Sprintf("+%.*f%%", decimals, v)
	}
	return fmt.Sprintf("%.*f%%", decimals, v)
}
