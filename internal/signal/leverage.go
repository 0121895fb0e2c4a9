package signal

import (
	"fmt"
	"math"
	"strings"

	"the-signal/internal/domain"
)

// Leverage thresholds. A funding-rate magnitude of 0.05% zeroes the
// funding sub-score; a long/short ratio of exactly 1.0 is a perfect
// balance score.
const (
	fundingExtremePct   = 0.05
	longHeavyRatio      = 1.3
	shortHeavyRatio     = 0.8
	fundingBearishPct   = 0.03
	fundingBullishPct   = -0.01
	takerBullishRatio   = 1.1
	takerBearishRatio   = 0.9
	elevatedOIBillions  = 5.0
	fundingScoreWeight  = 0.4
	lsScoreWeight       = 0.3
	takerScoreWeight    = 0.3
)

// AnalyzeDerivatives produces the leverage/positioning report for the
// primary asset (BTC), with ETH as secondary context.
func AnalyzeDerivatives(data domain.DerivativesSnapshot) domain.LeverageReport {
	btc := data.BTC

	latestLS := latestRatio(btc.LongShortRatio)

	fundingScore := math.Max(0, 100-math.Abs(btc.FundingRate)*(100/fundingExtremePct))
	lsScore := math.Max(0, 100-math.Abs(latestLS-1)*100)
	takerScore := 40.0
	switch {
	case btc.TakerRatio > takerBearishRatio && btc.TakerRatio < takerBullishRatio:
		takerScore = 60
	case btc.TakerRatio > 1:
		takerScore = 70
	}
	score := int(math.Round(fundingScore*fundingScoreWeight + lsScore*lsScoreWeight + takerScore*takerScoreWeight))

	bias := domain.BiasBalanced
	switch {
	case latestLS > longHeavyRatio:
		bias = domain.BiasLongHeavy
	case latestLS < shortHeavyRatio:
		bias = domain.BiasShortHeavy
	}

	fundingSignal := domain.SignalNeutral
	switch {
	case btc.FundingRate > fundingBearishPct:
		fundingSignal = domain.SignalBearish
	case btc.FundingRate < fundingBullishPct:
		fundingSignal = domain.SignalBullish
	}

	takerSignal := domain.SignalNeutral
	switch {
	case btc.TakerRatio > takerBullishRatio:
		takerSignal = domain.SignalBullish
	case btc.TakerRatio < takerBearishRatio:
		takerSignal = domain.SignalBearish
	}

	return domain.LeverageReport{
		Score:            score,
		Bias:             bias,
		FundingSignal:    fundingSignal,
		TakerSignal:      takerSignal,
		LatestLongShort:  latestLS,
		Analysis:         leverageNarrative(btc, latestLS, bias),
		Metrics:          leverageMetrics(data, latestLS, bias, fundingSignal, takerSignal),
		LongShortHistory: btc.LongShortRatio,
		TopCoins:         data.TopCoins,
	}
}

// latestRatio returns the most recent long/short ratio, defaulting to a
// balanced 1.0 when the history is empty or zero.
func latestRatio(history []float64) float64 {
	if len(history) == 0 || history[len(history)-1] == 0 {
		return 1
	}
	return history[len(history)-1]
}

// leverageNarrative assembles the positioning story sentence by sentence:
// funding, long/short crowding, taker flow (only at extremes), then open
// interest magnitude.
func leverageNarrative(btc domain.AssetDerivatives, latestLS float64, bias domain.Bias) string {
	var parts []string

	switch {
	case math.Abs(btc.FundingRate) < 0.005:
		parts = append(parts, fmt.Sprintf(
			"BTC funding rate at %.4f%% is neutral — no strong directional pressure from leveraged traders.",
			btc.FundingRate))
	case btc.FundingRate > 0.02:
		parts = append(parts, fmt.Sprintf(
			"BTC funding rate at %.4f%% is elevated — longs are paying shorts, indicating bullish leverage is building. Historically, rates above 0.03%% precede mean-reversion moves.",
			btc.FundingRate))
	case btc.FundingRate < -0.005:
		parts = append(parts, fmt.Sprintf(
			"BTC funding rate is negative at %.4f%% — shorts are paying longs. This often precedes short squeezes as negative funding becomes expensive to maintain.",
			btc.FundingRate))
	default:
		direction := "negative"
		side := "short"
		if btc.FundingRate > 0 {
			direction = "positive"
			side = "long"
		}
		parts = append(parts, fmt.Sprintf(
			"BTC funding rate at %.4f%% is slightly %s — mild %s bias in the market.",
			btc.FundingRate, direction, side))
	}

	switch {
	case latestLS > 1.4:
		parts = append(parts, fmt.Sprintf(
			"The long/short ratio at %.2f shows heavy long positioning. When the crowd is this one-sided, a flush of overleveraged longs becomes likely.",
			latestLS))
	case latestLS < 0.7:
		parts = append(parts, fmt.Sprintf(
			"The long/short ratio at %.2f shows heavy short positioning — potential fuel for a short squeeze.",
			latestLS))
	default:
		posture := "balanced"
		if bias != domain.BiasBalanced {
			posture = strings.ToLower(string(bias))
		}
		parts = append(parts, fmt.Sprintf(
			"Long/short ratio at %.2f is relatively %s — no extreme positioning.",
			latestLS, posture))
	}

	switch {
	case btc.TakerRatio < 0.85:
		parts = append(parts, fmt.Sprintf(
			"Sellers are dominating taker flow (buy/sell ratio: %.2f). Market sells typically indicate conviction to the downside.",
			btc.TakerRatio))
	case btc.TakerRatio > 1.15:
		parts = append(parts, fmt.Sprintf(
			"Buyers are aggressively taking (buy/sell ratio: %.2f). Strong taker buying often front-runs moves higher.",
			btc.TakerRatio))
	}

	oiBillions := btc.OpenInterest / 1e9
	oiClause := "OI levels are moderate."
	if oiBillions > elevatedOIBillions {
		oiClause = "Elevated OI means more leveraged positions at risk during volatility."
	}
	parts = append(parts, fmt.Sprintf("BTC open interest sits at $%.1fB on OKX. %s", oiBillions, oiClause))

	return strings.Join(parts, " ")
}

func leverageMetrics(data domain.DerivativesSnapshot, latestLS float64, bias domain.Bias, fundingSignal, takerSignal domain.Signal) []domain.Metric {
	btc, eth := data.BTC, data.ETH

	ethFundingSignal := domain.SignalNeutral
	switch {
	case eth.FundingRate > fundingBearishPct:
		ethFundingSignal = domain.SignalBearish
	case eth.FundingRate < fundingBullishPct:
		ethFundingSignal = domain.SignalBullish
	}

	// The displayed ratio shows 0 for an empty history even though the
	// signal treats empty as balanced.
	displayLS := 0.0
	if len(btc.LongShortRatio) > 0 {
		displayLS = btc.LongShortRatio[len(btc.LongShortRatio)-1]
	}
	lsSignal := domain.SignalNeutral
	if latestLS > longHeavyRatio {
		lsSignal = domain.SignalBearish
	}

	biasSignal := domain.SignalNeutral
	switch bias {
	case domain.BiasLongHeavy:
		biasSignal = domain.SignalBearish
	case domain.BiasShortHeavy:
		biasSignal = domain.SignalBullish
	}

	return []domain.Metric{
		{Label: "BTC FUNDING RATE", Value: fmt.Sprintf("%.4f%%", btc.FundingRate), Signal: fundingSignal},
		{Label: "ETH FUNDING RATE", Value: fmt.Sprintf("%.4f%%", eth.FundingRate), Signal: ethFundingSignal},
		{Label: "BTC OPEN INTEREST", Value: compactUSD(btc.OpenInterest), Signal: domain.SignalNeutral},
		{Label: "BTC L/S RATIO", Value: fmt.Sprintf("%.2f", displayLS), Signal: lsSignal},
		{Label: "TAKER BUY/SELL", Value: fmt.Sprintf("%.2f", btc.TakerRatio), Signal: takerSignal},
		{Label: "BTC 24H VOLUME", Value: compactUSD(btc.Volume24h), Signal: domain.SignalNeutral},
		{Label: "MARKET BIAS", Value: string(bias), Signal: biasSignal},
	}
}

// compactUSD is the derivatives panel's dollar format: billions to one
// decimal, millions whole, everything else raw.
func compactUSD(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("$%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("$%.0fM", n/1e6)
	default:
		return fmt.Sprintf("$%.0f", n)
	}
}
