// Package signal turns raw market snapshots into bounded 0-100 category
// scores, a derivatives leverage score and composite aggregates. Every
// function here is pure: identical inputs produce identical outputs.
package signal

import (
	"fmt"
	"math"
	"strings"

	"the-signal/internal/domain"
)

// Score calibration constants. $20B of 24h DEX volume is a perfect
// onchain score; the multipliers shift a 50-point neutral baseline per
// percent of change. Stablecoin flows move in far smaller percentages,
// hence the heavier multiplier.
const (
	dexVolumeCeiling      = 20_000_000_000
	tvlChangeMultiplier   = 5
	macroChangeMultiplier = 5
	stableFlowMultiplier  = 20
)

// CalculateScores maps the available snapshots to per-category scores.
// A category whose required snapshots are absent is omitted entirely,
// never defaulted.
func CalculateScores(data domain.MarketData) map[domain.Category]domain.CategoryScore {
	scores := make(map[domain.Category]domain.CategoryScore)

	if fg := data.FearGreed; fg != nil {
		scores[domain.CategorySentiment] = domain.CategoryScore{
			Score: clampScore(float64(fg.Value)),
			Metrics: []domain.Metric{
				{
					Label:  "FEAR & GREED INDEX",
					Value:  fmt.Sprintf("%d — %s", fg.Value, fg.Label),
					Signal: fearGreedSignal(fg.Value),
				},
			},
		}
	}

	if dex, global := data.DexVolumes, data.GlobalMarket; dex != nil && global != nil {
		scores[domain.CategoryOnchain] = domain.CategoryScore{
			Score: clampScore(dex.Total24h / dexVolumeCeiling * 100),
			Metrics: []domain.Metric{
				{
					Label:  "TOTAL DEX VOLUME (24H)",
					Value:  domain.FormatUSD(dex.Total24h),
					Change: ptr(dex.Change24h),
					Signal: directional(dex.Change24h),
				},
				{
					Label:  "VOLUME CHANGE (7D)",
					Value:  signedPct(dex.Change7d, 1),
					Signal: directional(dex.Change7d),
				},
				{
					Label:  "TOTAL MARKET CAP",
					Value:  domain.FormatUSD(global.TotalMarketCap),
					Change: ptr(global.MarketCapChange24h),
					Signal: directional(global.MarketCapChange24h),
				},
				{
					Label:  "ACTIVE CRYPTOCURRENCIES",
					Value:  groupThousands(global.ActiveCryptos),
					Signal: domain.SignalNeutral,
				},
			},
		}
	}

	if yields, tvl := data.Yields, data.TVL; yields != nil && tvl != nil {
		metrics := []domain.Metric{
			{
				Label:  "TOTAL DEFI TVL",
				Value:  domain.FormatUSD(tvl.TotalTVL),
				Change: ptr(tvl.Change7d),
				Signal: directional(tvl.Change7d),
			},
		}
		for _, pool := range topN(yields.StableYields, 2) {
			sig := domain.SignalNeutral
			if pool.APY > 5 {
				sig = domain.SignalBullish
			}
			metrics = append(metrics, domain.Metric{
				Label:  "TOP STABLE: " + strings.ToUpper(pool.Project),
				Value:  fmt.Sprintf("%s — %.1f%% APY", pool.Symbol, pool.APY),
				Signal: sig,
			})
		}
		for _, pool := range topN(yields.VolatileYields, 2) {
			metrics = append(metrics, domain.Metric{
				Label:  "TOP YIELD: " + strings.ToUpper(pool.Project),
				Value:  fmt.Sprintf("%s — %.1f%% APY", pool.Symbol, pool.APY),
				Signal: domain.SignalBullish,
			})
		}
		scores[domain.CategoryYields] = domain.CategoryScore{
			Score:   clampScore(50 + tvl.Change7d*tvlChangeMultiplier),
			Metrics: metrics,
		}
	}

	if global := data.GlobalMarket; global != nil {
		mcChange := global.MarketCapChange24h
		scores[domain.CategoryMacro] = domain.CategoryScore{
			Score: clampScore(50 + mcChange*macroChangeMultiplier),
			Metrics: []domain.Metric{
				{Label: "BTC DOMINANCE", Value: fmt.Sprintf("%.1f%%", global.BTCDominance), Signal: domain.SignalNeutral},
				{Label: "ETH DOMINANCE", Value: fmt.Sprintf("%.1f%%", global.ETHDominance), Signal: domain.SignalNeutral},
				{Label: "MARKET CAP (24H)", Value: signedPct(mcChange, 2), Signal: directional(mcChange)},
				{Label: "TOTAL VOLUME (24H)", Value: domain.FormatUSD(global.TotalVolume24h), Signal: domain.SignalNeutral},
			},
		}
	}

	if stables := data.Stablecoins; stables != nil {
		metrics := []domain.Metric{
			{
				Label:  "TOTAL STABLECOIN SUPPLY",
				Value:  domain.FormatUSD(stables.TotalCirculating),
				Change: ptr(stables.Change24h),
				Signal: directional(stables.Change24h),
			},
		}
		for _, asset := range topN(stables.Top5, 3) {
			sig := domain.SignalNeutral
			switch {
			case asset.Change24h > 0:
				sig = domain.SignalBullish
			case asset.Change24h < 0:
				sig = domain.SignalBearish
			}
			metrics = append(metrics, domain.Metric{
				Label:  asset.Symbol,
				Value:  domain.FormatUSD(asset.Circulating),
				Change: ptr(asset.Change24h),
				Signal: sig,
			})
		}
		scores[domain.CategoryStablecoins] = domain.CategoryScore{
			Score:   clampScore(50 + stables.Change24h*stableFlowMultiplier),
			Metrics: metrics,
		}
	}

	if data.Derivatives != nil {
		report := AnalyzeDerivatives(*data.Derivatives)
		scores[domain.CategoryLeverage] = domain.CategoryScore{
			Score:   report.Score,
			Metrics: report.Metrics,
		}
	}

	return scores
}

// fearGreedSignal is the index's own signal ladder: greed above 60 reads
// bullish, fear below 40 bearish.
func fearGreedSignal(value int) domain.Signal {
	switch {
	case value > 60:
		return domain.SignalBullish
	case value < 40:
		return domain.SignalBearish
	default:
		return domain.SignalNeutral
	}
}

func directional(change float64) domain.Signal {
	if change > 0 {
		return domain.SignalBullish
	}
	return domain.SignalBearish
}

func clampScore(v float64) int {
	return int(math.Round(math.Min(100, math.Max(0, v))))
}

func signedPct(v float64, decimals int) string {
	if v > 0 {
		return fmt.Sprintf("+%.*f%%", decimals, v)
	}
	return fmt.Sprintf("%.*f%%", decimals, v)
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

func topN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func ptr(v float64) *float64 { return &v }
