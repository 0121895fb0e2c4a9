package brief

import (
	"fmt"
	"strings"

	"the-signal/internal/domain"
)

func headline(fg int, dexChange, tvlChange, mcChange float64) string {
	switch {
	case fg < 25:
		h := fmt.Sprintf("Extreme Fear grips the market at %d/100", fg)
		if dexChange > 0 {
			return h + " — but DEX volume tells a different story"
		}
		return h + " — volume confirms the weakness"
	case fg < 40:
		h := fmt.Sprintf("Fear dominates with sentiment at %d/100", fg)
		if tvlChange > 0 {
			return h + " while TVL quietly climbs"
		}
		return h + " as capital exits DeFi"
	case fg < 60:
		h := fmt.Sprintf("Market in neutral territory at %d/100", fg)
		if mcChange > 0 {
			return h + " — slight bullish momentum building"
		}
		return h + " — waiting for a catalyst"
	case fg < 75:
		h := fmt.Sprintf("Greed rising with sentiment at %d/100", fg)
		if dexChange > 10 {
			return h + " — volume surge confirms conviction"
		}
		return h + " — but volume hasn't caught up yet"
	default:
		return fmt.Sprintf("Extreme Greed at %d/100 — caution warranted as markets may be overheated", fg)
	}
}

func buildSections(data domain.MarketData, fg int, fgLabel string, mcChange float64) []domain.Section {
	var sections []domain.Section
	if s := sentimentSection(data, fg, fgLabel); s != nil {
		sections = append(sections, *s)
	}
	if s := onchainSection(data.DexVolumes); s != nil {
		sections = append(sections, *s)
	}
	if s := tvlSection(data.TVL); s != nil {
		sections = append(sections, *s)
	}
	if s := yieldSection(data.Yields); s != nil {
		sections = append(sections, *s)
	}
	if s := stablecoinSection(data.Stablecoins); s != nil {
		sections = append(sections, *s)
	}
	if s := macroSection(data.GlobalMarket, mcChange); s != nil {
		sections = append(sections, *s)
	}
	return sections
}

func sentimentSection(data domain.MarketData, fg int, fgLabel string) *domain.Section {
	if data.FearGreed == nil || data.GlobalMarket == nil {
		return nil
	}
	gm := data.GlobalMarket

	fgSignal := domain.SignalNeutral
	if fg > 60 {
		fgSignal = domain.SignalBullish
	} else if fg < 40 {
		fgSignal = domain.SignalBearish
	}

	var analysis string
	switch {
	case fg < 20:
		analysis = fmt.Sprintf("The Fear & Greed Index sits at %d — deep in Extreme Fear territory. Historically, readings below 20 have marked local bottoms more often than not. When everyone is fearful, selling pressure tends to be exhausted.", fg)
	case fg < 40:
		analysis = fmt.Sprintf("Sentiment reads %d (%s). The market is pessimistic, which contrarians view as an accumulation zone. Fear readings in the 20-40 range often precede consolidation before a direction is chosen.", fg, fgLabel)
	case fg < 60:
		analysis = fmt.Sprintf("Sentiment is neutral at %d. The market lacks strong conviction in either direction — price action is likely to be driven by external catalysts rather than positioning.", fg)
	case fg < 80:
		analysis = fmt.Sprintf("Greed is building at %d (%s). Momentum is positive but crowded trades become fragile. Watch for signs of exhaustion if the reading pushes above 80.", fg, fgLabel)
	default:
		analysis = fmt.Sprintf("Extreme Greed at %d. Historically this zone precedes corrections — late buyers are chasing while early buyers look for exits. Risk management matters more than upside capture here.", fg)
	}

	mcSignal := domain.SignalBearish
	if gm.MarketCapChange24h > 0 {
		mcSignal = domain.SignalBullish
	}
	return &domain.Section{
		Title:    "Market Sentiment",
		Emoji:    "🌡️",
		Signal:   fgSignal,
		Analysis: analysis,
		KeyMetrics: []domain.Metric{
			{Label: "FEAR & GREED", Value: fmt.Sprintf("%d — %s", fg, fgLabel), Signal: fgSignal},
			{Label: "MARKET CAP 24H", Value: signedPct(gm.MarketCapChange24h, 2), Signal: mcSignal},
			{Label: "BTC DOMINANCE", Value: fmt.Sprintf("%.1f%%", gm.BTCDominance), Signal: domain.SignalNeutral},
		},
	}
}

func onchainSection(dex *domain.DexVolumeSnapshot) *domain.Section {
	if dex == nil {
		return nil
	}
	volSignal := domain.SignalNeutral
	if dex.Change7d > 5 {
		volSignal = domain.SignalBullish
	} else if dex.Change7d < -5 {
		volSignal = domain.SignalBearish
	}

	var analysis string
	switch {
	case dex.Change7d > 15:
		analysis = fmt.Sprintf("DEX volume is surging — up %.1f%% over the past week to %s daily. Rising onchain volume signals genuine trading demand, not just order-book churn. This is one of the harder signals to fake.", dex.Change7d, fmtUSD(dex.Total24h))
	case dex.Change7d > 0:
		analysis = fmt.Sprintf("DEX volume is up a modest %.1f%% this week at %s daily. Onchain activity is holding up, suggesting the market retains participation even without fireworks.", dex.Change7d, fmtUSD(dex.Total24h))
	default:
		analysis = fmt.Sprintf("DEX volume is down %.1f%% over the week to %s daily. Declining onchain activity means conviction is fading — traders are stepping back rather than positioning.", abs(dex.Change7d), fmtUSD(dex.Total24h))
	}

	dailySignal := domain.SignalBearish
	if dex.Change24h > 0 {
		dailySignal = domain.SignalBullish
	}
	return &domain.Section{
		Title:    "Onchain Activity",
		Emoji:    "📊",
		Signal:   volSignal,
		Analysis: analysis,
		KeyMetrics: []domain.Metric{
			{Label: "DEX VOLUME 24H", Value: fmtUSD(dex.Total24h), Signal: volSignal},
			{Label: "7D CHANGE", Value: signedPct(dex.Change7d, 1), Signal: volSignal},
			{Label: "24H CHANGE", Value: signedPct(dex.Change24h, 1), Signal: dailySignal},
		},
	}
}

func tvlSection(tvl *domain.TVLSnapshot) *domain.Section {
	if tvl == nil {
		return nil
	}
	tvlSignal := domain.SignalNeutral
	if tvl.Change7d > 2 {
		tvlSignal = domain.SignalBullish
	} else if tvl.Change7d < -2 {
		tvlSignal = domain.SignalBearish
	}

	var analysis string
	switch {
	case tvl.Change7d > 5:
		analysis = fmt.Sprintf("Total value locked is climbing fast — up %.1f%% this week to %s. Capital is actively deploying into DeFi protocols, a strong vote of confidence in onchain yields and risk appetite.", tvl.Change7d, fmtUSD(tvl.TotalTVL))
	case tvl.Change7d > 0:
		analysis = fmt.Sprintf("TVL is grinding higher, up %.1f%% on the week at %s. Slow and steady inflows suggest patient capital rather than hot money.", tvl.Change7d, fmtUSD(tvl.TotalTVL))
	default:
		analysis = fmt.Sprintf("TVL has slipped %.1f%% this week to %s. Capital leaving DeFi can reflect de-risking, yield compression, or rotation to other venues — none of them bullish near term.", abs(tvl.Change7d), fmtUSD(tvl.TotalTVL))
	}

	return &domain.Section{
		Title:    "DeFi & TVL",
		Emoji:    "🔒",
		Signal:   tvlSignal,
		Analysis: analysis,
		KeyMetrics: []domain.Metric{
			{Label: "TOTAL TVL", Value: fmtUSD(tvl.TotalTVL), Signal: tvlSignal},
			{Label: "7D CHANGE", Value: signedPct(tvl.Change7d, 1), Signal: tvlSignal},
		},
	}
}

func yieldSection(yields *domain.YieldSnapshot) *domain.Section {
	if yields == nil {
		return nil
	}
	var topStable, topVolatile *domain.YieldPool
	if len(yields.StableYields) > 0 {
		topStable = &yields.StableYields[0]
	}
	if len(yields.VolatileYields) > 0 {
		topVolatile = &yields.VolatileYields[0]
	}
	if topStable == nil && topVolatile == nil {
		return nil
	}

	var b strings.Builder
	signal := domain.SignalNeutral
	if topStable != nil {
		fmt.Fprintf(&b, "The best stablecoin yield available right now is %.1f%% on %s (%s). ", topStable.APY, topStable.Project, topStable.Chain)
		switch {
		case topStable.APY > 8:
			b.WriteString("Stablecoin yields above 8% usually mean elevated demand for leverage — traders are paying up to borrow. That tends to correlate with bullish positioning.")
		case topStable.APY > 5:
			b.WriteString("Yields in the 5-8% range beat traditional finance comfortably while staying sustainable. Healthy demand for onchain dollars.")
		default:
			b.WriteString("Sub-5% stablecoin yields signal muted borrowing demand — the market isn't paying for leverage right now.")
		}
		if topStable.APY > 5 {
			signal = domain.SignalBullish
		}
	}
	if topVolatile != nil {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "For risk-tolerant capital, %s on %s is offering %.0f%% APY — high reward but comes with impermanent loss and smart contract risk.",
			topVolatile.Project, topVolatile.Chain, topVolatile.APY)
	}

	var metrics []domain.Metric
	if topStable != nil {
		metrics = append(metrics, domain.Metric{
			Label:  "BEST STABLE: " + strings.ToUpper(topStable.Project),
			Value:  fmt.Sprintf("%s — %.1f%%", topStable.Symbol, topStable.APY),
			Signal: domain.SignalBullish,
		})
	}
	if topVolatile != nil {
		metrics = append(metrics, domain.Metric{
			Label:  "BEST VOLATILE: " + strings.ToUpper(topVolatile.Project),
			Value:  fmt.Sprintf("%s — %.0f%%", topVolatile.Symbol, topVolatile.APY),
			Signal: domain.SignalNeutral,
		})
	}

	return &domain.Section{
		Title:      "Yield Landscape",
		Emoji:      "💰",
		Signal:     signal,
		Analysis:   b.String(),
		KeyMetrics: metrics,
	}
}

func stablecoinSection(sc *domain.StablecoinSnapshot) *domain.Section {
	if sc == nil {
		return nil
	}
	scSignal := domain.SignalNeutral
	if sc.Change24h > 0 {
		scSignal = domain.SignalBullish
	} else if sc.Change24h < -0.01 {
		scSignal = domain.SignalBearish
	}

	analysis := fmt.Sprintf("Total stablecoin supply sits at %s", fmtUSD(sc.TotalCirculating))
	switch {
	case sc.Change24h > 0.01:
		minted := sc.TotalCirculating * sc.Change24h / 100
		analysis += fmt.Sprintf(", with %s minted in the last 24 hours. Fresh stablecoin minting is one of the most reliable bullish signals — it means new capital is entering the crypto ecosystem. This money needs to go somewhere.", fmtUSD(minted))
	case sc.Change24h < -0.01:
		analysis += ", declining over the past 24 hours. Stablecoin redemptions suggest capital is leaving the ecosystem — a bearish signal for near-term price action."
	default:
		analysis += ", holding steady over the last 24 hours. No significant minting or redemption activity suggests the market is in a wait-and-see mode."
	}

	return &domain.Section{
		Title:    "Stablecoin Flows",
		Emoji:    "💵",
		Signal:   scSignal,
		Analysis: analysis,
		KeyMetrics: []domain.Metric{
			{Label: "TOTAL SUPPLY", Value: fmtUSD(sc.TotalCirculating), Signal: scSignal},
			{Label: "24H CHANGE", Value: signedPct(sc.Change24h, 3), Signal: scSignal},
		},
	}
}

func macroSection(gm *domain.GlobalMarketSnapshot, mcChange float64) *domain.Section {
	if gm == nil {
		return nil
	}
	mcSignal := domain.SignalNeutral
	if mcChange > 1 {
		mcSignal = domain.SignalBullish
	} else if mcChange < -1 {
		mcSignal = domain.SignalBearish
	}

	direction := "down"
	if mcChange > 0 {
		direction = "up"
	}
	analysis := fmt.Sprintf("The total crypto market cap is %s, %s %.2f%% in the last 24 hours. ", fmtUSD(gm.TotalMarketCap), direction, abs(mcChange))
	switch {
	case gm.BTCDominance > 55:
		analysis += fmt.Sprintf("BTC dominance is elevated at %.1f%% — capital is hiding in Bitcoin rather than rotating into alts. Alt seasons start when dominance rolls over, not while it climbs.", gm.BTCDominance)
	case gm.BTCDominance > 45:
		analysis += fmt.Sprintf("BTC dominance at %.1f%% is in a normal range. Capital is reasonably balanced between Bitcoin and the rest of the market.", gm.BTCDominance)
	default:
		analysis += fmt.Sprintf("BTC dominance is low at %.1f%% — alts are commanding an unusually large share of the market. This is typically late-cycle behavior.", gm.BTCDominance)
	}

	domSignal := domain.SignalNeutral
	if gm.BTCDominance > 55 {
		domSignal = domain.SignalBearish
	}
	return &domain.Section{
		Title:    "Macro Pulse",
		Emoji:    "🔮",
		Signal:   mcSignal,
		Analysis: analysis,
		KeyMetrics: []domain.Metric{
			{Label: "TOTAL MARKET CAP", Value: fmtUSD(gm.TotalMarketCap), Signal: mcSignal},
			{Label: "24H VOLUME", Value: fmtUSD(gm.TotalVolume24h), Signal: domain.SignalNeutral},
			{Label: "BTC DOMINANCE", Value: fmt.Sprintf("%.1f%%", gm.BTCDominance), Signal: domSignal},
			{Label: "ETH DOMINANCE", Value: fmt.Sprintf("%.1f%%", gm.ETHDominance), Signal: domain.SignalNeutral},
		},
	}
}

func keyTakeaways(data domain.MarketData, fg int, dexChange, tvlChange, mcChange float64) []string {
	var takeaways []string
	if data.FearGreed != nil {
		if fg < 25 {
			takeaways = append(takeaways, fmt.Sprintf("🔴 Extreme Fear (%d/100) — historically a buying opportunity, but confirm with volume", fg))
		} else if fg > 75 {
			takeaways = append(takeaways, fmt.Sprintf("🟡 Extreme Greed (%d/100) — caution warranted, consider taking profits", fg))
		}
	}
	if data.DexVolumes != nil {
		if dexChange > 10 {
			takeaways = append(takeaways, fmt.Sprintf("🟢 DEX volume surging +%.0f%% weekly — strong onchain conviction", dexChange))
		} else if dexChange < -10 {
			takeaways = append(takeaways, fmt.Sprintf("🔴 DEX volume declining %.0f%% weekly — waning interest", dexChange))
		}
	}
	if data.TVL != nil {
		if tvlChange > 3 {
			takeaways = append(takeaways, fmt.Sprintf("🟢 TVL growing +%.1f%% this week — capital flowing into DeFi", tvlChange))
		} else if tvlChange < -3 {
			takeaways = append(takeaways, fmt.Sprintf("🔴 TVL declining %.1f%% this week — capital leaving DeFi", tvlChange))
		}
	}
	if data.Stablecoins != nil && data.Stablecoins.Change24h > 0.01 {
		takeaways = append(takeaways, "🟢 Fresh stablecoins minted — new capital entering the system")
	}
	if data.GlobalMarket != nil {
		if data.GlobalMarket.BTCDominance > 57 {
			takeaways = append(takeaways, fmt.Sprintf("🟡 BTC dominance high at %.1f%% — alts underperforming", data.GlobalMarket.BTCDominance))
		}
		if mcChange > 2 {
			takeaways = append(takeaways, fmt.Sprintf("🟢 Market cap up %.1f%% in 24h — strong momentum", mcChange))
		} else if mcChange < -2 {
			takeaways = append(takeaways, fmt.Sprintf("🔴 Market cap down %.1f%% in 24h — selling pressure", abs(mcChange)))
		}
	}
	if len(takeaways) == 0 {
		takeaways = append(takeaways, "🟡 Market in consolidation — no strong directional signals")
	}
	return takeaways
}

func riskFactors(data domain.MarketData, fg int, dexChange, tvlChange float64) []string {
	var risks []string
	if data.FearGreed != nil {
		if fg < 20 {
			risks = append(risks, "Extreme fear can lead to capitulation cascades")
		} else if fg > 80 {
			risks = append(risks, "Extreme greed often precedes sharp corrections")
		}
	}
	if data.DexVolumes != nil && dexChange < -5 {
		risks = append(risks, "Declining volume suggests weakening conviction")
	}
	if data.TVL != nil && tvlChange < -2 {
		risks = append(risks, "Capital outflows from DeFi may accelerate")
	}
	if data.GlobalMarket != nil && data.GlobalMarket.BTCDominance > 58 {
		risks = append(risks, "High BTC dominance = alt underperformance risk")
	}
	risks = append(risks,
		"Macro events (Fed, regulations) can override onchain signals",
		"This analysis uses free public data — whale/smart money data requires premium sources")
	return risks
}
