package brief

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"the-signal/internal/domain"
	"the-signal/internal/signal"
)

var briefNow = time.Date(2025, 8, 28, 16, 30, 0, 0, time.UTC)

func fullMarketData() domain.MarketData {
	return domain.MarketData{
		FearGreed:    &domain.FearGreedSnapshot{Value: 18, Label: "Extreme Fear"},
		GlobalMarket: &domain.GlobalMarketSnapshot{TotalMarketCap: 3.2e12, TotalVolume24h: 95e9, BTCDominance: 56.0, ETHDominance: 12.5, MarketCapChange24h: -2.4},
		DexVolumes:   &domain.DexVolumeSnapshot{Total24h: 12e9, Change24h: 1.2, Change7d: 14.0},
		TVL:          &domain.TVLSnapshot{TotalTVL: 105e9, Change7d: 3.8},
		Yields: &domain.YieldSnapshot{
			StableYields:   []domain.YieldPool{{Project: "aave-v3", Symbol: "USDC", Chain: "Ethereum", APY: 6.4}},
			VolatileYields: []domain.YieldPool{{Project: "uniswap-v3", Symbol: "WETH-WBTC", Chain: "Ethereum", APY: 23.7}},
		},
		Stablecoins: &domain.StablecoinSnapshot{TotalCirculating: 210e9, Change24h: 0.15},
	}
}

func TestGenerateExtremeFearHeadline(t *testing.T) {
	data := fullMarketData()
	b := Generate(data, signal.CalculateScores(data), briefNow)

	if !strings.HasPrefix(b.Headline, "Extreme Fear grips the market at 18/100") {
		t.Fatalf("unexpected headline: %q", b.Headline)
	}
	// Positive DEX volume change picks the contrarian clause.
	if !strings.HasSuffix(b.Headline, "but DEX volume tells a different story") {
		t.Fatalf("unexpected headline suffix: %q", b.Headline)
	}
}

func TestGenerateHeadlineBands(t *testing.T) {
	tests := []struct {
		fg     int
		dex    float64
		tvl    float64
		mc     float64
		prefix string
	}{
		{10, -1, 0, 0, "Extreme Fear grips the market at 10/100 — volume confirms the weakness"},
		{30, 0, 2, 0, "Fear dominates with sentiment at 30/100 while TVL quietly climbs"},
		{30, 0, -2, 0, "Fear dominates with sentiment at 30/100 as capital exits DeFi"},
		{50, 0, 0, 1, "Market in neutral territory at 50/100 — slight bullish momentum building"},
		{50, 0, 0, -1, "Market in neutral territory at 50/100 — waiting for a catalyst"},
		{65, 15, 0, 0, "Greed rising with sentiment at 65/100 — volume surge confirms conviction"},
		{65, 5, 0, 0, "Greed rising with sentiment at 65/100 — but volume hasn't caught up yet"},
		{80, 0, 0, 0, "Extreme Greed at 80/100 — caution warranted as markets may be overheated"},
	}
	for _, tc := range tests {
		if got := headline(tc.fg, tc.dex, tc.tvl, tc.mc); got != tc.prefix {
			t.Fatalf("fg=%d: expected %q, got %q", tc.fg, tc.prefix, got)
		}
	}
}

func TestGenerateAllNilData(t *testing.T) {
	b := Generate(domain.MarketData{}, nil, briefNow)

	if b.CompositeScore != 50 {
		t.Fatalf("expected neutral composite, got %d", b.CompositeScore)
	}
	if b.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected NEUTRAL, got %s", b.Sentiment)
	}
	if len(b.Sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(b.Sections))
	}
	if len(b.KeyTakeaways) != 1 || !strings.Contains(b.KeyTakeaways[0], "consolidation") {
		t.Fatalf("expected consolidation fallback takeaway, got %+v", b.KeyTakeaways)
	}
	// The two standing risk factors always close the list.
	if len(b.RiskFactors) != 2 {
		t.Fatalf("expected exactly the standing risks, got %+v", b.RiskFactors)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	data := fullMarketData()
	scores := signal.CalculateScores(data)

	a := Generate(data, scores, briefNow)
	b := Generate(data, scores, briefNow)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different briefs")
	}
}

func TestGenerateIDFromUTCDate(t *testing.T) {
	b := Generate(domain.MarketData{}, nil, briefNow)
	if b.ID != "brief-2025-08-28" {
		t.Fatalf("unexpected brief ID: %s", b.ID)
	}
}

func TestGenerateSectionOrder(t *testing.T) {
	data := fullMarketData()
	b := Generate(data, signal.CalculateScores(data), briefNow)

	wantTitles := []string{
		"Market Sentiment",
		"Onchain Activity",
		"DeFi & TVL",
		"Yield Landscape",
		"Stablecoin Flows",
		"Macro Pulse",
	}
	if len(b.Sections) != len(wantTitles) {
		t.Fatalf("expected %d sections, got %d", len(wantTitles), len(b.Sections))
	}
	for i, want := range wantTitles {
		if b.Sections[i].Title != want {
			t.Fatalf("section %d: expected %q, got %q", i, want, b.Sections[i].Title)
		}
	}
}

func TestGenerateTakeawayOrderAndThresholds(t *testing.T) {
	data := fullMarketData()
	b := Generate(data, signal.CalculateScores(data), briefNow)

	// fg 18 < 25, dex +14 > 10, tvl +3.8 > 3, stables +0.15 > 0.01,
	// mc -2.4 < -2. BTC dominance 56 stays under the 57 threshold.
	want := []string{
		"🔴 Extreme Fear (18/100) — historically a buying opportunity, but confirm with volume",
		"🟢 DEX volume surging +14% weekly — strong onchain conviction",
		"🟢 TVL growing +3.8% this week — capital flowing into DeFi",
		"🟢 Fresh stablecoins minted — new capital entering the system",
		"🔴 Market cap down 2.4% in 24h — selling pressure",
	}
	if !reflect.DeepEqual(b.KeyTakeaways, want) {
		t.Fatalf("unexpected takeaways:\n got %+v\nwant %+v", b.KeyTakeaways, want)
	}
}

func TestGenerateRiskFactors(t *testing.T) {
	data := fullMarketData()
	data.GlobalMarket.BTCDominance = 59
	data.DexVolumes.Change7d = -8
	data.TVL.Change7d = -4

	b := Generate(data, signal.CalculateScores(data), briefNow)

	joined := strings.Join(b.RiskFactors, "\n")
	for _, want := range []string{
		"capitulation cascades",
		"weakening conviction",
		"Capital outflows from DeFi",
		"alt underperformance risk",
		"Macro events",
		"free public data",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing risk %q in %+v", want, b.RiskFactors)
		}
	}
}

func TestStablecoinSectionMintedAmount(t *testing.T) {
	sc := &domain.StablecoinSnapshot{TotalCirculating: 200e9, Change24h: 0.5}
	section := stablecoinSection(sc)
	if section == nil {
		t.Fatal("expected section")
	}
	// 200B * 0.5% = 1B minted.
	if !strings.Contains(section.Analysis, "$1.0B minted in the last 24 hours") {
		t.Fatalf("unexpected analysis: %q", section.Analysis)
	}
	if section.Signal != domain.SignalBullish {
		t.Fatalf("expected bullish, got %s", section.Signal)
	}
}

func TestTLDRHandlesMissingSources(t *testing.T) {
	data := domain.MarketData{
		FearGreed:    &domain.FearGreedSnapshot{Value: 44, Label: "Fear"},
		GlobalMarket: &domain.GlobalMarketSnapshot{MarketCapChange24h: 1.1},
	}
	b := Generate(data, signal.CalculateScores(data), briefNow)

	if !strings.Contains(b.TLDR, "Fear & Greed at 44 (Fear)") {
		t.Fatalf("unexpected TLDR: %q", b.TLDR)
	}
	if !strings.Contains(b.TLDR, "DEX volume at N/A") {
		t.Fatalf("missing DEX fallback: %q", b.TLDR)
	}
	if !strings.Contains(b.TLDR, "Total DeFi TVL at N/A") {
		t.Fatalf("missing TVL fallback: %q", b.TLDR)
	}
	if !strings.Contains(b.TLDR, "Market cap up 1.10% in 24h") {
		t.Fatalf("missing market cap direction: %q", b.TLDR)
	}
}

func TestFmtUSD(t *testing.T) {
	tests := map[float64]string{
		3.21e12: "$3.21T",
		105e9:   "$105.0B",
		42e6:    "$42M",
		971_250: "$971,250",
		999:     "$999",
	}
	for v, want := range tests {
		if got := fmtUSD(v); got != want {
			t.Fatalf("%f: expected %q, got %q", v, want, got)
		}
	}
}
