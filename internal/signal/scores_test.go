package signal

import (
	"testing"

	"the-signal/internal/domain"
)

func TestCalculateScoresSentimentPassthrough(t *testing.T) {
	data := domain.MarketData{
		FearGreed: &domain.FearGreedSnapshot{Value: 15, Label: "Extreme Fear"},
	}

	scores := CalculateScores(data)
	cs, ok := scores[domain.CategorySentiment]
	if !ok {
		t.Fatal("sentiment category missing")
	}
	if cs.Score != 15 {
		t.Fatalf("expected score 15, got %d", cs.Score)
	}
	if len(cs.Metrics) != 1 || cs.Metrics[0].Signal != domain.SignalBearish {
		t.Fatalf("unexpected metrics: %+v", cs.Metrics)
	}
	if cs.Metrics[0].Value != "15 — Extreme Fear" {
		t.Fatalf("unexpected metric value: %s", cs.Metrics[0].Value)
	}
}

func TestCalculateScoresOnchainVolumeCeiling(t *testing.T) {
	global := &domain.GlobalMarketSnapshot{TotalMarketCap: 3e12, ActiveCryptos: 17000}

	tests := []struct {
		volume float64
		want   int
	}{
		{20_000_000_000, 100},
		{10_000_000_000, 50},
		{40_000_000_000, 100},
		{0, 0},
	}
	for _, tc := range tests {
		data := domain.MarketData{
			GlobalMarket: global,
			DexVolumes:   &domain.DexVolumeSnapshot{Total24h: tc.volume},
		}
		cs, ok := CalculateScores(data)[domain.CategoryOnchain]
		if !ok {
			t.Fatal("onchain category missing")
		}
		if cs.Score != tc.want {
			t.Fatalf("volume %f: expected %d, got %d", tc.volume, tc.want, cs.Score)
		}
	}
}

func TestCalculateScoresYieldsFromTVLChange(t *testing.T) {
	data := domain.MarketData{
		TVL: &domain.TVLSnapshot{TotalTVL: 100e9, Change7d: 4},
		Yields: &domain.YieldSnapshot{
			StableYields: []domain.YieldPool{
				{Project: "aave-v3", Symbol: "USDC", APY: 6.5},
			},
			VolatileYields: []domain.YieldPool{
				{Project: "uniswap-v3", Symbol: "WETH-WBTC", APY: 24},
			},
		},
	}

	cs, ok := CalculateScores(data)[domain.CategoryYields]
	if !ok {
		t.Fatal("yields category missing")
	}
	if cs.Score != 70 {
		t.Fatalf("expected 50 + 4*5 = 70, got %d", cs.Score)
	}
	if len(cs.Metrics) != 3 {
		t.Fatalf("expected TVL + 2 pool metrics, got %+v", cs.Metrics)
	}
	if cs.Metrics[1].Label != "TOP STABLE: AAVE-V3" || cs.Metrics[1].Signal != domain.SignalBullish {
		t.Fatalf("unexpected stable metric: %+v", cs.Metrics[1])
	}
	if cs.Metrics[2].Label != "TOP YIELD: UNISWAP-V3" {
		t.Fatalf("unexpected volatile metric: %+v", cs.Metrics[2])
	}
}

func TestCalculateScoresMacroClamping(t *testing.T) {
	tests := []struct {
		change float64
		want   int
	}{
		{0, 50},
		{4, 70},
		{-4, 30},
		{15, 100},
		{-15, 0},
	}
	for _, tc := range tests {
		data := domain.MarketData{
			GlobalMarket: &domain.GlobalMarketSnapshot{MarketCapChange24h: tc.change},
		}
		cs, ok := CalculateScores(data)[domain.CategoryMacro]
		if !ok {
			t.Fatal("macro category missing")
		}
		if cs.Score != tc.want {
			t.Fatalf("change %f: expected %d, got %d", tc.change, tc.want, cs.Score)
		}
	}
}

func TestCalculateScoresStablecoinFlowMultiplier(t *testing.T) {
	data := domain.MarketData{
		Stablecoins: &domain.StablecoinSnapshot{
			TotalCirculating: 200e9,
			Change24h:        0.5,
			Top5: []domain.StablecoinAsset{
				{Symbol: "USDT", Circulating: 140e9, Change24h: 0.6},
				{Symbol: "USDC", Circulating: 60e9, Change24h: -0.1},
			},
		},
	}

	cs, ok := CalculateScores(data)[domain.CategoryStablecoins]
	if !ok {
		t.Fatal("stablecoin category missing")
	}
	if cs.Score != 60 {
		t.Fatalf("expected 50 + 0.5*20 = 60, got %d", cs.Score)
	}
	if cs.Metrics[1].Label != "USDT" || cs.Metrics[1].Signal != domain.SignalBullish {
		t.Fatalf("unexpected USDT metric: %+v", cs.Metrics[1])
	}
	if cs.Metrics[2].Signal != domain.SignalBearish {
		t.Fatalf("expected bearish USDC metric: %+v", cs.Metrics[2])
	}
}

func TestCalculateScoresOmitsAbsentCategories(t *testing.T) {
	scores := CalculateScores(domain.MarketData{})
	if len(scores) != 0 {
		t.Fatalf("expected no categories for empty data, got %+v", scores)
	}

	// DEX volumes without global market data cannot score onchain.
	scores = CalculateScores(domain.MarketData{
		DexVolumes: &domain.DexVolumeSnapshot{Total24h: 10e9},
	})
	if _, ok := scores[domain.CategoryOnchain]; ok {
		t.Fatal("onchain should require global market data")
	}

	// TVL without yields cannot score the yields category.
	scores = CalculateScores(domain.MarketData{
		TVL: &domain.TVLSnapshot{TotalTVL: 100e9},
	})
	if _, ok := scores[domain.CategoryYields]; ok {
		t.Fatal("yields should require yield pool data")
	}
}

func TestCalculateScoresIncludesLeverage(t *testing.T) {
	data := domain.MarketData{
		Derivatives: &domain.DerivativesSnapshot{
			BTC: domain.AssetDerivatives{
				FundingRate:    0.01,
				LongShortRatio: []float64{1.0},
				TakerRatio:     1.0,
			},
		},
	}

	cs, ok := CalculateScores(data)[domain.CategoryLeverage]
	if !ok {
		t.Fatal("leverage category missing")
	}
	if cs.Score == 0 || len(cs.Metrics) != 7 {
		t.Fatalf("unexpected leverage score: %+v", cs)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		17342:    "17,342",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for n, want := range tests {
		if got := groupThousands(n); got != want {
			t.Fatalf("%d: expected %q, got %q", n, want, got)
		}
	}
}
