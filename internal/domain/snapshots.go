package domain

// Provider snapshots. Each is the immutable result of one successful
// upstream fetch; a nil pointer in MarketData means the source failed
// this cycle and its categories are skipped.

type FearGreedPoint struct {
	Value int    `json:"value"`
	Date  string `json:"date"`
}

type FearGreedSnapshot struct {
	Value   int              `json:"value"`
	Label   string           `json:"label"`
	History []FearGreedPoint `json:"history"`
}

type GlobalMarketSnapshot struct {
	TotalMarketCap     float64 `json:"totalMarketCap"`
	TotalVolume24h     float64 `json:"totalVolume24h"`
	BTCDominance       float64 `json:"btcDominance"`
	ETHDominance       float64 `json:"ethDominance"`
	ActiveCryptos      int     `json:"activeCryptos"`
	MarketCapChange24h float64 `json:"marketCapChange24h"`
}

type ChainVolume struct {
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
}

type DexVolumeSnapshot struct {
	Total24h  float64       `json:"total24h"`
	Change24h float64       `json:"change24h"`
	Change7d  float64       `json:"change7d"`
	Change30d float64       `json:"change30d"`
	TopChains []ChainVolume `json:"topChains"`
}

type TVLPoint struct {
	Date string  `json:"date"`
	TVL  float64 `json:"tvl"`
}

type TVLSnapshot struct {
	TotalTVL float64    `json:"totalTvl"`
	Change7d float64    `json:"change7d"`
	History  []TVLPoint `json:"history"`
}

type YieldPool struct {
	Project string  `json:"project"`
	Symbol  string  `json:"symbol"`
	Chain   string  `json:"chain"`
	APY     float64 `json:"apy"`
	TVL     float64 `json:"tvl"`
}

type YieldSnapshot struct {
	StableYields   []YieldPool `json:"stableYields"`
	VolatileYields []YieldPool `json:"volatileYields"`
}

type StablecoinAsset struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Circulating float64 `json:"circulating"`
	Change24h   float64 `json:"change24h"`
}

type StablecoinSnapshot struct {
	TotalCirculating float64           `json:"totalCirculating"`
	Change24h        float64           `json:"change24h"`
	Top5             []StablecoinAsset `json:"top5"`
}

// AssetDerivatives holds one asset's derivatives-market state. Funding
// rate is in percent, long/short ratio history is most-recent-last.
type AssetDerivatives struct {
	FundingRate    float64   `json:"fundingRate"`
	OpenInterest   float64   `json:"openInterest"`
	Volume24h      float64   `json:"volume24h"`
	LongShortRatio []float64 `json:"longShortRatio"`
	TakerBuyVol    float64   `json:"takerBuyVol"`
	TakerSellVol   float64   `json:"takerSellVol"`
	TakerRatio     float64   `json:"takerRatio"`
}

type AltFunding struct {
	Symbol       string  `json:"symbol"`
	FundingRate  float64 `json:"fundingRate"`
	OpenInterest float64 `json:"openInterest"`
}

type DerivativesSnapshot struct {
	BTC      AssetDerivatives `json:"btc"`
	ETH      AssetDerivatives `json:"eth"`
	TopCoins []AltFunding     `json:"topCoins"`
}

// MarketData bundles the most recent snapshot from every provider.
// Nil fields mean "no data this cycle", never an error condition.
type MarketData struct {
	FearGreed    *FearGreedSnapshot    `json:"fearGreed"`
	GlobalMarket *GlobalMarketSnapshot `json:"globalMarket"`
	DexVolumes   *DexVolumeSnapshot    `json:"dexVolumes"`
	TVL          *TVLSnapshot          `json:"tvlData"`
	Yields       *YieldSnapshot        `json:"topYields"`
	Stablecoins  *StablecoinSnapshot   `json:"stablecoins"`
	Derivatives  *DerivativesSnapshot  `json:"derivatives"`
}
