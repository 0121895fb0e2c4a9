package domain

import "fmt"

// Signal is the three-valued directional classification attached to
// metrics, categories and brief sections.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// Sentiment is the market-wide classification derived from a 0-100 score.
type Sentiment string

const (
	SentimentBullish  Sentiment = "BULLISH"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentCautious Sentiment = "CAUTIOUS"
	SentimentBearish  Sentiment = "BEARISH"
)

// SentimentForScore maps a 0-100 score onto the four-tier sentiment ladder.
// Every score-to-sentiment conversion in the system goes through here.
func SentimentForScore(score int) Sentiment {
	switch {
	case score >= 70:
		return SentimentBullish
	case score >= 50:
		return SentimentNeutral
	case score >= 30:
		return SentimentCautious
	default:
		return SentimentBearish
	}
}

// Bias classifies derivatives positioning from the long/short ratio.
type Bias string

const (
	BiasLongHeavy  Bias = "LONG HEAVY"
	BiasShortHeavy Bias = "SHORT HEAVY"
	BiasBalanced   Bias = "BALANCED"
)

// Category identifies a signal category. The display string doubles as the
// JSON key so the API output matches the dashboard's labels.
type Category string

const (
	CategorySentiment   Category = "Market Sentiment"
	CategoryOnchain     Category = "Onchain Activity"
	CategoryYields      Category = "DeFi Yields"
	CategoryMacro       Category = "Macro Pulse"
	CategoryStablecoins Category = "Stablecoins"
	CategoryLeverage    Category = "Leverage"
)

// Categories fixes the iteration order wherever deterministic output is
// needed (composite math, section assembly, JSON rendering).
var Categories = []Category{
	CategorySentiment,
	CategoryOnchain,
	CategoryYields,
	CategoryMacro,
	CategoryStablecoins,
	CategoryLeverage,
}

// Metric is a single labeled, display-ready data point.
type Metric struct {
	Label  string   `json:"label"`
	Value  string   `json:"value"`
	Change *float64 `json:"change,omitempty"`
	Signal Signal   `json:"signal"`
}

// CategoryScore is a bounded 0-100 score plus its supporting metrics.
// Recomputed from scratch on every pass; never mutated in place.
type CategoryScore struct {
	Score   int      `json:"score"`
	Metrics []Metric `json:"metrics"`
}

// LeverageReport is the derivatives analyzer's output: a leverage score,
// positioning bias and a threshold-driven narrative.
type LeverageReport struct {
	Score            int          `json:"score"`
	Bias             Bias         `json:"bias"`
	FundingSignal    Signal       `json:"fundingSignal"`
	TakerSignal      Signal       `json:"takerSignal"`
	LatestLongShort  float64      `json:"latestLongShort"`
	Analysis         string       `json:"analysis"`
	Metrics          []Metric     `json:"metrics"`
	LongShortHistory []float64    `json:"longShortHistory"`
	TopCoins         []AltFunding `json:"topCoins"`
}

// Section is one category's slice of a Brief.
type Section struct {
	Title      string   `json:"title"`
	Emoji      string   `json:"emoji"`
	Analysis   string   `json:"analysis"`
	Signal     Signal   `json:"signal"`
	KeyMetrics []Metric `json:"keyMetrics"`
}

// Brief is the synthesized market summary produced once per scoring cycle.
type Brief struct {
	ID             string    `json:"id"`
	Timestamp      string    `json:"timestamp"`
	CompositeScore int       `json:"compositeScore"`
	Sentiment      Sentiment `json:"sentiment"`
	Headline       string    `json:"headline"`
	TLDR           string    `json:"tldr"`
	Sections       []Section `json:"sections"`
	KeyTakeaways   []string  `json:"keyTakeaways"`
	RiskFactors    []string  `json:"riskFactors"`
}

// SignalResult is the full outbound payload: raw snapshots, per-category
// scores, both composite variants and the optional leverage report.
type SignalResult struct {
	RawData           MarketData                 `json:"rawData"`
	Scores            map[Category]CategoryScore `json:"scores"`
	CompositeScore    int                        `json:"compositeScore"`
	WeightedComposite int                        `json:"weightedComposite"`
	Sentiment         Sentiment                  `json:"sentiment"`
	Leverage          *LeverageReport            `json:"leverage,omitempty"`
}

// FormatUSD renders a dollar amount the way the score metrics display it.
func FormatUSD(n float64) string {
	switch {
	case n >= 1e12:
		return fmt.Sprintf("$%.2fT", n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("$%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("$%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("$%.0fK", n/1e3)
	default:
		return fmt.Sprintf("$%.0f", n)
	}
}
