package advisor

import (
	"fmt"
	"strings"
	"time"

	"the-signal/internal/domain"
)

const advisorPhilosophy = `You are a crypto market analyst. Your role is to interpret the market intelligence data you are given, NOT to invent numbers or signals.

Rules:
- Always reference the specific scores and metrics in the data when making observations.
- Never fabricate data. If a category is missing from the data, say so.
- Express uncertainty when categories conflict (e.g. bullish sentiment but declining volume).
- The composite score is a 0-100 gauge: above 70 bullish, 50-69 neutral, 30-49 cautious, below 30 bearish.
- Keep responses concise. Lead with the direct answer, then the supporting data.
- Do not provide financial advice disclaimers on every message. The user understands this is informational.
- This analysis uses free public data sources; say so if asked about whale or smart-money flows.`

func BuildSystemPrompt(marketContext string) string {
	var sb strings.Builder
	sb.WriteString(advisorPhilosophy)
	sb.WriteString("\n\n--- LIVE MARKET DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(marketContext)
	return sb.String()
}

// FormatMarketContext flattens the current signal and brief into the
// plain-text block injected into the system prompt.
func FormatMarketContext(result domain.SignalResult, b domain.Brief) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nComposite Score: %d/100 (%s)\n", result.CompositeScore, result.Sentiment)

	if len(result.Scores) > 0 {
		sb.WriteString("\nCategory Scores:\n")
		for _, category := range domain.Categories {
			cs, ok := result.Scores[category]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "  %s: %d/100\n", category, cs.Score)
			for _, m := range cs.Metrics {
				fmt.Fprintf(&sb, "    %s = %s (%s)\n", m.Label, m.Value, m.Signal)
			}
		}
	}

	if result.Leverage != nil {
		lev := result.Leverage
		fmt.Fprintf(&sb, "\nDerivatives: score %d, bias %s, funding %s, taker flow %s\n%s\n",
			lev.Score, lev.Bias, lev.FundingSignal, lev.TakerSignal, lev.Analysis)
	}

	if b.Headline != "" {
		fmt.Fprintf(&sb, "\nLatest Brief (%s):\n%s\n%s\n", b.Timestamp, b.Headline, b.TLDR)
		if len(b.KeyTakeaways) > 0 {
			sb.WriteString("Key takeaways:\n")
			for _, t := range b.KeyTakeaways {
				fmt.Fprintf(&sb, "  %s\n", t)
			}
		}
	}

	if sb.Len() == 0 {
		return "No market data currently available."
	}
	return sb.String()
}
