package signal

import (
	"math"

	"the-signal/internal/domain"
)

// neutralComposite is the documented fallback when no category has data.
const neutralComposite = 50

// CompositeScore is the canonical composite: the unweighted mean of all
// present category scores. Absent categories never enter the denominator.
func CompositeScore(scores map[domain.Category]domain.CategoryScore) int {
	if len(scores) == 0 {
		return neutralComposite
	}
	sum := 0
	for _, cs := range scores {
		sum += cs.Score
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// weightedScoreWeights is the hand-tuned alternative weighting. Categories
// without a tuned weight fall back to defaultCategoryWeight.
var weightedScoreWeights = map[domain.Category]float64{
	domain.CategorySentiment: 0.20,
	domain.CategoryOnchain:   0.18,
	domain.CategoryYields:    0.10,
	domain.CategoryMacro:     0.15,
}

const defaultCategoryWeight = 0.15

// WeightedCompositeScore is the tuned variant of the composite. The
// denominator is the sum of weights actually used, so missing categories
// renormalize the rest instead of dragging the score toward zero.
func WeightedCompositeScore(scores map[domain.Category]domain.CategoryScore) int {
	if len(scores) == 0 {
		return neutralComposite
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, category := range domain.Categories {
		cs, ok := scores[category]
		if !ok {
			continue
		}
		w, ok := weightedScoreWeights[category]
		if !ok {
			w = defaultCategoryWeight
		}
		weightedSum += float64(cs.Score) * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return neutralComposite
	}
	return int(math.Round(weightedSum / totalWeight))
}
