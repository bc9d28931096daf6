package heuristic

import "math"

const (
	noClaimsScore      = 0.5
	trustedModifier    = 0.10
	untrustedModifier  = -0.05
	consistencyBonus   = 0.05
	varianceThreshold  = 0.05
	qualityBonus       = 0.05
	qualityScoreFloor  = 0.7
	qualityShareNeeded = 0.6
)

// AggregateScore combines per-claim scores into one overall page score in
// [0,1], rounded to two decimals. Zero claims means the page cannot be
// assessed and scores exactly 0.5 with no adjustments.
func AggregateScore(claims []VerifiedClaim, domainTrustedAnywhere bool) float64 {
	if len(claims) == 0 {
		return noClaimsScore
	}

	score := weightedMean(claims)

	if domainTrustedAnywhere {
		score += trustedModifier
	} else {
		score += untrustedModifier
	}

	scores := make([]float64, len(claims))
	for i, c := range claims {
		scores[i] = c.Score
	}
	if Variance(scores) < varianceThreshold {
		score += consistencyBonus
	}

	var highQuality int
	for _, c := range claims {
		if c.Score >= qualityScoreFloor {
			highQuality++
		}
	}
	if float64(highQuality) >= qualityShareNeeded*float64(len(claims)) {
		score += qualityBonus
	}

	return math.Round(clampUnit(score)*100) / 100
}

// weightedMean weighs each claim's score by its extraction confidence,
// falling back to a plain mean when no claim carries a weight
func weightedMean(claims []VerifiedClaim) float64 {
	var sum, weightSum float64
	for _, c := range claims {
		sum += c.Score * c.Confidence
		weightSum += c.Confidence
	}
	if weightSum == 0 {
		sum = 0
		for _, c := range claims {
			sum += c.Score
		}
		return sum / float64(len(claims))
	}
	return sum / weightSum
}

// Variance is the population variance; empty and singleton lists have none
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}
