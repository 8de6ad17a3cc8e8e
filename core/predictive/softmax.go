package predictive

import "math"

// Softmax turns candidate scores into a probability distribution in
// place, using cfg.Beta as the inverse-temperature sharpness.
func Softmax(candidates []Candidate, beta float32) {
	if len(candidates) == 0 {
		return
	}
	maxScore := candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	var sum float64
	exps := make([]float64, len(candidates))
	for i, c := range candidates {
		e := math.Exp(float64(beta * (c.Score - maxScore)))
		exps[i] = e
		sum += e
	}
	if sum == 0 {
		sum = 1
	}
	for i := range candidates {
		candidates[i].Prob = float32(exps[i] / sum)
	}
}

// Entropy computes the Shannon entropy (base e) of a scored, softmaxed
// candidate set — high entropy signals the distribution is flat and the
// sampler is uncertain, the trigger AutoTune and the LeapController both
// watch for.
func Entropy(candidates []Candidate) float32 {
	var h float64
	for _, c := range candidates {
		if c.Prob <= 0 {
			continue
		}
		p := float64(c.Prob)
		h -= p * math.Log(p)
	}
	return float32(h)
}
