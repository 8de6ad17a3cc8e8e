package predictive

import "github.com/EchoCog/echograph/core/config"

const (
	minBeta  = 1.0
	maxBeta  = 15.0
	minAlpha = 0.5
	maxAlpha = 0.9
)

// AdaptiveTune nudges cfg.Beta and cfg.Alpha after each generation: high
// entropy (the distribution stayed flat) relaxes beta so the next
// generation explores more broadly, while a successful generation
// sharpens it and nudges alpha toward weighting frequency more heavily.
// Both are clamped to the ranges the original sampler tuned within.
func AdaptiveTune(cfg *config.Config, candidates []Candidate, success bool) {
	h := Entropy(candidates)

	if h > cfg.LeapEntropyThreshold {
		cfg.Beta -= 0.2
	} else if success {
		cfg.Beta += 0.2
	}
	cfg.Beta = clampf(cfg.Beta, minBeta, maxBeta)

	if success {
		cfg.Alpha += 0.01
	} else {
		cfg.Alpha -= 0.01
	}
	cfg.Alpha = clampf(cfg.Alpha, minAlpha, maxAlpha)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
