// Package config loads the tunables named in spec §6, from defaults, the
// environment, or a YAML file — the three sources the teacher's
// cmd/deeptreeecho/main.go flag set and core/deeptreeecho config loaders
// both support.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config collects every tunable spec §6 names.
type Config struct {
	// LEAP creation policy.
	THSupport        float32 `yaml:"th_support"`
	THDiversity       int     `yaml:"th_diversity"`
	THMargin         float32 `yaml:"th_margin"`
	AbstainMargin    float32 `yaml:"abstain_margin"`
	LeapThreshold    float32 `yaml:"leap_threshold"`

	// Reinforcement & promotion.
	PromoteThreshold float32 `yaml:"promote_threshold"`
	MinSuccesses     int     `yaml:"min_successes"`
	Penalty          float32 `yaml:"penalty"`
	OverrideThreshold float32 `yaml:"override_threshold"`

	// Path scoring.
	Kappa float32 `yaml:"kappa"`
	Mu    float32 `yaml:"mu"`
	Sigma float32 `yaml:"sigma"`

	// Embedding bridge / leap bias.
	LambdaGraphBias       float32 `yaml:"lambda_graph_bias"`
	LeapEntropyThreshold  float32 `yaml:"leap_entropy_threshold"`
	LearningRateEmbeddings float32 `yaml:"learning_rate_embeddings"`

	// Feature flags.
	EnableLeapSystem      bool `yaml:"enable_leap_system"`
	EnableEmbeddingBridge bool `yaml:"enable_embedding_bridge"`
	ReasoningOnlyMode     bool `yaml:"reasoning_only_mode"`
	LogPredictions        bool `yaml:"log_predictions"`

	// Conflict arbitration scope (SPEC_FULL supplemented feature 4).
	ConflictScope ConflictScope `yaml:"conflict_scope"`

	// Predictive sampler.
	Alpha           float32 `yaml:"alpha"`            // freq vs similarity balance
	Beta            float32 `yaml:"beta"`             // softmax sharpness
	Gamma           float32 `yaml:"gamma"`             // relation-bias scale
	Epsilon         float32 `yaml:"epsilon"`          // score flooring
	NgramBonus      float32 `yaml:"ngram_bonus"`
	CtxWindow       int     `yaml:"ctx_window"`        // context window size, nodes
	BeamWidth       int     `yaml:"beam_width"`
	MaxHops         int     `yaml:"max_hops"`
	TopP            float32 `yaml:"top_p"`
	UseBeam         bool    `yaml:"use_beam"`
	AntiRepeatWindow int    `yaml:"anti_repeat_window"`
	SelfReinforceRate float32 `yaml:"self_reinforce_rate"`
}

// ConflictScope selects how broadly a new EXACT edge's conflict penalty
// is applied to existing LEAP edges out of the same subject.
type ConflictScope int

const (
	// ConflictScopeSubject penalizes every LEAP edge out of the subject,
	// regardless of connector — the original melvin source's behavior.
	ConflictScopeSubject ConflictScope = iota
	// ConflictScopeConnector penalizes only LEAP edges sharing the new
	// edge's connector — the stricter reading spec §9 flags as an open
	// question.
	ConflictScopeConnector
)

// Default returns the spec's documented defaults.
func Default() *Config {
	return &Config{
		THSupport:              3,
		THDiversity:            2,
		THMargin:               1.0,
		AbstainMargin:          1.0,
		LeapThreshold:          0.4,
		PromoteThreshold:       0.7,
		MinSuccesses:           3,
		Penalty:                1.0,
		OverrideThreshold:      8.0,
		Kappa:                  0.5,
		Mu:                     0.7,
		Sigma:                  0.2,
		LambdaGraphBias:        0.5,
		LeapEntropyThreshold:   0.6,
		LearningRateEmbeddings: 0.1,
		EnableLeapSystem:       true,
		EnableEmbeddingBridge:  true,
		ReasoningOnlyMode:      false,
		LogPredictions:         false,
		ConflictScope:          ConflictScopeSubject,

		Alpha:             0.7,
		Beta:              8.0,
		Gamma:             1.0,
		Epsilon:           1e-6,
		NgramBonus:        0.15,
		CtxWindow:         4,
		BeamWidth:         4,
		MaxHops:           24,
		TopP:              0.9,
		UseBeam:           true,
		AntiRepeatWindow:  10,
		SelfReinforceRate: 0.002,
	}
}

// FromEnv overlays os.Getenv values named in spec §6 onto Default().
func FromEnv() *Config {
	c := Default()
	overlayFloat(&c.THSupport, "TH_SUPPORT")
	overlayInt(&c.THDiversity, "TH_DIVERSITY")
	overlayFloat(&c.THMargin, "TH_MARGIN")
	overlayFloat(&c.AbstainMargin, "ABSTAIN_MARGIN")
	overlayFloat(&c.LeapThreshold, "LEAP_THRESHOLD")
	overlayFloat(&c.PromoteThreshold, "PROMOTE_THRESHOLD")
	overlayInt(&c.MinSuccesses, "MIN_SUCCESSES")
	overlayFloat(&c.Penalty, "PENALTY")
	overlayFloat(&c.OverrideThreshold, "OVERRIDE_THRESHOLD")
	overlayFloat(&c.Kappa, "KAPPA")
	overlayFloat(&c.Mu, "MU")
	overlayFloat(&c.Sigma, "SIGMA")
	overlayFloat(&c.LambdaGraphBias, "LAMBDA_GRAPH_BIAS")
	overlayFloat(&c.LeapEntropyThreshold, "LEAP_ENTROPY_THRESHOLD")
	overlayFloat(&c.LearningRateEmbeddings, "LEARNING_RATE_EMBEDDINGS")
	overlayBool(&c.EnableLeapSystem, "ENABLE_LEAP_SYSTEM")
	overlayBool(&c.EnableEmbeddingBridge, "ENABLE_EMBEDDING_BRIDGE")
	overlayBool(&c.ReasoningOnlyMode, "REASONING_ONLY_MODE")
	overlayBool(&c.LogPredictions, "LOG_PREDICTIONS")
	overlayFloat(&c.Alpha, "ALPHA")
	overlayFloat(&c.Beta, "BETA")
	overlayFloat(&c.Gamma, "GAMMA")
	overlayFloat(&c.TopP, "TOP_P")
	overlayInt(&c.BeamWidth, "BEAM_WIDTH")
	overlayInt(&c.MaxHops, "MAX_HOPS")
	overlayBool(&c.UseBeam, "USE_BEAM")
	return c
}

func overlayFloat(dst *float32, env string) {
	if v, ok := os.LookupEnv(env); ok {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			*dst = float32(f)
		}
	}
}

func overlayInt(dst *int, env string) {
	if v, ok := os.LookupEnv(env); ok {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func overlayBool(dst *bool, env string) {
	if v, ok := os.LookupEnv(env); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// FromYAML loads a config file, overlaying its values onto Default().
func FromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}
