package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fm-server/codec"
	"fm-server/config"
	"fm-server/models"
)

// defaultState mirrors what the codec produces for an empty query.
func defaultFilters(t *testing.T) models.FilterConfig {
	t.Helper()
	var cfg models.FilterConfig
	var err error
	cfg.Tier250, err = codec.DecodeFilter(config.DEFAULT_FILTER_250K_PARAM, "filter250k")
	if err != nil {
		t.Fatalf("failed to decode default 250k filter: %v", err)
	}
	cfg.Tier500, err = codec.DecodeFilter(config.DEFAULT_FILTER_500K_PARAM, "filter500k")
	if err != nil {
		t.Fatalf("failed to decode default 500k filter: %v", err)
	}
	return cfg
}

func TestBuildPriorityRules_500kFirst(t *testing.T) {
	evaluator := NewFilterEvaluator()
	rules := evaluator.BuildPriorityRules(defaultFilters(t), models.DefaultBuckets())

	// Default filters check five buckets per tier; 500k rules lead.
	if len(rules) != 10 {
		t.Fatalf("expected 10 rules, got %d", len(rules))
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, models.Tier500k, rules[i].Tier, "rule %d", i)
	}
	for i := 5; i < 10; i++ {
		assert.Equal(t, models.Tier250k, rules[i].Tier, "rule %d", i)
	}
}

func TestColorFor_500kDominates(t *testing.T) {
	evaluator := NewFilterEvaluator()
	rules := evaluator.BuildPriorityRules(defaultFilters(t), models.DefaultBuckets())

	// Both tiers would match; 500k is evaluated first and 1600 falls in
	// the 1500+ bucket.
	feature := models.Feature{Kids500k: 1600, Kids250k: 100}
	assert.Equal(t, config.TIER_500K_COLORS[0], evaluator.ColorFor(feature, rules))
}

func TestColorFor_FallsThroughTo250k(t *testing.T) {
	evaluator := NewFilterEvaluator()
	rules := evaluator.BuildPriorityRules(defaultFilters(t), models.DefaultBuckets())

	// 500k count of 0 never matches; 600 lands in the 500-750 bucket of
	// the 250k tier.
	feature := models.Feature{Kids500k: 0, Kids250k: 600}
	assert.Equal(t, config.TIER_250K_COLORS[4], evaluator.ColorFor(feature, rules))
}

func TestColorFor_ZeroCountsAreTransparent(t *testing.T) {
	evaluator := NewFilterEvaluator()
	rules := evaluator.BuildPriorityRules(defaultFilters(t), models.DefaultBuckets())

	feature := models.Feature{Kids500k: 0, Kids250k: 0}
	assert.Equal(t, config.COLOR_TRANSPARENT, evaluator.ColorFor(feature, rules))
}

func TestColorFor_BoundsAreInclusive(t *testing.T) {
	evaluator := NewFilterEvaluator()
	cfg := defaultFilters(t)
	buckets := models.DefaultBuckets()
	rules := evaluator.BuildPriorityRules(cfg, buckets)

	// 500-750 bucket of the 250k tier spans [500, 749].
	assert.Equal(t, config.TIER_250K_COLORS[4],
		evaluator.ColorFor(models.Feature{Kids250k: 500}, rules))
	assert.Equal(t, config.TIER_250K_COLORS[4],
		evaluator.ColorFor(models.Feature{Kids250k: 749}, rules))
	assert.Equal(t, config.TIER_250K_COLORS[3],
		evaluator.ColorFor(models.Feature{Kids250k: 750}, rules))
}

func TestColorFor_NoActiveRules(t *testing.T) {
	evaluator := NewFilterEvaluator()

	feature := models.Feature{Kids500k: 1600, Kids250k: 600}
	assert.Equal(t, config.COLOR_TRANSPARENT, evaluator.ColorFor(feature, nil))
}

func TestColorAll_ParallelToFeatures(t *testing.T) {
	evaluator := NewFilterEvaluator()
	features := []models.Feature{
		{Kids500k: 1600},
		{Kids250k: 600},
		{},
	}

	fills := evaluator.ColorAll(features, defaultFilters(t), models.DefaultBuckets())

	assert.Equal(t, []string{
		config.TIER_500K_COLORS[0],
		config.TIER_250K_COLORS[4],
		config.COLOR_TRANSPARENT,
	}, fills)
}
