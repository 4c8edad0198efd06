package services

import (
	"fm-server/config"
	"fm-server/models"
)

// FilterEvaluator turns a filter configuration into per-feature colors.
// It is pure: callers collect the colors for a whole feature set and
// push them to the map client as one declarative rule set.
type FilterEvaluator struct{}

func NewFilterEvaluator() *FilterEvaluator {
	return &FilterEvaluator{}
}

// BuildPriorityRules concatenates the active rules of both tiers, 500k
// first. 500k status always dominates 250k when both would match, and
// within a tier bucket order is the tie-break.
func (e *FilterEvaluator) BuildPriorityRules(cfg models.FilterConfig, buckets models.BucketModel) []models.FilterRule {
	rules := cfg.CollectActive(models.Tier500k, buckets)
	return append(rules, cfg.CollectActive(models.Tier250k, buckets)...)
}

// ColorFor evaluates rules in priority order against a feature and
// returns the first matching rule's color, or the transparent fill when
// nothing matches. A rule matches when the feature's count for the
// rule's tier is strictly positive and within [min, max] inclusive.
func (e *FilterEvaluator) ColorFor(f models.Feature, rules []models.FilterRule) string {
	for _, rule := range rules {
		count := f.Kids250k
		if rule.Tier == models.Tier500k {
			count = f.Kids500k
		}
		if count > 0 && count >= rule.Min && count <= rule.Max {
			return rule.Color
		}
	}
	return config.COLOR_TRANSPARENT
}

// ColorAll returns the fills for a feature slice, parallel to features.
func (e *FilterEvaluator) ColorAll(features []models.Feature, cfg models.FilterConfig, buckets models.BucketModel) []string {
	rules := e.BuildPriorityRules(cfg, buckets)
	fills := make([]string, len(features))
	for i, f := range features {
		fills[i] = e.ColorFor(f, rules)
	}
	return fills
}
