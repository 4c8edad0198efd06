package models

import "fm-server/config"

// Tier is one of the two household-income thresholds gating a rule set.
type Tier string

const (
	Tier250k Tier = "250k"
	Tier500k Tier = "500k"
)

// FilterRule is a single (range, color) pair the evaluator can match a
// feature's count against. Max carries UNBOUNDED_COUNT_MAX for the open
// top bucket.
type FilterRule struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color"`
	Tier  Tier   `json:"tier"`
}

// FilterGroup is one tier's enable switch plus the six per-bucket
// checkboxes, in bucket order (highest range first). Checked state is
// kept while the group is disabled, so re-enabling restores it.
type FilterGroup struct {
	Enabled bool               `json:"enabled"`
	Checked [BUCKET_COUNT]bool `json:"checked"`
}

// FilterConfig holds both tier groups.
type FilterConfig struct {
	Tier250 FilterGroup `json:"tier_250k"`
	Tier500 FilterGroup `json:"tier_500k"`
}

// Group returns the group for a tier.
func (c FilterConfig) Group(tier Tier) FilterGroup {
	if tier == Tier500k {
		return c.Tier500
	}
	return c.Tier250
}

// CollectActive returns the ordered rules for a tier that are both
// group-enabled and individually checked. Rule bounds come from the
// bucket model, colors from the tier palette, order from bucket order.
func (c FilterConfig) CollectActive(tier Tier, buckets BucketModel) []FilterRule {
	group := c.Group(tier)
	if !group.Enabled {
		return nil
	}

	var rules []FilterRule
	for i, r := range buckets.Ranges {
		if !group.Checked[i] {
			continue
		}
		rules = append(rules, FilterRule{
			Min:   r.Min,
			Max:   r.Max,
			Color: tierColor(tier, i),
			Tier:  tier,
		})
	}
	return rules
}

// IsEmpty is true when the tier contributes no rules: group disabled or
// nothing checked.
func (c FilterConfig) IsEmpty(tier Tier) bool {
	group := c.Group(tier)
	if !group.Enabled {
		return true
	}
	for _, checked := range group.Checked {
		if checked {
			return false
		}
	}
	return true
}

func tierColor(tier Tier, bucket int) string {
	if tier == Tier500k {
		return config.TIER_500K_COLORS[bucket]
	}
	return config.TIER_250K_COLORS[bucket]
}
