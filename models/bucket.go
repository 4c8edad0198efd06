package models

import "fmt"

// BUCKET_COUNT is fixed: every bucket model carries exactly six ranges.
const BUCKET_COUNT = 6

// UNBOUNDED_COUNT_MAX stands in for an open upper bound on the top bucket.
const UNBOUNDED_COUNT_MAX = 1<<31 - 1

// BucketRange is a single child-count range. Min is inclusive; Max is
// inclusive when bounded. Only the first range of a model is unbounded.
type BucketRange struct {
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Unbounded bool   `json:"unbounded"`
	Label     string `json:"label"`
}

// BucketModel is the ordered set of six income-bucket ranges, highest
// minimum first. It is the source of truth for mapping raw counts to
// bucket labels and for the buckets URL parameter.
type BucketModel struct {
	Ranges [BUCKET_COUNT]BucketRange `json:"ranges"`
}

// DecodeBucketMins builds a model from six descending minimums. Each
// range's max derives from the previous range's min; range 0 is open.
func DecodeBucketMins(mins []int) (BucketModel, error) {
	if len(mins) != BUCKET_COUNT {
		return BucketModel{}, &FormatError{
			Param:  "buckets",
			Raw:    fmt.Sprintf("%v", mins),
			Reason: fmt.Sprintf("expected %d minimums, got %d", BUCKET_COUNT, len(mins)),
		}
	}

	var b BucketModel
	for i, min := range mins {
		b.Ranges[i].Min = min
		if i == 0 {
			b.Ranges[i].Unbounded = true
			b.Ranges[i].Max = UNBOUNDED_COUNT_MAX
		} else {
			b.Ranges[i].Max = mins[i-1] - 1
		}
	}
	b.refreshLabels()
	return b, nil
}

// DefaultBuckets returns the fixed built-in six ranges:
// 1500+, 1250-1500, 1000-1250, 750-1000, 500-750, 0-500.
func DefaultBuckets() BucketModel {
	b, _ := DecodeBucketMins([]int{1500, 1250, 1000, 750, 500, 0})
	return b
}

// SetMin sets the minimum at index and cascades downward: the next lower
// bucket's max becomes value-1. Min edits never touch the bucket above.
func (b *BucketModel) SetMin(index, value int) {
	b.Ranges[index].Min = value
	if index < BUCKET_COUNT-1 {
		b.Ranges[index+1].Max = value - 1
	}
	b.refreshLabels()
}

// SetMax sets the maximum at index (1..5; the top bucket has no max) and
// cascades upward: the bucket above gets min = value+1.
func (b *BucketModel) SetMax(index, value int) {
	if index == 0 {
		return
	}
	b.Ranges[index].Max = value
	b.Ranges[index-1].Min = value + 1
	b.refreshLabels()
}

// Validate returns the ordered list of range violations. Violations are
// user-facing feedback, not a hard blocker; callers decide whether a
// model with warnings is still applied.
func (b BucketModel) Validate() []ValidationWarning {
	var warnings []ValidationWarning
	for i := 0; i < BUCKET_COUNT-1; i++ {
		if b.Ranges[i].Min <= b.Ranges[i+1].Max {
			warnings = append(warnings, ValidationWarning{
				Index:   i,
				Field:   "min",
				Message: fmt.Sprintf("must exceed bucket %d max (%d)", i+1, b.Ranges[i+1].Max),
			})
		}
	}
	for i := 1; i < BUCKET_COUNT; i++ {
		if b.Ranges[i].Min >= b.Ranges[i].Max {
			warnings = append(warnings, ValidationWarning{
				Index:   i,
				Field:   "max",
				Message: fmt.Sprintf("must exceed min (%d)", b.Ranges[i].Min),
			})
		}
	}
	return warnings
}

// Mins returns the six minimums in bucket order, for URL encoding.
func (b BucketModel) Mins() []int {
	mins := make([]int, BUCKET_COUNT)
	for i, r := range b.Ranges {
		mins[i] = r.Min
	}
	return mins
}

// refreshLabels regenerates display labels. The label's upper figure is
// the next higher bucket's minimum, matching the original display style
// (1250-1500 rather than 1250-1499).
func (b *BucketModel) refreshLabels() {
	for i := range b.Ranges {
		if i == 0 {
			b.Ranges[i].Label = fmt.Sprintf("%d+", b.Ranges[i].Min)
		} else {
			b.Ranges[i].Label = fmt.Sprintf("%d-%d", b.Ranges[i].Min, b.Ranges[i-1].Min)
		}
	}
}
