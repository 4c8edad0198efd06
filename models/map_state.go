package models

// MapState is the full in-memory UI state carried by the page URL: the
// selected city, the bucket partition, both tier filter groups, and the
// marker visibility toggles. It is the decoded form of the query string
// and the input to the filter evaluator.
type MapState struct {
	City      string              `json:"city"`
	Buckets   BucketModel         `json:"buckets"`
	Filters   FilterConfig        `json:"filters"`
	Locations LocationToggleState `json:"locations"`
}
