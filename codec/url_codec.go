package codec

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"

	"fm-server/config"
	"fm-server/models"
)

// Query parameter names. All parameters are optional and independently
// fall back to their configured default when validation fails.
const (
	CITY_QUERY_ARG        = "city"
	LOCATIONS_QUERY_ARG   = "locations"
	FILTER_250K_QUERY_ARG = "filter250k"
	FILTER_500K_QUERY_ARG = "filter500k"
	BUCKETS_QUERY_ARG     = "buckets"
)

// bucketsPattern captures the six bucket minimums of the buckets
// parameter, e.g. 1500A1250B1000C750D500E0F.
var bucketsPattern = regexp.MustCompile(`^(\d+)A(\d+)B(\d+)C(\d+)D(\d+)E(\d+)F$`)

// ValidateLocations checks the 4-bit locations string:
// preferred, other, preferredLabel, otherLabel. A label bit cannot be 1
// while its paired visibility bit is 0.
func ValidateLocations(raw string) bool {
	if len(raw) != 4 || !isBinary(raw) {
		return false
	}
	return toggleState(raw).Valid()
}

// DecodeLocations parses a validated locations string into toggle state.
func DecodeLocations(raw string) (models.LocationToggleState, error) {
	if !ValidateLocations(raw) {
		return models.LocationToggleState{}, formatError(LOCATIONS_QUERY_ARG, raw)
	}
	return toggleState(raw), nil
}

func toggleState(raw string) models.LocationToggleState {
	return models.LocationToggleState{
		PreferredVisible: raw[0] == '1',
		OtherVisible:     raw[1] == '1',
		PreferredLabels:  raw[2] == '1',
		OtherLabels:      raw[3] == '1',
	}
}

// EncodeLocations renders toggle state as the 4-bit locations string.
func EncodeLocations(s models.LocationToggleState) string {
	return bit(s.PreferredVisible) + bit(s.OtherVisible) +
		bit(s.PreferredLabels) + bit(s.OtherLabels)
}

// ValidateFilter checks a 7-bit filter string: position 0 is the group
// enabled bit, positions 1-6 the per-bucket checked bits in bucket
// order (highest bucket first).
func ValidateFilter(raw string) bool {
	return len(raw) == 7 && isBinary(raw)
}

// DecodeFilter parses a validated filter string into a group.
func DecodeFilter(raw string, param string) (models.FilterGroup, error) {
	if !ValidateFilter(raw) {
		return models.FilterGroup{}, formatError(param, raw)
	}
	group := models.FilterGroup{Enabled: raw[0] == '1'}
	for i := 0; i < models.BUCKET_COUNT; i++ {
		group.Checked[i] = raw[i+1] == '1'
	}
	return group, nil
}

// EncodeFilter renders a group as its 7-bit filter string.
func EncodeFilter(g models.FilterGroup) string {
	out := bit(g.Enabled)
	for _, checked := range g.Checked {
		out += bit(checked)
	}
	return out
}

// ValidateBuckets checks the buckets grammar and that the captured
// minimums are strictly descending.
func ValidateBuckets(raw string) bool {
	mins, err := bucketMins(raw)
	if err != nil {
		return false
	}
	for i := 0; i < len(mins)-1; i++ {
		if mins[i] <= mins[i+1] {
			return false
		}
	}
	return true
}

// DecodeBuckets parses a validated buckets string into a bucket model.
func DecodeBuckets(raw string) (models.BucketModel, error) {
	if !ValidateBuckets(raw) {
		return models.BucketModel{}, formatError(BUCKETS_QUERY_ARG, raw)
	}
	mins, err := bucketMins(raw)
	if err != nil {
		return models.BucketModel{}, err
	}
	return models.DecodeBucketMins(mins)
}

// EncodeBuckets renders a bucket model as its buckets string.
func EncodeBuckets(b models.BucketModel) string {
	mins := b.Mins()
	return fmt.Sprintf("%dA%dB%dC%dD%dE%dF",
		mins[0], mins[1], mins[2], mins[3], mins[4], mins[5])
}

// DecodeQuery decodes the full query string into a MapState. Every
// parameter that is absent or fails validation is substituted with its
// default; the second return value is the canonical query the page
// should rewrite the address bar to. City is passed through unvalidated
// beyond presence.
func DecodeQuery(values url.Values) (models.MapState, url.Values) {
	state := models.MapState{City: values.Get(CITY_QUERY_ARG)}

	state.Locations, _ = DecodeLocations(
		rawOrDefault(values, LOCATIONS_QUERY_ARG, config.DEFAULT_LOCATIONS_PARAM, ValidateLocations))
	state.Filters.Tier250, _ = DecodeFilter(
		rawOrDefault(values, FILTER_250K_QUERY_ARG, config.DEFAULT_FILTER_250K_PARAM, ValidateFilter),
		FILTER_250K_QUERY_ARG)
	state.Filters.Tier500, _ = DecodeFilter(
		rawOrDefault(values, FILTER_500K_QUERY_ARG, config.DEFAULT_FILTER_500K_PARAM, ValidateFilter),
		FILTER_500K_QUERY_ARG)
	state.Buckets, _ = DecodeBuckets(
		rawOrDefault(values, BUCKETS_QUERY_ARG, config.DEFAULT_BUCKETS_PARAM, ValidateBuckets))

	return state, EncodeQuery(state)
}

// EncodeQuery renders a MapState as its canonical query values. City is
// omitted when empty.
func EncodeQuery(state models.MapState) url.Values {
	values := url.Values{}
	if state.City != "" {
		values.Set(CITY_QUERY_ARG, state.City)
	}
	values.Set(LOCATIONS_QUERY_ARG, EncodeLocations(state.Locations))
	values.Set(FILTER_250K_QUERY_ARG, EncodeFilter(state.Filters.Tier250))
	values.Set(FILTER_500K_QUERY_ARG, EncodeFilter(state.Filters.Tier500))
	values.Set(BUCKETS_QUERY_ARG, EncodeBuckets(state.Buckets))
	return values
}

// rawOrDefault returns the parameter's raw value when it validates,
// otherwise the default. Substitutions on present-but-invalid values
// are logged; absence is silent.
func rawOrDefault(values url.Values, param, def string, valid func(string) bool) string {
	raw := values.Get(param)
	if raw == "" {
		return def
	}
	if !valid(raw) {
		log.Printf("[URLCodec] Invalid %s=%q, substituting default %q", param, raw, def)
		return def
	}
	return raw
}

func bucketMins(raw string) ([]int, error) {
	match := bucketsPattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, formatError(BUCKETS_QUERY_ARG, raw)
	}
	mins := make([]int, models.BUCKET_COUNT)
	for i := 0; i < models.BUCKET_COUNT; i++ {
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return nil, formatError(BUCKETS_QUERY_ARG, raw)
		}
		mins[i] = n
	}
	return mins, nil
}

func isBinary(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '0' && raw[i] != '1' {
			return false
		}
	}
	return true
}

func bit(on bool) string {
	if on {
		return "1"
	}
	return "0"
}

func formatError(param, raw string) *models.FormatError {
	return &models.FormatError{Param: param, Raw: raw, Reason: "does not match grammar"}
}
