package codec

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"fm-server/config"
	"fm-server/models"
)

func TestFilterRoundTrip_AllValidStrings(t *testing.T) {
	// All 128 valid 7-bit strings must decode/encode losslessly.
	for mask := 0; mask < 1<<7; mask++ {
		raw := ""
		for i := 6; i >= 0; i-- {
			if mask&(1<<i) != 0 {
				raw += "1"
			} else {
				raw += "0"
			}
		}

		group, err := DecodeFilter(raw, FILTER_250K_QUERY_ARG)
		if err != nil {
			t.Fatalf("DecodeFilter(%q) returned error: %v", raw, err)
		}
		if got := EncodeFilter(group); got != raw {
			t.Errorf("round trip mismatch: %q -> %q", raw, got)
		}
	}
}

func TestDecodeFilter_Invalid(t *testing.T) {
	tests := []string{"", "111111", "11111100", "111a110", "1111112"}
	for _, raw := range tests {
		if _, err := DecodeFilter(raw, FILTER_250K_QUERY_ARG); err == nil {
			t.Errorf("expected error for %q, got none", raw)
		}
	}
}

func TestBucketsRoundTrip(t *testing.T) {
	raw := "1500A1250B1000C750D500E0F"

	buckets, err := DecodeBuckets(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Descending mins with derived maxes.
	assert.Equal(t, []int{1500, 1250, 1000, 750, 500, 0}, buckets.Mins())
	assert.True(t, buckets.Ranges[0].Unbounded)
	assert.Equal(t, 1499, buckets.Ranges[1].Max)
	assert.Equal(t, 499, buckets.Ranges[5].Max)

	assert.Equal(t, raw, EncodeBuckets(buckets))
}

func TestValidateBuckets_RejectsAscending(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"valid default", config.DEFAULT_BUCKETS_PARAM, true},
		{"ascending in middle", "2000A1800B999C1200D500E0F", false},
		{"equal adjacent", "1500A1500B1000C750D500E0F", false},
		{"wrong separators", "1500X1250B1000C750D500E0F", false},
		{"trailing garbage", "1500A1250B1000C750D500E0Fzz", false},
		{"negative disguised", "1500A1250B1000C750D500EF", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ValidateBuckets(test.raw); got != test.want {
				t.Errorf("ValidateBuckets(%q) = %v, want %v", test.raw, got, test.want)
			}
		})
	}
}

func TestValidateLocations_CrossConstraint(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"1000", true},
		{"1111", true},
		{"0000", true},
		{"1010", true},
		{"0010", false}, // preferred label on while preferred hidden
		{"0101", true},
		{"0001", false}, // other label on while other hidden
		{"100", false},
		{"10000", false},
		{"10a0", false},
	}
	for _, test := range tests {
		if got := ValidateLocations(test.raw); got != test.want {
			t.Errorf("ValidateLocations(%q) = %v, want %v", test.raw, got, test.want)
		}
	}
}

func TestLocationsRoundTrip(t *testing.T) {
	state, err := DecodeLocations("1101")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assert.Equal(t, models.LocationToggleState{
		PreferredVisible: true,
		OtherVisible:     true,
		PreferredLabels:  false,
		OtherLabels:      true,
	}, state)
	assert.Equal(t, "1101", EncodeLocations(state))
}

func TestDecodeQuery_SubstitutesDefaults(t *testing.T) {
	values := url.Values{}
	values.Set(CITY_QUERY_ARG, "minneapolis")
	values.Set(BUCKETS_QUERY_ARG, "2000A1800B999C1200D500E0F") // ascending -> invalid
	values.Set(LOCATIONS_QUERY_ARG, "0011")                   // labels without groups -> invalid
	values.Set(FILTER_250K_QUERY_ARG, "0000000")              // valid: group disabled

	state, canonical := DecodeQuery(values)

	// City passes through untouched.
	assert.Equal(t, "minneapolis", state.City)

	// Invalid params fall back to defaults and the canonical query is
	// rewritten accordingly.
	assert.Equal(t, models.DefaultBuckets(), state.Buckets)
	assert.Equal(t, config.DEFAULT_BUCKETS_PARAM, canonical.Get(BUCKETS_QUERY_ARG))
	assert.Equal(t, config.DEFAULT_LOCATIONS_PARAM, canonical.Get(LOCATIONS_QUERY_ARG))

	// Valid params survive.
	assert.False(t, state.Filters.Tier250.Enabled)
	assert.Equal(t, "0000000", canonical.Get(FILTER_250K_QUERY_ARG))

	// Absent params appear in the canonical query with their defaults.
	assert.Equal(t, config.DEFAULT_FILTER_500K_PARAM, canonical.Get(FILTER_500K_QUERY_ARG))
}

func TestDecodeQuery_EmptyQueryUsesAllDefaults(t *testing.T) {
	state, canonical := DecodeQuery(url.Values{})

	assert.Equal(t, "", state.City)
	assert.Equal(t, "", canonical.Get(CITY_QUERY_ARG))
	assert.Equal(t, models.DefaultBuckets(), state.Buckets)
	assert.True(t, state.Locations.PreferredVisible)
	assert.False(t, state.Locations.OtherVisible)
	assert.True(t, state.Filters.Tier500.Enabled)
	assert.True(t, state.Filters.Tier500.Checked[0])
	assert.False(t, state.Filters.Tier500.Checked[5])
}

func TestEncodeQuery_RoundTrip(t *testing.T) {
	values := url.Values{}
	values.Set(CITY_QUERY_ARG, "austin")
	values.Set(LOCATIONS_QUERY_ARG, "1111")
	values.Set(FILTER_250K_QUERY_ARG, "1010101")
	values.Set(FILTER_500K_QUERY_ARG, "0110011")
	values.Set(BUCKETS_QUERY_ARG, "900A800B700C600D500E0F")

	state, canonical := DecodeQuery(values)
	assert.Equal(t, values, canonical)

	// Encoding the decoded state reproduces the same query.
	assert.Equal(t, values, EncodeQuery(state))
}
