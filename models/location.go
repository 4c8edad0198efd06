package models

// Location marker groups, matching the KML style ids.
const (
	GROUP_PREFERRED = "preferred"
	GROUP_OTHER     = "other"
)

// LocationToggleState holds the two marker-group toggles plus their
// dependent label toggles. A label toggle can only be on while its
// group is visible; the codec rejects states violating that, it is
// never silently repaired downstream.
type LocationToggleState struct {
	PreferredVisible bool `json:"preferred_visible"`
	OtherVisible     bool `json:"other_visible"`
	PreferredLabels  bool `json:"preferred_labels"`
	OtherLabels      bool `json:"other_labels"`
}

// Valid reports whether the label/visibility invariants hold.
func (s LocationToggleState) Valid() bool {
	if s.PreferredLabels && !s.PreferredVisible {
		return false
	}
	if s.OtherLabels && !s.OtherVisible {
		return false
	}
	return true
}

// GroupVisible reports whether a marker group is shown.
func (s LocationToggleState) GroupVisible(group string) bool {
	if group == GROUP_PREFERRED {
		return s.PreferredVisible
	}
	return s.OtherVisible
}

// LabelsVisible reports whether a group's labels are shown.
func (s LocationToggleState) LabelsVisible(group string) bool {
	if group == GROUP_PREFERRED {
		return s.PreferredLabels
	}
	return s.OtherLabels
}

// LocationRecord is a single named point-of-interest marker parsed from
// the locations KML. Records are immutable; the list is rebuilt on load.
type LocationRecord struct {
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Group       string  `json:"group"`
}
