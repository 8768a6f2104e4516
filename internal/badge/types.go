package badge

import (
	"strconv"

	"campus-notify/internal/event"
)

// DisplayCeiling is the largest count shown verbatim; anything above renders
// as OverflowText. The underlying count stays exact.
const DisplayCeiling = 99

// OverflowText is displayed when the total exceeds DisplayCeiling.
const OverflowText = "99+"

// State is the displayed badge state derived from the last applied counts.
type State struct {
	Total  int
	ByType map[event.Type]int
}

// Text returns the badge text: the total, capped for display.
func (s State) Text() string {
	if s.Total > DisplayCeiling {
		return OverflowText
	}
	return strconv.Itoa(s.Total)
}

// Visible reports whether the badge should be shown at all.
func (s State) Visible() bool {
	return s.Total > 0
}

// Of returns the per-type count, treating absence as zero.
func (s State) Of(t event.Type) int {
	if s.ByType == nil {
		return 0
	}
	return s.ByType[t]
}
