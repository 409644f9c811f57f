package appointment

import (
	"time"
)

const SlotLayout = "15:04"

// BusinessHours is the daily booking grid: one slot every Step from
// FirstSlot up to and including LastSlot. It does not vary by weekday.
type BusinessHours struct {
	FirstSlot time.Duration
	LastSlot  time.Duration
	Step      time.Duration
}

var DefaultBusinessHours = BusinessHours{
	FirstSlot: 9 * time.Hour,
	LastSlot:  18*time.Hour + 30*time.Minute,
	Step:      30 * time.Minute,
}

// Slots lists the grid labels in order ("09:00", "09:30", ...).
func (h BusinessHours) Slots() []string {
	if h.Step <= 0 || h.LastSlot < h.FirstSlot {
		return nil
	}

	out := make([]string, 0, int((h.LastSlot-h.FirstSlot)/h.Step)+1)
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for off := h.FirstSlot; off <= h.LastSlot; off += h.Step {
		out = append(out, base.Add(off).Format(SlotLayout))
	}
	return out
}

// Contains reports whether label is one of the grid slots.
func (h BusinessHours) Contains(label string) bool {
	t, err := time.Parse(SlotLayout, label)
	if err != nil || h.Step <= 0 {
		return false
	}
	off := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	if off < h.FirstSlot || off > h.LastSlot {
		return false
	}
	return (off-h.FirstSlot)%h.Step == 0
}

// GenerateSlots is the default 09:00–18:30 half-hour grid.
func GenerateSlots() []string {
	return DefaultBusinessHours.Slots()
}

// SlotLabel formats t as a time-of-day slot label in t's location.
func SlotLabel(t time.Time) string {
	return t.Format(SlotLayout)
}

// FreeSlots removes every candidate whose label appears in occupied.
// The result keeps the candidate order.
func FreeSlots(candidates []string, occupied []string) []string {
	taken := make(map[string]struct{}, len(occupied))
	for _, o := range occupied {
		taken[o] = struct{}{}
	}

	free := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c]; !ok {
			free = append(free, c)
		}
	}
	return free
}
