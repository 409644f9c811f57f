package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlotsDefaultGrid(t *testing.T) {
	slots := GenerateSlots()

	assert.Len(t, slots, 20)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "18:30", slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestBusinessHoursCustomGrid(t *testing.T) {
	h := BusinessHours{FirstSlot: 10 * time.Hour, LastSlot: 11 * time.Hour, Step: 20 * time.Minute}
	assert.Equal(t, []string{"10:00", "10:20", "10:40", "11:00"}, h.Slots())

	assert.Nil(t, BusinessHours{FirstSlot: time.Hour, LastSlot: 0, Step: time.Minute}.Slots())
	assert.Nil(t, BusinessHours{Step: 0}.Slots())
}

func TestFreeSlots(t *testing.T) {
	all := GenerateSlots()

	free := FreeSlots(all, []string{"09:00", "12:30", "23:00"})
	assert.Len(t, free, 18)
	assert.NotContains(t, free, "09:00")
	assert.NotContains(t, free, "12:30")
	assert.Equal(t, "09:30", free[0])

	assert.Equal(t, all, FreeSlots(all, nil))
}

func TestSlotLabelUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ts := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC).In(loc)
	assert.Equal(t, "09:00", SlotLabel(ts))
}

func TestBusinessHoursContains(t *testing.T) {
	h := DefaultBusinessHours

	for _, label := range h.Slots() {
		assert.True(t, h.Contains(label), label)
	}
	for _, label := range []string{"08:30", "09:17", "09:01", "19:00", "23:00", "9h", ""} {
		assert.False(t, h.Contains(label), label)
	}
}
