package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var current atomic.Value

func init() {
	current.Store(load(DefaultTimezone))
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault swaps the business timezone. Invalid names are ignored.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	current.Store(load(tz))
	return true
}

// Location returns the business timezone every date and time is read in.
func Location() *time.Location {
	return current.Load().(*time.Location)
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location())
}

func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, Location())
}

func load(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	return time.UTC
}
