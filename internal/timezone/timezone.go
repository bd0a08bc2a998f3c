package timezone

import (
	"sync"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Asia/Seoul"

var locations sync.Map // name -> *time.Location

func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if v, ok := locations.Load(tz); ok {
		return v.(*time.Location), true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	locations.Store(tz, loc)
	return loc, true
}

// IsValid reports whether tz names a known IANA zone.
func IsValid(tz string) bool {
	_, ok := load(tz)
	return ok
}

// Location returns tz, or the default zone when tz is unknown.
func Location(tz string) *time.Location {
	if loc, ok := load(tz); ok {
		return loc
	}
	loc, _ := load(DefaultTimezone)
	return loc
}

// Format renders t in tz using layout. The zero time renders as "".
func Format(t time.Time, tz, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location(tz)).Format(layout)
}
