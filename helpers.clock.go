package main

import (
	"fmt"
	"time"
)

var _ Clocker = (*Clock)(nil)

// Clocker provides the current time. Books are stamped with
// the date of that time when added.
type Clocker interface {
	Now() time.Time
}

// Clock is a Clocker bound to a timezone.
type Clock struct {
	tz *time.Location
}

// NewClock returns a Clock reporting time in the given location.
// The `date_added` of new books follows the calendar of that location.
func NewClock(tz *time.Location) *Clock {
	if tz == nil {
		tz = time.UTC
	}
	return &Clock{tz}
}

// ClockLocation resolves the configured timezone. Without one, it
// uses UTC in production and the host local zone otherwise.
func ClockLocation(config *Config) (*time.Location, error) {
	if config.Timezone == "" {
		if config.IsProduction {
			return time.UTC, nil
		}
		return time.Local, nil
	}
	tz, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %v", config.Timezone, err)
	}
	return tz, nil
}

func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}
