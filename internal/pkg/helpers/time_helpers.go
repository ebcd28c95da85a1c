package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// koreaStandardTime is used when the tz database is not available on the host
var koreaStandardTime = time.FixedZone("KST", 9*60*60)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// LoadLocation resolves a timezone name, falling back to KST.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil || name == "" {
		log.Warn().Err(err).Str("timezone", name).Msg("Failed to load timezone, using KST")
		return koreaStandardTime
	}
	return loc
}

// FormatDisplayTime renders t the way the Korean locale prints a date with a
// 12-hour clock, e.g. "2024. 05. 01. 오후 03:04". A zero time yields "".
func FormatDisplayTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = koreaStandardTime
	}
	t = t.In(loc)

	period := "오전"
	if t.Hour() >= 12 {
		period = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%04d. %02d. %02d. %s %02d:%02d", t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute())
}
