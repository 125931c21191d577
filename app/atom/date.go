package atom

import "time"

// DateLayout is the Atom date format used for timestamps, always in UTC.
const DateLayout = "2006-01-02T15:04:05Z"

// FormatDate returns d.Raw unchanged when set, otherwise d.Time in UTC as
// YYYY-MM-DDTHH:MM:SSZ.
func FormatDate(d Date) string {
	if d.Raw != "" {
		return d.Raw
	}
	return d.Time.UTC().Format(DateLayout)
}

// Latest returns the most recent of the given timestamps.
func Latest(times ...time.Time) time.Time {
	var latest time.Time
	for _, t := range times {
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}
