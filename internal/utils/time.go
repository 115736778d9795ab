package utils

import "time"

// NextDayAt returns hour o'clock on the calendar day after t, in t's
// location. The duty rules are wall-clock rules, so no UTC normalization.
func NextDayAt(t time.Time, hour int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+1, hour, 0, 0, 0, t.Location())
}

// ManualDeactivationCutoff is the earliest instant a caller may deactivate a
// unit activated at activatedAt.
func ManualDeactivationCutoff(activatedAt time.Time) time.Time {
	return NextDayAt(activatedAt, ManualDeactivationHour)
}

// SweepDeactivationCutoff is the instant from which the daily sweep will
// force the unit off duty.
func SweepDeactivationCutoff(activatedAt time.Time) time.Time {
	return NextDayAt(activatedAt, SweepDeactivationHour)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999999999, t.Location())
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}
