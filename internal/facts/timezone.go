package facts

import "time"

// Offset is the local timezone offset east of UTC
type Offset struct {
	InSeconds int `json:"in_seconds" yaml:"in_seconds"`
	InHours   int `json:"in_hours" yaml:"in_hours"`
}

// LocalTimezoneOffset returns the UTC offset in effect at now in now's location,
// including daylight saving time. InHours rounds toward negative infinity,
// so a -03:30 zone reports -4.
func LocalTimezoneOffset(now time.Time) Offset {
	_, secs := now.Zone()

	return Offset{
		InSeconds: secs,
		InHours:   floorDiv(secs, 3600),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
