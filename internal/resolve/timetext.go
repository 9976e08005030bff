package resolve

import "time"

// Default layouts for TimeText.
const (
	DefaultClockLayout = "3:04 PM"
	DefaultDateLayout  = "Jan 2, 2006"
)

// Yesterday is rendered for timestamps between 24 and 48 hours old.
const Yesterday = "Yesterday"

// Formatter renders timestamps relative to now.
type Formatter struct {
	ClockLayout string
	DateLayout  string
	// Location the text is rendered in; nil means time.Local.
	Location *time.Location
}

// TimeText renders t relative to now: clock time under 24 hours (or in the
// future), "Yesterday" under 48 hours, the calendar date otherwise.
func (f Formatter) TimeText(t, now time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	clock, date := f.ClockLayout, f.DateLayout
	if clock == "" {
		clock = DefaultClockLayout
	}
	if date == "" {
		date = DefaultDateLayout
	}

	switch d := now.Sub(t); {
	case d < 24*time.Hour:
		return t.In(loc).Format(clock)
	case d < 48*time.Hour:
		return Yesterday
	default:
		return t.In(loc).Format(date)
	}
}

// TimeText is Formatter.TimeText with the default layouts.
func TimeText(t, now time.Time) string {
	return Formatter{}.TimeText(t, now)
}
