package kernel

import "time"

// OperatingZone is the fixed-offset timezone the freight operation runs in.
// The business operates from a single region, so no DST or multi-zone
// handling is needed.
var OperatingZone = time.FixedZone("UTC-3", -3*60*60)

// DayWindow is a half-open time interval [From, To) expressed in UTC.
// It covers one local operating day, midnight to midnight.
type DayWindow struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// OperatingDayWindow returns the local midnight-to-midnight window containing
// ref, expressed in UTC.
func OperatingDayWindow(ref time.Time) DayWindow {
	local := ref.In(OperatingZone)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, OperatingZone)
	return DayWindow{
		From: start.UTC(),
		To:   start.AddDate(0, 0, 1).UTC(),
	}
}

// PreviousOperatingDayWindow returns the window for the operating day
// preceding ref, expressed in UTC. The expiry sweep uses it to select
// manifests left open past their operating day.
func PreviousOperatingDayWindow(ref time.Time) DayWindow {
	return OperatingDayWindow(ref.In(OperatingZone).AddDate(0, 0, -1))
}
