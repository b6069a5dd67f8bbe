package model

import "time"

// Window is a named look-back period.
type Window struct {
	Label    string
	Lookback time.Duration
}

const (
	Window5m  = "5m"
	Window1h  = "1h"
	Window24h = "24h"
)

// Windows lists the evaluated look-back periods in evaluation order.
var Windows = []Window{
	{Label: Window5m, Lookback: 5 * time.Minute},
	{Label: Window1h, Lookback: 60 * time.Minute},
	{Label: Window24h, Lookback: 1440 * time.Minute},
}

// WindowDelta is the change between the current snapshot and the closest past one.
type WindowDelta struct {
	Label     string    `json:"label"`
	ChangePct float64   `json:"change_pct"`
	ChangeUSD float64   `json:"change_usd"`
	PastAt    time.Time `json:"past_at"`
}

// WindowDeltas holds one optional delta per window label.
type WindowDeltas struct {
	FiveMin *WindowDelta `json:"5m,omitempty"`
	OneHour *WindowDelta `json:"1h,omitempty"`
	OneDay  *WindowDelta `json:"24h,omitempty"`
}

// Get returns the delta for label, or nil when absent.
func (d WindowDeltas) Get(label string) *WindowDelta {
	switch label {
	case Window5m:
		return d.FiveMin
	case Window1h:
		return d.OneHour
	case Window24h:
		return d.OneDay
	default:
		return nil
	}
}

// Set stores delta under its label. Unknown labels are ignored.
func (d *WindowDeltas) Set(delta WindowDelta) {
	switch delta.Label {
	case Window5m:
		d.FiveMin = &delta
	case Window1h:
		d.OneHour = &delta
	case Window24h:
		d.OneDay = &delta
	}
}

// Present returns the deltas that exist, in 5m, 1h, 24h order.
func (d WindowDeltas) Present() []WindowDelta {
	out := make([]WindowDelta, 0, 3)
	for _, w := range Windows {
		if delta := d.Get(w.Label); delta != nil {
			out = append(out, *delta)
		}
	}
	return out
}

// Empty reports whether no window produced a delta.
func (d WindowDeltas) Empty() bool {
	return d.FiveMin == nil && d.OneHour == nil && d.OneDay == nil
}
