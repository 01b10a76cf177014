package falseshare

import "time"

// Timestamp is a single reading of the process monotonic clock.
type Timestamp struct {
	t time.Time
}

// Clock brackets benchmark runs with monotonic readings. The zero value is
// ready to use.
type Clock struct{}

// Now returns the current monotonic reading.
func (Clock) Now() Timestamp {
	return Timestamp{t: time.Now()}
}

// ElapsedMS returns end minus start in milliseconds. For readings taken in
// order it is never negative: both carry a monotonic component, so the
// difference is immune to wall-clock adjustments.
func (Clock) ElapsedMS(start, end Timestamp) float64 {
	return float64(end.t.Sub(start.t)) / float64(time.Millisecond)
}
