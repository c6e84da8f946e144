package domain

import "time"

// VotingWindow holds the instant after which no new votes are accepted.
// It is computed once at process start and never mutated; a restart resets
// the countdown.
type VotingWindow struct {
	Deadline time.Time
}

func NewVotingWindow(d time.Duration) VotingWindow {
	return VotingWindow{Deadline: time.Now().Add(d)}
}

// Open reports whether a vote cast at t is still within the window.
// The deadline instant itself is inclusive.
func (w VotingWindow) Open(t time.Time) bool {
	return !t.After(w.Deadline)
}

// Remaining returns the whole seconds left until the deadline, never negative.
func (w VotingWindow) Remaining(t time.Time) int64 {
	d := w.Deadline.Sub(t)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}
