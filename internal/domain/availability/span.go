package availability

import (
	"errors"
	"time"
)

var (
	ErrInvalidSpan = errors.New("span end must be after start")
	ErrConflict    = errors.New("range overlaps an existing reservation or blocked day")
)

// Span is a half-open interval [start, end).
type Span struct {
	start time.Time
	end   time.Time
}

func NewSpan(start, end time.Time) (Span, error) {
	if !end.After(start) {
		return Span{}, ErrInvalidSpan
	}
	return Span{start: start.UTC(), end: end.UTC()}, nil
}

func (s Span) Start() time.Time { return s.start }
func (s Span) End() time.Time   { return s.end }

// Overlaps treats touching endpoints as disjoint.
func (s Span) Overlaps(o Span) bool {
	return s.start.Before(o.end) && o.start.Before(s.end)
}

func (s Span) Contains(o Span) bool {
	return !o.start.Before(s.start) && !o.end.After(s.end)
}

// Days lists the UTC calendar days the span touches.
func (s Span) Days() []time.Time {
	first := DayOf(s.start)
	last := DayOf(s.end.Add(-time.Nanosecond))
	days := make([]time.Time, 0, int(last.Sub(first)/(24*time.Hour))+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayOf truncates to midnight UTC.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
