package domain

import "time"

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval интервал длительностью d от start
func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Overlaps пересечение полуоткрытых интервалов: aStart < bEnd && bStart < aEnd
// Интервалы, которые только касаются границей, не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains true, если момент t внутри [Start, End)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Covers true, если other целиком внутри i
func (i Interval) Covers(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// FindConflict возвращает первую сессию, занимающую время тренера и пересекающую candidate
// excludeID исключает саму сессию при её изменении (0 - ничего не исключать)
func FindConflict(bookings []*SessionBooking, candidate Interval, excludeID int64) *SessionBooking {
	for _, b := range bookings {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !b.Status.BlocksCalendar() {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return b
		}
	}
	return nil
}
