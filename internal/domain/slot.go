package domain

import (
	"sort"
	"time"
)

// TimeSlot свободный слот [Start, End)
type TimeSlot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// GenerateSlots слоты длительностью duration, которые можно забронировать
//
// Кандидаты идут с шагом step от начала каждого окна. Кандидат остаётся, если
// целиком помещается в окно, не пересекается ни с одной занимающей время сессией
// и начинается не раньше notBefore. Результат упорядочен по возрастанию начала.
func GenerateSlots(windows []Interval, bookings []*SessionBooking, duration, step time.Duration, notBefore time.Time) []TimeSlot {
	slots := make([]TimeSlot, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	minutes := int(duration / time.Minute)
	seen := make(map[int64]struct{})

	for _, w := range windows {
		for start := w.Start; !start.Add(duration).After(w.End); start = start.Add(step) {
			if start.Before(notBefore) {
				continue
			}
			candidate := NewInterval(start, duration)
			if FindConflict(bookings, candidate, 0) != nil {
				continue
			}
			key := start.Unix()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			slots = append(slots, TimeSlot{Start: candidate.Start, End: candidate.End, DurationMinutes: minutes})
		}
	}

	// Окна могут пересекаться, поэтому упорядочиваем итог
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}
