package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// AvailabilitySlot строка доступности тренера
// Еженедельная (SpecificDate == nil) или переопределение на конкретную дату
type AvailabilitySlot struct {
	ID                     int64
	TrainerID              int64
	DayOfWeek              int // 0 = понедельник ... 6 = воскресенье
	StartTime              types.TimeString
	EndTime                types.TimeString
	SessionDurationMinutes int
	IsAvailable            bool
	SpecificDate           *time.Time
	IsRecurring            bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsOverride true для строки на конкретную дату
func (a *AvailabilitySlot) IsOverride() bool {
	return a.SpecificDate != nil
}

// Window интервал доступности на дату
func (a *AvailabilitySlot) Window(date time.Time) Interval {
	return Interval{Start: a.StartTime.On(date), End: a.EndTime.On(date)}
}

// DayOfWeek номер дня недели с понедельника: 0 = Mon ... 6 = Sun
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// SameDate сравнивает только календарные даты
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay полночь даты t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ResolveAvailability окна доступности тренера на дату
//
// Если на дату есть хотя бы одна строка с SpecificDate, используются только они
// (строка с IsAvailable=false закрывает день). Иначе - еженедельные строки на день недели.
// В обоих случаях берутся только IsAvailable=true. Окна отсортированы по началу.
//
// Это правило используется и генерацией слотов, и проверкой при бронировании.
func ResolveAvailability(rows []*AvailabilitySlot, date time.Time) []Interval {
	var (
		overrides []*AvailabilitySlot
		weekly    []*AvailabilitySlot
	)

	weekday := DayOfWeek(date)
	for _, row := range rows {
		if row.IsOverride() {
			if SameDate(*row.SpecificDate, date) {
				overrides = append(overrides, row)
			}
			continue
		}
		if row.DayOfWeek == weekday {
			weekly = append(weekly, row)
		}
	}

	source := weekly
	if len(overrides) > 0 {
		source = overrides
	}

	windows := make([]Interval, 0, len(source))
	for _, row := range source {
		if !row.IsAvailable {
			continue
		}
		w := row.Window(date)
		if !w.Start.Before(w.End) {
			continue
		}
		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	return windows
}

// IsAvailableAt true, если момент t попадает в одно из окон доступности
func IsAvailableAt(windows []Interval, t time.Time) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// FitsAvailability true, если интервал целиком помещается в одно окно
func FitsAvailability(windows []Interval, candidate Interval) bool {
	for _, w := range windows {
		if w.Covers(candidate) {
			return true
		}
	}
	return false
}
