package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	TrainerID       int64     // ID тренера
	Date            time.Time // Дата (время игнорируется)
	DurationMinutes int       // Желаемая длительность сессии
}

// Response модель ответа со списком свободных слотов
type Response struct {
	TrainerID int64
	Date      time.Time
	Slots     []Slot // упорядочены по возрастанию начала
}

// Slot свободный слот
type Slot struct {
	Start           time.Time
	End             time.Time
	StartTime       types.TimeString // "HH:MM"
	EndTime         types.TimeString
	DurationMinutes int
}
