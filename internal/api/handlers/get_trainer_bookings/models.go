package get_trainer_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задаёт сутки целиком, from/to (RFC3339) - произвольный интервал
func ToServiceRequest(
	trainerID int64,
	userID int64,
	role domain.ActorRole,
	dateStr string,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetTrainerBookingsRequest, error) {
	req := &models.GetTrainerBookingsRequest{
		UserID:    userID,
		Role:      role,
		TrainerID: trainerID,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		next := date.AddDate(0, 0, 1)
		req.From = &date
		req.To = &next
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
