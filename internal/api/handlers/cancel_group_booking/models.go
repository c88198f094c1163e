package cancel_group_booking

import (
	groupModels "github.com/m04kA/SMC-TrainingService/internal/service/groups/models"
	cancelGroupBooking "github.com/m04kA/SMC-TrainingService/internal/usecase/cancel_group_booking"
)

// CancelGroupBookingResponse HTTP response model
type CancelGroupBookingResponse struct {
	Participant *groupModels.ParticipantResponse `json:"participant"`
	Promoted    *groupModels.ParticipantResponse `json:"promoted,omitempty"`
	Session     *groupModels.SessionResponse     `json:"session"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelGroupBooking.Response) *CancelGroupBookingResponse {
	return &CancelGroupBookingResponse{
		Participant: groupModels.FromDomainParticipant(resp.Participant),
		Promoted:    groupModels.FromDomainParticipant(resp.Promoted),
		Session:     groupModels.FromDomainSession(resp.Session),
	}
}
