package dto

import (
	"time"

	"github.com/google/uuid"

	"quadra/internal/domains/reservation/model"
	"quadra/shared"
	gDto "quadra/shared/dto"
	gModel "quadra/shared/model"
	"quadra/shared/timezone"
)

type CreateReservationRequest struct {
	CourtID     string `json:"court_id"     validate:"required"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time"   validate:"required"`
	Duration    string `json:"duration"     validate:"omitempty,max=50"`
}

func (c *CreateReservationRequest) ToModel(userID, userName, courtName, defaultDuration string) model.Reservation {
	duration := c.Duration
	if duration == "" {
		duration = defaultDuration
	}

	return model.Reservation{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserName:    userName,
		CourtID:     c.CourtID,
		CourtName:   courtName,
		BookingDate: c.BookingDate,
		StartTime:   c.StartTime,
		Duration:    duration,
		Status:      model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled rejected"`
}

type ReservationResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	CourtID     string `json:"court_id"`
	CourtName   string `json:"court_name"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.UserName = model.UserName
	r.CourtID = model.CourtID
	r.CourtName = model.CourtName
	r.BookingDate = model.BookingDate
	r.StartTime = model.StartTime
	r.Duration = model.Duration
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// ReservationEvent is the payload published to the reservation events topic
// on every lifecycle change.
type ReservationEvent struct {
	EventType     string    `json:"event_type"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	CourtID       string    `json:"court_id"`
	BookingDate   string    `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventReservationCreated       = "reservation.created"
	EventReservationCancelled     = "reservation.cancelled"
	EventReservationStatusChanged = "reservation.status_changed"
)
