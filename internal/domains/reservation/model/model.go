package model

import "quadra/shared/model"

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldUserName    = "user_name"
	FieldCourtID     = "court_id"
	FieldCourtName   = "court_name"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldDuration    = "duration"
	FieldStatus      = "status"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// IsTerminalStatus reports whether a reservation can no longer transition.
func IsTerminalStatus(status string) bool {
	return status == StatusCancelled || status == StatusRejected
}

type Reservation struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	UserName    string `db:"user_name"`
	CourtID     string `db:"court_id"`
	CourtName   string `db:"court_name"`
	BookingDate string `db:"booking_date"`
	StartTime   string `db:"start_time"`
	Duration    string `db:"duration"`
	Status      string `db:"status"`
	model.Metadata
}
