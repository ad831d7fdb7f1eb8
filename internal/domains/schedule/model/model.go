package model

import (
	"time"

	"quadra/shared/constant"
)

const (
	OccupancyTableName  = "slot_occupancy"
	OccupancyEntityName = "slot_occupancy"

	FieldCourtID     = "court_id"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldOccupancy   = "occupancy"
	FieldCapacity    = "capacity"
)

// Period is the coarse time-of-day grouping shown to clients. Labels are the
// Portuguese ones the mobile app renders verbatim.
type Period string

const (
	PeriodMorning   Period = "Manhã"
	PeriodAfternoon Period = "Tarde"
	PeriodEvening   Period = "Noite"
	PeriodOther     Period = "Outro"
)

type TemplateEntry struct {
	StartTime string
	Period    Period
}

// DailyTemplate returns the fixed grid of bookable start times for one day,
// 07:00 through 22:00.
func DailyTemplate() []TemplateEntry {
	template := make([]TemplateEntry, 0, 16)

	for hour := 7; hour <= 22; hour++ {
		startTime := time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format(constant.SlotTimeFormat)

		template = append(template, TemplateEntry{
			StartTime: startTime,
			Period:    PeriodFor(startTime),
		})
	}

	return template
}

// PeriodFor classifies a start time into a period. Times outside the known
// bands, or unparseable ones, map to PeriodOther instead of failing.
func PeriodFor(startTime string) Period {
	parsed, err := time.Parse(constant.SlotTimeFormat, startTime)
	if err != nil {
		return PeriodOther
	}

	switch hour := parsed.Hour(); {
	case hour >= 7 && hour <= 12:
		return PeriodMorning
	case hour >= 13 && hour <= 18:
		return PeriodAfternoon
	case hour >= 19 && hour <= 22:
		return PeriodEvening
	default:
		return PeriodOther
	}
}

// SlotOccupancy is the materialized per-slot counter kept in step with
// reservation writes.
type SlotOccupancy struct {
	CourtID     string `db:"court_id"`
	BookingDate string `db:"booking_date"`
	StartTime   string `db:"start_time"`
	Occupancy   int    `db:"occupancy"`
	Capacity    int    `db:"capacity"`
}
