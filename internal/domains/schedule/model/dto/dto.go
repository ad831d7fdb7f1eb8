package dto

import (
	"quadra/internal/domains/schedule/model"
)

type SlotResponse struct {
	StartTime    string       `json:"start_time"`
	Period       model.Period `json:"period"`
	Occupancy    int          `json:"occupancy"`
	Capacity     int          `json:"capacity"`
	Available    bool         `json:"available"`
	LoadFraction float64      `json:"load_fraction"`
	NearCapacity bool         `json:"near_capacity"`
}

type GetAvailabilityResponse struct {
	CourtID string         `json:"court_id"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// FromTemplate fills the slot grid from the daily template, the occupancy
// counts keyed by start time, and the capacity rules.
func (r *GetAvailabilityResponse) FromTemplate(courtID, date string, counts map[string]int, capacity int, warnLoadFactor float64) {
	r.CourtID = courtID
	r.Date = date

	template := model.DailyTemplate()
	r.Slots = make([]SlotResponse, len(template))

	for i, entry := range template {
		occupancy := counts[entry.StartTime]
		available := occupancy < capacity
		loadFraction := float64(occupancy) / float64(capacity)

		r.Slots[i] = SlotResponse{
			StartTime:    entry.StartTime,
			Period:       entry.Period,
			Occupancy:    occupancy,
			Capacity:     capacity,
			Available:    available,
			LoadFraction: loadFraction,
			NearCapacity: available && loadFraction > warnLoadFactor,
		}
	}
}
