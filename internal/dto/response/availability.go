package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type AvailabilityResponse struct {
	Available bool                   `json:"available"`
	Conflicts []RuleConflictResponse `json:"conflicts,omitempty"`
}

// RuleConflictResponse reports a capacity rule the candidate window would
// oversell, with its current and maximum concurrent counts.
type RuleConflictResponse struct {
	TimeSlotID   string `json:"time_slot_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	MaxBookings  int    `json:"max_bookings"`
	CurrentCount int    `json:"current_count"`
}

type TimeSlotResponse struct {
	ID          string    `json:"id"`
	BranchID    string    `json:"branch_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	MaxBookings int       `json:"max_bookings"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func TimeSlotToResponse(slot *entity.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:          slot.ID.String(),
		BranchID:    slot.BranchID.String(),
		DayOfWeek:   int(slot.DayOfWeek),
		StartTime:   slot.StartTime.Format("15:04"),
		EndTime:     slot.EndTime.Format("15:04"),
		MaxBookings: slot.MaxBookings,
		IsActive:    slot.IsActive,
		CreatedAt:   slot.CreatedAt,
	}
}
