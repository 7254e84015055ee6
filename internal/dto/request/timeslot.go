package request

type CreateTimeSlotRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	MaxBookings int    `json:"max_bookings" validate:"required,min=1"`
}
