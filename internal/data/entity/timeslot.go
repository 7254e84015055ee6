package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a per-branch capacity rule: on a given day of week, at most
// MaxBookings bookings may overlap [StartTime, EndTime). Rules for the same
// branch and day may overlap each other; a candidate window is checked
// against every active rule it intersects.
type TimeSlot struct {
	Base
	BranchID    uuid.UUID    `db:"branch_id"`
	DayOfWeek   time.Weekday `db:"day_of_week"`
	StartTime   time.Time    `db:"start_time"`
	EndTime     time.Time    `db:"end_time"`
	MaxBookings int          `db:"max_bookings"`
	IsActive    bool         `db:"is_active"`
}

// MinuteOfDay reduces a wall-clock time to minutes since midnight, the
// comparable unit for all interval checks.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IntervalsOverlap is the half-open interval test: [aStart, aEnd) and
// [bStart, bEnd) overlap iff aStart < bEnd && bStart < aEnd. Back-to-back
// windows (a ends exactly where b starts) do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsWindow reports whether the rule's interval intersects the
// candidate [start, end) window.
func (s *TimeSlot) OverlapsWindow(start, end time.Time) bool {
	return IntervalsOverlap(
		MinuteOfDay(s.StartTime), MinuteOfDay(s.EndTime),
		MinuteOfDay(start), MinuteOfDay(end),
	)
}
