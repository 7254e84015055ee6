package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOffering is a bookable service (massage, haircut, ...). Its
// duration doubles as the assumed duration when a confirmed booking is
// completed directly without being started first.
type ServiceOffering struct {
	Base
	BranchID        uuid.UUID `db:"branch_id"`
	Name            string    `db:"name"`
	DurationMinutes int       `db:"duration_minutes"`
	Price           float64   `db:"price"`
	IsActive        bool      `db:"is_active"`
}

func (s *ServiceOffering) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
