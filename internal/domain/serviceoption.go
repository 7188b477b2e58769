package domain

import "time"

// ServiceOption is a bookable variant of a catalog service: a concrete
// duration and price (e.g. "Deep Tissue — 60 min"). Duration and price are
// snapshot into the booking at commit time, so edits here never change
// historical bookings.
type ServiceOption struct {
	ID              int64
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
