package model

import "time"

// Booking statuses. Cancelled bookings never block availability.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is a confirmed or pending appointment. The store keys bookings
// by staff name (legacy shape); matching against the staff directory is
// case-insensitive.
type Booking struct {
	ID          int64     `json:"id"`
	StaffName   string    `json:"staff_name"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone,omitempty"`
	ServiceID   int64     `json:"service_id,omitempty"`
	ServiceName string    `json:"service_name,omitempty"`
	StartTime   time.Time `json:"start_time"`
	Status      string    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsCancelled reports whether the booking no longer occupies its slot.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Hold is a soft, time-limited reservation created while a client is
// mid-checkout. An expired hold (ExpiresAt <= now) is invisible to the
// availability engine; holds are filtered by predicate at read time and
// never swept.
type Hold struct {
	ID        string    `json:"id"` // uuid
	StaffID   int64     `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
