package model

import "time"

// Staff is a member of the salon staff directory.
type Staff struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsBookable bool      `json:"is_bookable"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WeeklySchedule is one row of a staff member's weekly shift template.
// DayOfWeek follows time.Weekday: 0 = Sunday ... 6 = Saturday.
// Unique per (staff, day_of_week). A present but inactive row means the
// staff member does not work that weekday at all.
type WeeklySchedule struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staff_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"` // "10:00"
	EndTime   string    `json:"end_time"`   // "20:00"
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
