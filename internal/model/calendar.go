package model

import "time"

// HolidayOverride closes (or reopens) the salon on a specific date.
// When the salon is closed, staff listed in ExceptionStaffIDs still work
// their normal shift; everyone else has zero availability that day.
type HolidayOverride struct {
	ID                int64     `json:"id"`
	Date              time.Time `json:"date"`
	IsClosed          bool      `json:"is_closed"`
	ExceptionStaffIDs []int64   `json:"exception_staff_ids,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AppliesTo reports whether the closure affects the given staff member.
func (h *HolidayOverride) AppliesTo(staffID int64) bool {
	if !h.IsClosed {
		return false
	}
	for _, id := range h.ExceptionStaffIDs {
		if id == staffID {
			return false
		}
	}
	return true
}

// TimeOff is a half-open [StartTime, EndTime) interval during which a
// staff member is unavailable. It may cover a whole day or part of one.
type TimeOff struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
