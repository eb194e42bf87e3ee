package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"velour/internal/model"
)

// SalonHours holds the salon-wide default working hours as stored in
// settings: "HH:MM - HH:MM" ranges plus an optional lunch break.
type SalonHours struct {
	Weekday    string // e.g. "10:00 - 20:00", Mon-Fri
	Weekend    string // e.g. "10:00 - 18:00", Sat-Sun
	LunchStart string // "14:00", optional
	LunchEnd   string // "15:00", optional
}

// Hard-coded opening hours applied when a stored range is malformed.
const (
	fallbackOpen  = "10:00"
	fallbackClose = "20:00"
)

// Shift is the effective working interval for a staff member on a day.
// A zero Shift means the staff member does not work that day.
type Shift struct {
	Start time.Time
	End   time.Time
}

// resolveShift layers the three shift sources for a calendar day:
// explicit weekly row, salon default range, hard-coded fallback. An
// inactive weekly row is terminal: the staff member does not work that
// weekday at all.
func (s *Service) resolveShift(date time.Time, row *model.WeeklySchedule) (Shift, bool) {
	if row != nil {
		if !row.IsActive {
			return Shift{}, false
		}
		return s.shiftFromTimes(date, row.StartTime, row.EndTime, fmt.Sprintf("weekly schedule staff=%d day=%d", row.StaffID, row.DayOfWeek)), true
	}

	rangeStr := s.params.Hours.Weekday
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		rangeStr = s.params.Hours.Weekend
	}

	startStr, endStr, err := splitHoursRange(rangeStr)
	if err != nil {
		s.logger.Warn().Str("range", rangeStr).Msg("malformed salon hours, using fallback")
		startStr, endStr = fallbackOpen, fallbackClose
	}
	return s.shiftFromTimes(date, startStr, endStr, "salon default hours"), true
}

func (s *Service) shiftFromTimes(date time.Time, startStr, endStr, source string) Shift {
	start, err1 := parseTimeOnDate(date, startStr)
	end, err2 := parseTimeOnDate(date, endStr)
	if err1 != nil || err2 != nil || !start.Before(end) {
		s.logger.Warn().
			Str("start", startStr).
			Str("end", endStr).
			Str("source", source).
			Msg("malformed shift times, using fallback")
		start, _ = parseTimeOnDate(date, fallbackOpen)
		end, _ = parseTimeOnDate(date, fallbackClose)
	}
	return Shift{Start: start, End: end}
}

// splitHoursRange parses a stored "HH:MM - HH:MM" settings value.
func splitHoursRange(s string) (string, string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid hours range: %s", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func parseTimeOnDate(date time.Time, timeStr string) (time.Time, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour: %w", err)
	}

	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute: %w", err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %s", timeStr)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
