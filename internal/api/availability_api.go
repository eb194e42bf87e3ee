package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"velour/internal/metrics"
	"velour/internal/schedule"
)

// MaxMonthsAhead caps how far into the future the month endpoints look.
const MaxMonthsAhead = 12

// DaySlotsResponse is the response for GET /api/v1/slots.
type DaySlotsResponse struct {
	StaffID int64               `json:"staff_id"`
	Date    string              `json:"date"`
	Slots   []schedule.SlotInfo `json:"slots"`
}

// AllStaffSlotsResponse is the response for GET /api/v1/slots/all.
type AllStaffSlotsResponse struct {
	Date  string                         `json:"date"`
	Staff map[string][]schedule.SlotInfo `json:"staff"`
}

// MonthAvailabilityResponse is the response for GET /api/v1/availability.
type MonthAvailabilityResponse struct {
	StaffID int64    `json:"staff_id,omitempty"`
	Year    int      `json:"year"`
	Month   int      `json:"month"`
	Dates   []string `json:"dates"`
}

// handleDaySlots returns slots for one staff member on one date.
// GET /api/v1/slots?staff_id=3&date=2025-06-10&duration=60
func (s *HTTPServer) handleDaySlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("day_slots")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	staffID, err := strconv.ParseInt(r.URL.Query().Get("staff_id"), 10, 64)
	if err != nil || staffID <= 0 {
		writeError(w, http.StatusBadRequest, "staff_id is required")
		return
	}
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	duration := s.parseDuration(r)

	slots, err := s.svc.DaySlots(r.Context(), staffID, date, duration)
	if err != nil {
		s.logger.Error().Err(err).Int64("staff_id", staffID).Msg("day slots query failed")
		writeError(w, http.StatusInternalServerError, "availability query failed")
		return
	}

	writeJSON(w, http.StatusOK, DaySlotsResponse{
		StaffID: staffID,
		Date:    date.Format("2006-01-02"),
		Slots:   schedule.ToSlotInfo(slots),
	})
}

// handleAllStaffSlots returns slots for every bookable staff member.
// GET /api/v1/slots/all?date=2025-06-10&duration=60
func (s *HTTPServer) handleAllStaffSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("all_staff_slots")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	duration := s.parseDuration(r)

	byStaff, err := s.svc.AllStaffDaySlots(r.Context(), date, duration)
	if err != nil {
		s.logger.Error().Err(err).Msg("all staff slots query failed")
		writeError(w, http.StatusInternalServerError, "availability query failed")
		return
	}

	resp := AllStaffSlotsResponse{
		Date:  date.Format("2006-01-02"),
		Staff: make(map[string][]schedule.SlotInfo, len(byStaff)),
	}
	for staffID, slots := range byStaff {
		resp.Staff[strconv.FormatInt(staffID, 10)] = schedule.ToSlotInfo(slots)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleMonthAvailability returns the dates in a month with at least
// one free slot, for one staff member or any.
// GET /api/v1/availability?year=2025&month=6&staff_id=3&duration=60
func (s *HTTPServer) handleMonthAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("month_availability")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var staffID int64 // 0 = any staff
	if raw := r.URL.Query().Get("staff_id"); raw != "" {
		staffID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			writeError(w, http.StatusBadRequest, "invalid staff_id")
			return
		}
	}
	duration := s.parseDuration(r)

	dates, err := s.svc.AvailableDates(r.Context(), staffID, year, month, duration)
	if err != nil {
		s.logger.Error().Err(err).Msg("month availability query failed")
		writeError(w, http.StatusInternalServerError, "availability query failed")
		return
	}

	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, MonthAvailabilityResponse{
		StaffID: staffID,
		Year:    year,
		Month:   int(month),
		Dates:   dates,
	})
}

// handleAvailabilityReport streams a month availability report as xlsx.
// GET /api/v1/reports/availability?year=2025&month=6&duration=60
func (s *HTTPServer) handleAvailabilityReport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_report")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}
	if s.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "reports disabled")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	duration := s.parseDuration(r)

	filename := fmt.Sprintf("availability_%d-%02d.xlsx", year, int(month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.reports.WriteMonthReport(r.Context(), w, year, month, duration); err != nil {
		s.logger.Error().Err(err).Msg("availability report failed")
	}
}

func (s *HTTPServer) parseDuration(r *http.Request) int {
	raw := r.URL.Query().Get("duration")
	if raw == "" {
		return s.defaultDurn
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d <= 0 || d > 12*60 {
		return s.defaultDurn
	}
	return d
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format; expected YYYY-MM-DD")
	}
	return date, nil
}

func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("year is required")
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return 0, 0, fmt.Errorf("month must be 1-12")
	}

	now := time.Now()
	requested := time.Date(year, time.Month(monthNum), 1, 0, 0, 0, 0, time.UTC)
	horizon := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, MaxMonthsAhead, 0)
	if requested.After(horizon) {
		return 0, 0, fmt.Errorf("month exceeds maximum of %d months ahead", MaxMonthsAhead)
	}

	return year, time.Month(monthNum), nil
}
