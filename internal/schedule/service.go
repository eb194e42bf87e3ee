package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"velour/internal/catalog"
	"velour/internal/metrics"
	"velour/internal/model"
)

// Store is the read surface the availability engine consumes. All
// methods are read-only; *ForDay methods serve the single-day path and
// *InRange methods serve the bulk month path.
type Store interface {
	GetStaff(ctx context.Context, id int64) (*model.Staff, error)
	ListBookableStaff(ctx context.Context) ([]model.Staff, error)

	GetWeeklySchedule(ctx context.Context, staffID int64, dayOfWeek int) (*model.WeeklySchedule, error)
	ListWeeklySchedules(ctx context.Context, staffIDs []int64) (map[int64][]model.WeeklySchedule, error)

	GetHoliday(ctx context.Context, date time.Time) (*model.HolidayOverride, error)
	ListHolidays(ctx context.Context, from, to time.Time) (map[string]model.HolidayOverride, error)

	ListTimeOffForDay(ctx context.Context, staffID int64, day time.Time) ([]model.TimeOff, error)
	ListTimeOffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) (map[int64][]model.TimeOff, error)

	ListBookingsForDay(ctx context.Context, staffName string, day time.Time) ([]model.Booking, error)
	ListBookingsInRange(ctx context.Context, from, to time.Time) ([]model.Booking, error)

	ListActiveHolds(ctx context.Context, staffID int64, day, now time.Time) ([]model.Hold, error)

	ListActiveServices(ctx context.Context) ([]model.Service, error)
}

// Params configures the engine.
type Params struct {
	Hours              SalonHours
	Location           *time.Location
	GranularityMinutes int // slot step, default 30
	LeadTimeMinutes    int // same-day minimum lead, default 30
}

// Service computes bookable slots. It is a stateless read path: safe
// for concurrent use, never mutates storage, and degrades unknown staff
// and malformed stored configuration to empty results and defaults.
type Service struct {
	store  Store
	logger *zerolog.Logger
	params Params

	cache    *redis.Client
	cacheTTL time.Duration

	now func() time.Time
}

// NewService creates the availability engine.
func NewService(store Store, logger *zerolog.Logger, params Params) *Service {
	if params.GranularityMinutes <= 0 {
		params.GranularityMinutes = 30
	}
	if params.LeadTimeMinutes < 0 {
		params.LeadTimeMinutes = 30
	}
	if params.Location == nil {
		params.Location = time.UTC
	}
	return &Service{
		store:  store,
		logger: logger,
		params: params,
		now:    time.Now,
	}
}

// UseRedisCache configures optional caching of month-availability
// results. Slight staleness is acceptable: slot computation is
// advisory, not a reservation.
func (s *Service) UseRedisCache(client *redis.Client, ttl time.Duration) {
	s.cache = client
	s.cacheTTL = ttl
}

// DaySlots returns bookable slots for one staff member on one date.
// Unknown, inactive or non-bookable staff yields an empty result, not
// an error.
func (s *Service) DaySlots(ctx context.Context, staffID int64, date time.Time, durationMin int) ([]Slot, error) {
	metrics.IncQuery("day_slots")
	date = s.normalizeDate(date)
	if durationMin <= 0 {
		durationMin = catalog.DefaultDurationMinutes
	}

	staff, err := s.store.GetStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if staff == nil || !staff.IsActive || !staff.IsBookable {
		return nil, nil
	}

	holiday, err := s.store.GetHoliday(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get holiday: %w", err)
	}
	if holiday != nil && holiday.AppliesTo(staffID) {
		return nil, nil
	}

	row, err := s.store.GetWeeklySchedule(ctx, staffID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("get weekly schedule: %w", err)
	}
	shift, works := s.resolveShift(date, row)
	if !works {
		return nil, nil
	}

	timeOffs, err := s.store.ListTimeOffForDay(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("list time off: %w", err)
	}
	bookings, err := s.store.ListBookingsForDay(ctx, staff.Name, date)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	holds, err := s.store.ListActiveHolds(ctx, staffID, date, s.now())
	if err != nil {
		return nil, fmt.Errorf("list holds: %w", err)
	}
	services, err := s.store.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	dc := s.buildDayContext(date, shift, timeOffs, bookings, holds, catalog.NewResolver(services))
	return generateSlots(dc, s.duration(durationMin), s.granularity(), s.sameDayFloor(date)), nil
}

// AllStaffDaySlots computes slots for every bookable staff member on
// one date, keyed by staff id. Staff with no free slot are omitted.
func (s *Service) AllStaffDaySlots(ctx context.Context, date time.Time, durationMin int) (map[int64][]Slot, error) {
	metrics.IncQuery("all_staff_day_slots")
	date = s.normalizeDate(date)
	if durationMin <= 0 {
		durationMin = catalog.DefaultDurationMinutes
	}

	staff, err := s.store.ListBookableStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	result := make(map[int64][]Slot)
	if len(staff) == 0 {
		return result, nil
	}

	in, err := s.loadRangeInputs(ctx, staffIDs(staff), date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	for _, st := range staff {
		holds, err := s.store.ListActiveHolds(ctx, st.ID, date, s.now())
		if err != nil {
			return nil, fmt.Errorf("list holds: %w", err)
		}
		if slots := s.slotsForDay(st, date, durationMin, in, holds); len(slots) > 0 {
			result[st.ID] = slots
		}
	}
	return result, nil
}

// AvailableDates returns every date in the month on which at least one
// candidate staff member has at least one free slot. staffID 0 means
// "any staff". The whole month is computed from a constant number of
// bulk queries and then iterated purely in memory; "any staff" mode
// short-circuits each day on the first staff member with a free slot.
//
// Holds are ignored here: they expire within minutes, far below the
// resolution of a calendar-picker view.
func (s *Service) AvailableDates(ctx context.Context, staffID int64, year int, month time.Month, durationMin int) ([]string, error) {
	metrics.IncQuery("available_dates")
	if durationMin <= 0 {
		durationMin = catalog.DefaultDurationMinutes
	}

	staffKey := "any"
	if staffID > 0 {
		staffKey = strconv.FormatInt(staffID, 10)
	}
	cacheKey := fmt.Sprintf("availability:%s:%d-%02d:%d", staffKey, year, int(month), durationMin)

	var cached []string
	if s.readCache(ctx, cacheKey, &cached) {
		metrics.IncCacheHit()
		return cached, nil
	}
	if s.cache != nil {
		metrics.IncCacheMiss()
	}

	var candidates []model.Staff
	if staffID > 0 {
		st, err := s.store.GetStaff(ctx, staffID)
		if err != nil {
			return nil, fmt.Errorf("get staff: %w", err)
		}
		if st == nil || !st.IsActive || !st.IsBookable {
			return nil, nil
		}
		candidates = []model.Staff{*st}
	} else {
		var err error
		candidates, err = s.store.ListBookableStaff(ctx)
		if err != nil {
			return nil, fmt.Errorf("list staff: %w", err)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.params.Location)
	next := first.AddDate(0, 1, 0)

	in, err := s.loadRangeInputs(ctx, staffIDs(candidates), first, next)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var dates []string
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		for _, st := range candidates {
			if len(s.slotsForDay(st, day, durationMin, in, nil)) > 0 {
				dates = append(dates, day.Format("2006-01-02"))
				break
			}
		}
	}
	metrics.ObserveMonthScan(time.Since(started).Seconds())

	s.writeCache(ctx, cacheKey, dates)
	return dates, nil
}

// bookingKey addresses the in-memory booking map: bookings are stored
// by staff name, so matching is done on the lowercased name plus the
// salon-local date.
type bookingKey struct {
	staff string
	date  string
}

// rangeInputs holds everything the per-day computation needs, fetched
// once for a whole date range. After loading, no further database
// access happens.
type rangeInputs struct {
	schedules map[int64]map[int]model.WeeklySchedule
	timeOff   map[int64][]model.TimeOff
	bookings  map[bookingKey][]model.Booking
	holidays  map[string]model.HolidayOverride
	durations *catalog.Resolver
}

// loadRangeInputs issues the bulk queries for [from, to): weekly
// schedules and time off for all candidate staff, all bookings and
// holiday overrides in the range, and the service catalog for duration
// resolution. Re-running the per-day pipeline against these maps is
// what keeps a month query at a constant number of round trips instead
// of O(days x staff).
func (s *Service) loadRangeInputs(ctx context.Context, ids []int64, from, to time.Time) (rangeInputs, error) {
	in := rangeInputs{
		schedules: make(map[int64]map[int]model.WeeklySchedule),
		bookings:  make(map[bookingKey][]model.Booking),
	}

	schedules, err := s.store.ListWeeklySchedules(ctx, ids)
	if err != nil {
		return in, fmt.Errorf("bulk load schedules: %w", err)
	}
	for staffID, rows := range schedules {
		byDay := make(map[int]model.WeeklySchedule, len(rows))
		for _, row := range rows {
			byDay[row.DayOfWeek] = row
		}
		in.schedules[staffID] = byDay
	}

	in.timeOff, err = s.store.ListTimeOffInRange(ctx, ids, from, to)
	if err != nil {
		return in, fmt.Errorf("bulk load time off: %w", err)
	}

	bookings, err := s.store.ListBookingsInRange(ctx, from, to)
	if err != nil {
		return in, fmt.Errorf("bulk load bookings: %w", err)
	}
	for _, b := range bookings {
		key := bookingKey{
			staff: strings.ToLower(b.StaffName),
			date:  b.StartTime.In(s.params.Location).Format("2006-01-02"),
		}
		in.bookings[key] = append(in.bookings[key], b)
	}

	in.holidays, err = s.store.ListHolidays(ctx, from, to.AddDate(0, 0, -1))
	if err != nil {
		return in, fmt.Errorf("bulk load holidays: %w", err)
	}

	services, err := s.store.ListActiveServices(ctx)
	if err != nil {
		return in, fmt.Errorf("load services: %w", err)
	}
	in.durations = catalog.NewResolver(services)

	return in, nil
}

// slotsForDay runs the shift resolution, unavailability collection and
// slot generation for one staff+day against preloaded range inputs.
func (s *Service) slotsForDay(st model.Staff, date time.Time, durationMin int, in rangeInputs, holds []model.Hold) []Slot {
	dateStr := date.Format("2006-01-02")
	if h, ok := in.holidays[dateStr]; ok && h.AppliesTo(st.ID) {
		return nil
	}

	var row *model.WeeklySchedule
	if byDay, ok := in.schedules[st.ID]; ok {
		if r, ok := byDay[int(date.Weekday())]; ok {
			row = &r
		}
	}
	shift, works := s.resolveShift(date, row)
	if !works {
		return nil
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	var offs []model.TimeOff
	for _, off := range in.timeOff[st.ID] {
		if overlaps(off.StartTime, off.EndTime, dayStart, dayEnd) {
			offs = append(offs, off)
		}
	}

	bookings := in.bookings[bookingKey{staff: strings.ToLower(st.Name), date: dateStr}]

	dc := s.buildDayContext(date, shift, offs, bookings, holds, in.durations)
	return generateSlots(dc, s.duration(durationMin), s.granularity(), s.sameDayFloor(date))
}

// normalizeDate re-anchors a date at midnight in the salon timezone.
func (s *Service) normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.params.Location)
}

// sameDayFloor returns now + lead-time when the queried date is today
// in the salon timezone, zero otherwise. The buffer never applies to
// other dates.
func (s *Service) sameDayFloor(date time.Time) time.Time {
	now := s.now().In(s.params.Location)
	if now.Year() == date.Year() && now.Month() == date.Month() && now.Day() == date.Day() {
		return now.Add(time.Duration(s.params.LeadTimeMinutes) * time.Minute)
	}
	return time.Time{}
}

func (s *Service) duration(durationMin int) time.Duration {
	return time.Duration(durationMin) * time.Minute
}

func (s *Service) granularity() time.Duration {
	return time.Duration(s.params.GranularityMinutes) * time.Minute
}

func (s *Service) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (s *Service) writeCache(ctx context.Context, key string, val any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, data, s.cacheTTL).Err()
}

func staffIDs(staff []model.Staff) []int64 {
	ids := make([]int64, len(staff))
	for i, st := range staff {
		ids[i] = st.ID
	}
	return ids
}
