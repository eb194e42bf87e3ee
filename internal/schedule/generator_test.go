package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velour/internal/catalog"
	"velour/internal/model"
)

func slotTimes(slots []Slot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.Start.Format("15:04")
	}
	return times
}

func optimalTimes(slots []Slot) []string {
	var times []string
	for _, s := range slots {
		if s.IsOptimal {
			times = append(times, s.Start.Format("15:04"))
		}
	}
	return times
}

func at(t *testing.T, date time.Time, clock string) time.Time {
	t.Helper()
	ts, err := parseTimeOnDate(date, clock)
	require.NoError(t, err)
	return ts
}

func makeShift(t *testing.T, date time.Time, start, end string) Shift {
	t.Helper()
	return Shift{Start: at(t, date, start), End: at(t, date, end)}
}

func TestGenerateSlotsEmptyDay(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:30", "21:00")

	dc := svc.buildDayContext(date, shift, nil, nil, nil, catalog.NewResolver(nil))
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})

	require.Len(t, slots, 20)
	assert.Equal(t, "10:30", slots[0].Start.Format("15:04"))
	assert.Equal(t, "20:00", slots[len(slots)-1].Start.Format("15:04"))
	// Only the slots flush with the shift boundaries are optimal.
	assert.Equal(t, []string{"10:30", "20:00"}, optimalTimes(slots))
}

func TestGenerateSlotsDurationLongerThanShift(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "12:00")

	dc := svc.buildDayContext(date, shift, nil, nil, nil, catalog.NewResolver(nil))
	assert.Empty(t, generateSlots(dc, 3*time.Hour, 30*time.Minute, time.Time{}))
}

func TestGenerateSlotsAroundBooking(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")
	resolver := catalog.NewResolver([]model.Service{
		{ID: 1, Name: "Haircut", DurationMinutes: 60, IsActive: true},
	})

	bookings := []model.Booking{
		{StaffName: "Anna", ServiceID: 1, StartTime: at(t, date, "14:00"), Status: model.StatusConfirmed},
	}

	dc := svc.buildDayContext(date, shift, nil, bookings, nil, resolver)
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})

	times := slotTimes(slots)
	assert.NotContains(t, times, "13:30", "would overlap the booking")
	assert.NotContains(t, times, "14:00")
	assert.NotContains(t, times, "14:30")
	assert.Contains(t, times, "13:00")
	assert.Contains(t, times, "15:00")

	// Slots flush against the booking are optimal: 13:00 ends exactly at
	// the booking start, 15:00 starts exactly at the booking end.
	assert.Equal(t, []string{"10:00", "13:00", "15:00", "19:00"}, optimalTimes(slots))
}

func TestGenerateSlotsCancelledBookingIgnored(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")

	bookings := []model.Booking{
		{StaffName: "Anna", StartTime: at(t, date, "14:00"), Status: model.StatusCancelled},
	}

	dc := svc.buildDayContext(date, shift, nil, bookings, nil, catalog.NewResolver(nil))
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})
	assert.Contains(t, slotTimes(slots), "14:00")
}

func TestGenerateSlotsBookingDurationFromCatalog(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")
	resolver := catalog.NewResolver([]model.Service{
		{ID: 7, Name: "Coloring", DurationMinutes: 120, IsActive: true},
	})

	bookings := []model.Booking{
		{StaffName: "Anna", ServiceID: 7, StartTime: at(t, date, "12:00"), Status: model.StatusPending},
	}

	dc := svc.buildDayContext(date, shift, nil, bookings, nil, resolver)
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})

	times := slotTimes(slots)
	// 120-minute booking occupies [12:00, 14:00).
	for _, blocked := range []string{"11:30", "12:00", "12:30", "13:00", "13:30"} {
		assert.NotContains(t, times, blocked)
	}
	assert.Contains(t, times, "11:00")
	assert.Contains(t, times, "14:00")
}

func TestGenerateSlotsLunchBreak(t *testing.T) {
	svc := testService(SalonHours{LunchStart: "14:00", LunchEnd: "15:00"})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")

	dc := svc.buildDayContext(date, shift, nil, nil, nil, catalog.NewResolver(nil))
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})

	times := slotTimes(slots)
	assert.NotContains(t, times, "13:30")
	assert.NotContains(t, times, "14:00")
	assert.NotContains(t, times, "14:30")
	assert.Contains(t, times, "13:00")
	assert.Contains(t, times, "15:00")
}

func TestGenerateSlotsTimeOff(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")

	offs := []model.TimeOff{
		{StaffID: 1, StartTime: at(t, date, "10:00"), EndTime: at(t, date, "13:00")},
	}

	dc := svc.buildDayContext(date, shift, offs, nil, nil, catalog.NewResolver(nil))
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})
	assert.Equal(t, "13:00", slots[0].Start.Format("15:04"))
}

func TestGenerateSlotsFullDayTimeOff(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")

	offs := []model.TimeOff{
		{StaffID: 1, StartTime: date, EndTime: date.AddDate(0, 0, 1)},
	}

	dc := svc.buildDayContext(date, shift, offs, nil, nil, catalog.NewResolver(nil))
	assert.Empty(t, generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{}))
}

func TestGenerateSlotsHoldBlocksOnlyItsStart(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")

	holds := []model.Hold{
		{ID: "h1", StaffID: 1, StartTime: at(t, date, "12:00")},
	}

	dc := svc.buildDayContext(date, shift, nil, nil, holds, catalog.NewResolver(nil))
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, time.Time{})

	times := slotTimes(slots)
	assert.NotContains(t, times, "12:00")
	// A hold has no duration yet, so neighbouring starts stay open.
	assert.Contains(t, times, "11:30")
	assert.Contains(t, times, "12:30")
}

func TestGenerateSlotsLeadTimeFloor(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "20:00")

	dc := svc.buildDayContext(date, shift, nil, nil, nil, catalog.NewResolver(nil))
	slots := generateSlots(dc, 60*time.Minute, 30*time.Minute, at(t, date, "12:15"))

	assert.Equal(t, "12:30", slots[0].Start.Format("15:04"))
}

func TestGenerateSlotsGranularityIndependentOfDuration(t *testing.T) {
	svc := testService(SalonHours{})
	date := day(t, "2025-06-10")
	shift := makeShift(t, date, "10:00", "13:00")

	dc := svc.buildDayContext(date, shift, nil, nil, nil, catalog.NewResolver(nil))
	slots := generateSlots(dc, 90*time.Minute, 30*time.Minute, time.Time{})

	// 90-minute service still offered on the 30-minute grid.
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slotTimes(slots))
}

func TestOverlapsHalfOpen(t *testing.T) {
	date := day(t, "2025-06-10")
	a := at(t, date, "10:00")
	b := at(t, date, "11:00")
	c := at(t, date, "12:00")

	assert.True(t, overlaps(a, c, b, c))
	assert.False(t, overlaps(a, b, b, c), "touching intervals do not overlap")
	assert.False(t, overlaps(b, c, a, b))
}

func TestToSlotInfo(t *testing.T) {
	date := day(t, "2025-06-10")
	slots := []Slot{
		{Start: at(t, date, "10:00"), IsOptimal: true},
		{Start: at(t, date, "10:30")},
	}
	infos := ToSlotInfo(slots)
	require.Len(t, infos, 2)
	assert.Equal(t, SlotInfo{Time: "10:00", IsOptimal: true}, infos[0])
	assert.Equal(t, SlotInfo{Time: "10:30"}, infos[1])
}
