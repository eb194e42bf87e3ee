package schedule

import (
	"time"

	"velour/internal/catalog"
	"velour/internal/model"
)

// interval is half-open: [start, end).
type interval struct {
	start time.Time
	end   time.Time
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// dayContext carries everything the slot generator needs for one
// staff+day: the resolved shift, merged exclusion intervals, held start
// minutes, and the boundary minute sets used for optimality.
type dayContext struct {
	shift         Shift
	busy          []interval
	heldStarts    map[int]bool
	bookingStarts map[int]bool
	bookingEnds   map[int]bool
}

// buildDayContext merges all unavailability sources for a staff+day:
// the salon lunch break, time-off intervals intersecting the day,
// non-cancelled bookings expanded by their service duration, and active
// holds. A hold blocks only its own start minute because it does not yet
// know the requested duration.
func (s *Service) buildDayContext(
	date time.Time,
	shift Shift,
	timeOffs []model.TimeOff,
	bookings []model.Booking,
	holds []model.Hold,
	durations *catalog.Resolver,
) dayContext {
	dc := dayContext{
		shift:         shift,
		heldStarts:    make(map[int]bool),
		bookingStarts: make(map[int]bool),
		bookingEnds:   make(map[int]bool),
	}

	if lunch, ok := s.lunchInterval(date); ok {
		dc.busy = append(dc.busy, lunch)
	}

	for _, off := range timeOffs {
		dc.busy = append(dc.busy, interval{start: off.StartTime, end: off.EndTime})
	}

	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}
		dur := time.Duration(durations.DurationFor(b.ServiceID, b.ServiceName)) * time.Minute
		// Boundary minutes must be salon-local; stored times may carry
		// a different location.
		start := b.StartTime.In(date.Location())
		end := start.Add(dur)
		dc.busy = append(dc.busy, interval{start: start, end: end})
		dc.bookingStarts[minuteOfDay(start)] = true
		dc.bookingEnds[minuteOfDay(end)] = true
	}

	for _, h := range holds {
		dc.heldStarts[minuteOfDay(h.StartTime.In(date.Location()))] = true
	}

	return dc
}

// lunchInterval returns the salon lunch break anchored on the given day.
// Missing or malformed lunch settings are skipped silently; lunch is
// optional.
func (s *Service) lunchInterval(date time.Time) (interval, bool) {
	if s.params.Hours.LunchStart == "" || s.params.Hours.LunchEnd == "" {
		return interval{}, false
	}
	start, err1 := parseTimeOnDate(date, s.params.Hours.LunchStart)
	end, err2 := parseTimeOnDate(date, s.params.Hours.LunchEnd)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return interval{}, false
	}
	return interval{start: start, end: end}, true
}
