package schedule

import "time"

// Slot is a bookable start time, a pure computed value. Optimal slots
// open or close the shift cleanly, or sit flush against an existing
// booking, leaving no unusable sliver of the day.
type Slot struct {
	Start     time.Time `json:"start"`
	IsOptimal bool      `json:"is_optimal"`
}

// SlotInfo is the wire representation for the API layer.
type SlotInfo struct {
	Time      string `json:"time"` // "10:30"
	IsOptimal bool   `json:"is_optimal,omitempty"`
}

// ToSlotInfo converts slots to SlotInfo for the API.
func ToSlotInfo(slots []Slot) []SlotInfo {
	result := make([]SlotInfo, len(slots))
	for i, s := range slots {
		result[i] = SlotInfo{
			Time:      s.Start.Format("15:04"),
			IsOptimal: s.IsOptimal,
		}
	}
	return result
}

// generateSlots walks the shift at the configured granularity and emits
// every start that fits a service of the given duration before shift
// end, clears all exclusion intervals, and (when notBefore is set, i.e.
// the queried date is today) does not start within the lead-time buffer.
// Granularity is independent of duration: a 90-minute service is still
// offered at 30-minute increments.
func generateSlots(dc dayContext, duration, granularity time.Duration, notBefore time.Time) []Slot {
	if duration <= 0 || granularity <= 0 {
		return nil
	}

	shiftStartMin := minuteOfDay(dc.shift.Start)
	shiftEndMin := minuteOfDay(dc.shift.End)

	var slots []Slot
	for t := dc.shift.Start; !t.Add(duration).After(dc.shift.End); t = t.Add(granularity) {
		if !notBefore.IsZero() && t.Before(notBefore) {
			continue
		}
		if dc.heldStarts[minuteOfDay(t)] {
			continue
		}

		end := t.Add(duration)
		blocked := false
		for _, iv := range dc.busy {
			if overlaps(t, end, iv.start, iv.end) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		m := minuteOfDay(t)
		mEnd := minuteOfDay(end)
		optimal := m == shiftStartMin ||
			mEnd == shiftEndMin ||
			dc.bookingEnds[m] ||
			dc.bookingStarts[mEnd]

		slots = append(slots, Slot{Start: t, IsOptimal: optimal})
	}
	return slots
}
