package wizard

import "time"

const timeOfDayLayout = "15:04"

// GenerateSlots builds the static business-hours grid: slots every interval
// from start (inclusive) up to end (exclusive). With 09:00/18:00 and a
// half-hour interval the last slot is 17:30. This is a fixed grid, not an
// availability query.
func GenerateSlots(start, end string, interval time.Duration) []string {
	from, err := time.Parse(timeOfDayLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(timeOfDayLayout, end)
	if err != nil {
		return nil
	}

	var slots []string
	for t := from; t.Before(to); t = t.Add(interval) {
		slots = append(slots, t.Format(timeOfDayLayout))
	}
	return slots
}
