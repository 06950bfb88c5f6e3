// File: services/availability/engine.go
package availability

import (
	"fmt"
	"sort"
	"time"

	"slotify/models"
)

// DateLayout is the wire format for requested calendar dates.
const DateLayout = "2006-01-02"

// ComputeSlots computes the bookable start instants (UTC) for a calendar on
// the requested date, as seen from the viewer's timezone.
//
// Rules are weekly wall-clock windows in the calendar's zone, so a slot
// generated for a calendar-local "Monday" can land on the viewer's Sunday or
// Tuesday once converted. The calendar-local days adjacent to the requested
// date are therefore scanned too, and candidates are kept only when their
// instant falls inside the viewer-local day [midnight(date), midnight(date+1)).
//
// A candidate survives when its occupied interval [start, start+duration+buffer)
// overlaps no appointment in appts and its start is strictly after now. The
// result is deduplicated and sorted ascending. No rules means no slots, not an
// error.
func ComputeSlots(
	cfg models.CalendarConfig,
	rules []models.AvailabilityRule,
	appts []models.Appointment,
	date string,
	viewerLoc *time.Location,
	now time.Time,
) ([]time.Time, error) {
	if cfg.DurationMinutes <= 0 {
		return nil, fmt.Errorf("invalid slot duration: %d", cfg.DurationMinutes)
	}

	calLoc := time.UTC
	if cfg.Timezone != "" {
		var err error
		calLoc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid calendar timezone %q: %w", cfg.Timezone, err)
		}
	}
	if viewerLoc == nil {
		viewerLoc = time.UTC
	}

	requested, err := time.ParseInLocation(DateLayout, date, viewerLoc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	// Viewer-local day boundaries as an absolute interval.
	viewerDayStart := requested
	viewerDayEnd := requested.AddDate(0, 0, 1)

	duration := time.Duration(cfg.DurationMinutes) * time.Minute
	buffer := time.Duration(cfg.BufferMinutes) * time.Minute
	y, mo, d := requested.Date()

	seen := make(map[int64]struct{})
	var slots []time.Time

	for offset := -1; offset <= 1; offset++ {
		// time.Date normalizes the out-of-range day.
		dayStart := time.Date(y, mo, d+offset, 0, 0, 0, 0, calLoc)
		weekday := int(dayStart.Weekday())

		for _, rule := range rules {
			if rule.DayOfWeek != weekday {
				continue
			}
			startSec, err := parseClock(rule.StartTime)
			if err != nil {
				return nil, fmt.Errorf("invalid rule start time %q: %w", rule.StartTime, err)
			}
			endSec, err := parseClock(rule.EndTime)
			if err != nil {
				return nil, fmt.Errorf("invalid rule end time %q: %w", rule.EndTime, err)
			}
			if endSec <= startSec {
				continue
			}

			dy, dm, dd := dayStart.Date()
			stepSec := int(duration / time.Second)
			// No partial slots: the whole slot must fit inside the window.
			for sec := startSec; sec+stepSec <= endSec; sec += stepSec {
				start := time.Date(dy, dm, dd, sec/3600, (sec%3600)/60, sec%60, 0, calLoc).UTC()
				if !start.After(now) {
					continue
				}
				if start.Before(viewerDayStart) || !start.Before(viewerDayEnd) {
					continue
				}
				if conflicts(start, start.Add(duration+buffer), appts) {
					continue
				}
				if _, dup := seen[start.Unix()]; dup {
					continue
				}
				seen[start.Unix()] = struct{}{}
				slots = append(slots, start)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots, nil
}

// conflicts reports whether the occupied interval [start, end) overlaps any
// non-cancelled appointment.
func conflicts(start, end time.Time, appts []models.Appointment) bool {
	occupied := models.Interval{Start: start, End: end}
	for _, a := range appts {
		if a.Status == models.AppointmentStatusCancelled {
			continue
		}
		if occupied.Overlaps(models.Interval{Start: a.Start, End: a.End}) {
			return true
		}
	}
	return false
}

// ValidateRules checks that a rule set parses before it is saved. Windows
// shorter than a slot are accepted; they just never produce one.
func ValidateRules(rules []models.AvailabilityRule) error {
	for i, rule := range rules {
		if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
			return fmt.Errorf("rule %d: day of week %d out of range 0..6", i, rule.DayOfWeek)
		}
		if _, err := parseClock(rule.StartTime); err != nil {
			return fmt.Errorf("rule %d: invalid start time %q", i, rule.StartTime)
		}
		if _, err := parseClock(rule.EndTime); err != nil {
			return fmt.Errorf("rule %d: invalid end time %q", i, rule.EndTime)
		}
	}
	return nil
}

// parseClock parses a wall-clock time ("HH:MM:SS" or "HH:MM") into seconds
// from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, err
		}
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}
