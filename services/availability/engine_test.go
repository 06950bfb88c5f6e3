package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/models"
)

// 2024-06-10 is a Monday.
const monday = "2024-06-10"

func utcConfig(duration, buffer int) models.CalendarConfig {
	return models.CalendarConfig{DurationMinutes: duration, BufferMinutes: buffer, Timezone: "UTC"}
}

func mondayRule(start, end string) models.AvailabilityRule {
	return models.AvailabilityRule{DayOfWeek: 1, StartTime: start, EndTime: end}
}

func booked(start, end string) models.Appointment {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		panic(err)
	}
	return models.Appointment{Start: s, End: e, Status: models.AppointmentStatusBooked}
}

func mustInstant(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestComputeSlots_FullDay(t *testing.T) {
	now := mustInstant(t, "2024-06-10T08:00:00Z")

	slots, err := ComputeSlots(
		utcConfig(30, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		nil, monday, time.UTC, now,
	)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	assert.Equal(t, mustInstant(t, "2024-06-10T09:00:00Z"), slots[0])
	assert.Equal(t, mustInstant(t, "2024-06-10T09:30:00Z"), slots[1])
	assert.Equal(t, mustInstant(t, "2024-06-10T16:30:00Z"), slots[15])
}

func TestComputeSlots_ExcludesConflictingAppointment(t *testing.T) {
	now := mustInstant(t, "2024-06-10T08:00:00Z")
	appts := []models.Appointment{booked("2024-06-10T10:00:00Z", "2024-06-10T10:30:00Z")}

	slots, err := ComputeSlots(
		utcConfig(30, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		appts, monday, time.UTC, now,
	)
	require.NoError(t, err)
	require.Len(t, slots, 15)

	// Intervals are half-open, so the 09:30 slot ending exactly at 10:00 stays.
	assert.Contains(t, slots, mustInstant(t, "2024-06-10T09:30:00Z"))
	assert.NotContains(t, slots, mustInstant(t, "2024-06-10T10:00:00Z"))
	assert.Contains(t, slots, mustInstant(t, "2024-06-10T10:30:00Z"))
}

func TestComputeSlots_NoPartialSlots(t *testing.T) {
	now := mustInstant(t, "2024-06-10T08:00:00Z")

	slots, err := ComputeSlots(
		utcConfig(45, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "10:00:00")},
		nil, monday, time.UTC, now,
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, mustInstant(t, "2024-06-10T09:00:00Z"), slots[0])
}

func TestComputeSlots_FutureOnly(t *testing.T) {
	now := mustInstant(t, "2024-06-10T09:15:00Z")

	slots, err := ComputeSlots(
		utcConfig(30, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		nil, monday, time.UTC, now,
	)
	require.NoError(t, err)
	require.Len(t, slots, 15)
	assert.NotContains(t, slots, mustInstant(t, "2024-06-10T09:00:00Z"))
	assert.Equal(t, mustInstant(t, "2024-06-10T09:30:00Z"), slots[0])
}

func TestComputeSlots_SlotExactlyAtNowExcluded(t *testing.T) {
	now := mustInstant(t, "2024-06-10T09:00:00Z")

	slots, err := ComputeSlots(
		utcConfig(30, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		nil, monday, time.UTC, now,
	)
	require.NoError(t, err)
	assert.NotContains(t, slots, now)
	assert.Equal(t, mustInstant(t, "2024-06-10T09:30:00Z"), slots[0])
}

func TestComputeSlots_BufferExtendsConflict(t *testing.T) {
	now := mustInstant(t, "2024-06-10T08:00:00Z")
	appts := []models.Appointment{booked("2024-06-10T11:00:00Z", "2024-06-10T11:30:00Z")}

	slots, err := ComputeSlots(
		utcConfig(30, 15),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		appts, monday, time.UTC, now,
	)
	require.NoError(t, err)

	// 10:30 occupies 10:30-11:00 plus buffer to 11:15, colliding with 11:00.
	assert.NotContains(t, slots, mustInstant(t, "2024-06-10T10:30:00Z"))
	// 10:00 occupies up to 10:45 only.
	assert.Contains(t, slots, mustInstant(t, "2024-06-10T10:00:00Z"))
	assert.NotContains(t, slots, mustInstant(t, "2024-06-10T11:00:00Z"))
	// Buffer is one-directional: nothing is subtracted before a slot, so
	// 11:30 right after the appointment stays.
	assert.Contains(t, slots, mustInstant(t, "2024-06-10T11:30:00Z"))
}

func TestComputeSlots_CancelledAppointmentsIgnored(t *testing.T) {
	now := mustInstant(t, "2024-06-10T08:00:00Z")
	cancelled := booked("2024-06-10T10:00:00Z", "2024-06-10T10:30:00Z")
	cancelled.Status = models.AppointmentStatusCancelled

	slots, err := ComputeSlots(
		utcConfig(30, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		[]models.Appointment{cancelled}, monday, time.UTC, now,
	)
	require.NoError(t, err)
	assert.Contains(t, slots, mustInstant(t, "2024-06-10T10:00:00Z"))
}

func TestComputeSlots_EmptyRules(t *testing.T) {
	slots, err := ComputeSlots(utcConfig(30, 0), nil, nil, monday, time.UTC, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_DegenerateWindows(t *testing.T) {
	now := mustInstant(t, "2024-06-10T00:00:00Z")
	rules := []models.AvailabilityRule{
		mondayRule("17:00:00", "09:00:00"), // inverted
		mondayRule("09:00:00", "09:00:00"), // empty
		mondayRule("09:00:00", "09:15:00"), // shorter than one slot
	}

	slots, err := ComputeSlots(utcConfig(30, 0), rules, nil, monday, time.UTC, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_OverlappingRulesDeduplicated(t *testing.T) {
	now := mustInstant(t, "2024-06-10T00:00:00Z")
	rules := []models.AvailabilityRule{
		mondayRule("09:00:00", "10:00:00"),
		mondayRule("09:00:00", "10:30:00"),
	}

	slots, err := ComputeSlots(utcConfig(30, 0), rules, nil, monday, time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		mustInstant(t, "2024-06-10T09:00:00Z"),
		mustInstant(t, "2024-06-10T09:30:00Z"),
		mustInstant(t, "2024-06-10T10:00:00Z"),
	}, slots)
}

func TestComputeSlots_Deterministic(t *testing.T) {
	now := mustInstant(t, "2024-06-10T08:00:00Z")
	rules := []models.AvailabilityRule{
		mondayRule("09:00:00", "12:00:00"),
		mondayRule("13:00:00", "17:00:00"),
	}
	appts := []models.Appointment{booked("2024-06-10T14:00:00Z", "2024-06-10T15:00:00Z")}

	first, err := ComputeSlots(utcConfig(30, 10), rules, appts, monday, time.UTC, now)
	require.NoError(t, err)
	second, err := ComputeSlots(utcConfig(30, 10), rules, appts, monday, time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Before(first[i]), "slots must be sorted ascending")
	}
}

// A calendar-local Monday evening rule in New York lands on Tuesday in UTC.
// The viewer asking for Tuesday must see it.
func TestComputeSlots_CalendarZoneShiftsIntoNextViewerDay(t *testing.T) {
	cfg := models.CalendarConfig{DurationMinutes: 30, BufferMinutes: 0, Timezone: "America/New_York"}
	rules := []models.AvailabilityRule{mondayRule("22:00:00", "23:59:59")}
	now := mustInstant(t, "2024-06-10T00:00:00Z")

	slots, err := ComputeSlots(cfg, rules, nil, "2024-06-11", time.UTC, now)
	require.NoError(t, err)

	// Monday 22:00/22:30/23:00 EDT == Tuesday 02:00/02:30/03:00 UTC. The
	// 23:30 step would end past the window and is dropped.
	assert.Equal(t, []time.Time{
		mustInstant(t, "2024-06-11T02:00:00Z"),
		mustInstant(t, "2024-06-11T02:30:00Z"),
		mustInstant(t, "2024-06-11T03:00:00Z"),
	}, slots)
}

// A viewer east of the calendar zone sees only the portion of the UTC Monday
// that falls on their own Monday.
func TestComputeSlots_ViewerZoneFiltersSlots(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	now := mustInstant(t, "2024-06-09T00:00:00Z")

	slots, err := ComputeSlots(
		utcConfig(30, 0),
		[]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")},
		nil, monday, tokyo, now,
	)
	require.NoError(t, err)

	// Tokyo's 2024-06-10 spans [2024-06-09T15:00Z, 2024-06-10T15:00Z); only
	// the 09:00-14:30 UTC starts fall inside it.
	require.Len(t, slots, 12)
	assert.Equal(t, mustInstant(t, "2024-06-10T09:00:00Z"), slots[0])
	assert.Equal(t, mustInstant(t, "2024-06-10T14:30:00Z"), slots[11])
}

func TestComputeSlots_InvalidInputs(t *testing.T) {
	rules := []models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")}

	_, err := ComputeSlots(utcConfig(0, 0), rules, nil, monday, time.UTC, time.Time{})
	assert.Error(t, err)

	_, err = ComputeSlots(models.CalendarConfig{DurationMinutes: 30, Timezone: "Not/AZone"}, rules, nil, monday, time.UTC, time.Time{})
	assert.Error(t, err)

	_, err = ComputeSlots(utcConfig(30, 0), rules, nil, "10-06-2024", time.UTC, time.Time{})
	assert.Error(t, err)

	bad := []models.AvailabilityRule{{DayOfWeek: 1, StartTime: "9am", EndTime: "5pm"}}
	_, err = ComputeSlots(utcConfig(30, 0), bad, nil, monday, time.UTC, time.Time{})
	assert.Error(t, err)
}

func TestValidateRules(t *testing.T) {
	assert.NoError(t, ValidateRules(nil))
	assert.NoError(t, ValidateRules([]models.AvailabilityRule{mondayRule("09:00:00", "17:00:00")}))
	assert.NoError(t, ValidateRules([]models.AvailabilityRule{mondayRule("09:00", "17:00")}))

	assert.Error(t, ValidateRules([]models.AvailabilityRule{{DayOfWeek: 7, StartTime: "09:00:00", EndTime: "17:00:00"}}))
	assert.Error(t, ValidateRules([]models.AvailabilityRule{mondayRule("nine", "17:00:00")}))
	assert.Error(t, ValidateRules([]models.AvailabilityRule{mondayRule("09:00:00", "late")}))
}
