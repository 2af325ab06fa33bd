package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() ScheduleSettings {
	return defaultScheduleSettings()
}

// 2026-09-07 is a Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestSlotGeneratorDefaultDay(t *testing.T) {
	gen := NewSlotGenerator()
	slots := gen.Generate(monday, testSettings(), []string{"room-1"})

	require.Len(t, slots, 4)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.Equal(t, "09:45", slots[1].StartTime)
	assert.Equal(t, "13:15", slots[3].StartTime)
	assert.Equal(t, "14:45", slots[3].EndTime)
	for _, slot := range slots {
		assert.Equal(t, "room-1", slot.RoomID)
		assert.Equal(t, monday, slot.Date)
	}
}

func TestSlotGeneratorIsDeterministic(t *testing.T) {
	gen := NewSlotGenerator()
	cfg := testSettings()
	first := gen.Generate(monday, cfg, []string{"a", "b"})
	second := gen.Generate(monday, cfg, []string{"a", "b"})
	assert.Equal(t, first, second)
}

func TestSlotGeneratorPerRoomRuns(t *testing.T) {
	gen := NewSlotGenerator()
	slots := gen.Generate(monday, testSettings(), []string{"a", "b"})

	require.Len(t, slots, 8)
	for i := 0; i < 4; i++ {
		assert.Equal(t, "a", slots[i].RoomID)
	}
	for i := 4; i < 8; i++ {
		assert.Equal(t, "b", slots[i].RoomID)
	}
	// Each room restarts its own walk at day start.
	assert.Equal(t, slots[0].StartTime, slots[4].StartTime)
}

func TestSlotGeneratorFixedHoliday(t *testing.T) {
	gen := NewSlotGenerator()
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	slots := gen.Generate(saturday, testSettings(), []string{"room-1"})
	assert.Empty(t, slots)
}

func TestSlotGeneratorSpecialHoliday(t *testing.T) {
	gen := NewSlotGenerator()
	cfg := testSettings()
	cfg.SpecialHolidays = []SpecialHoliday{{Date: "2026-09-07", Label: "campus event"}}
	slots := gen.Generate(monday, cfg, []string{"room-1"})
	assert.Empty(t, slots)
}

func TestSlotGeneratorBreakSkipsForward(t *testing.T) {
	gen := NewSlotGenerator()
	cfg := testSettings()
	cfg.Breaks = []BreakWindow{{Trigger: "09:30", DurationMinutes: 30}}

	slots := gen.Generate(monday, cfg, []string{"room-1"})
	require.Len(t, slots, 3)
	assert.Equal(t, "08:00", slots[0].StartTime)
	// A slot ending exactly at the trigger resumes after the break,
	// without the usual buffer.
	assert.Equal(t, "10:00", slots[1].StartTime)
	assert.Equal(t, "11:30", slots[1].EndTime)
	assert.Equal(t, "13:15", slots[2].StartTime)
}

func TestSlotGeneratorWeekdayOverride(t *testing.T) {
	gen := NewSlotGenerator()
	cfg := testSettings()
	cfg.WeekdayOverrides = []WeekdayOverride{{Weekday: "senin", DayStart: "09:00", DayEnd: "12:00"}}

	slots := gen.Generate(monday, cfg, []string{"room-1"})
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:30", slots[0].EndTime)

	// Other weekdays keep the defaults.
	tuesday := monday.AddDate(0, 0, 1)
	assert.Len(t, gen.Generate(tuesday, cfg, []string{"room-1"}), 4)
}

func TestSlotGeneratorOverrideShortensDuration(t *testing.T) {
	gen := NewSlotGenerator()
	cfg := testSettings()
	duration := 60
	buffer := 0
	cfg.WeekdayOverrides = []WeekdayOverride{{
		Weekday: "senin", DayStart: "08:00", DayEnd: "10:00",
		DurationMinutes: &duration, BufferMinutes: &buffer,
	}}

	slots := gen.Generate(monday, cfg, []string{"room-1"})
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[1].StartTime)
	assert.Equal(t, "10:00", slots[1].EndTime)
}

func TestSlotGeneratorDurationLongerThanWindow(t *testing.T) {
	gen := NewSlotGenerator()
	cfg := testSettings()
	cfg.DurationMinutes = 480
	slots := gen.Generate(monday, cfg, []string{"room-1"})
	assert.Empty(t, slots)
}
