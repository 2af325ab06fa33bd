package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

// weekdayNames indexes time.Weekday (Sunday first) to the names used in
// the settings store.
var weekdayNames = [7]string{"minggu", "senin", "selasa", "rabu", "kamis", "jumat", "sabtu"}

// SlotGenerator expands one calendar day into candidate time slots. It
// is a pure computation over the configuration; two calls with the same
// inputs always produce the same ordered slot list.
type SlotGenerator struct{}

// NewSlotGenerator constructs the generator.
func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// IsHoliday reports whether the date is blocked by a fixed weekday
// holiday or a special holiday date.
func (g *SlotGenerator) IsHoliday(date time.Time, cfg ScheduleSettings) bool {
	weekday := weekdayNames[int(date.Weekday())]
	for _, day := range cfg.FixedHolidays {
		if strings.EqualFold(day, weekday) {
			return true
		}
	}
	dateStr := date.Format("2006-01-02")
	for _, holiday := range cfg.SpecialHolidays {
		if holiday.Date == dateStr {
			return true
		}
	}
	return false
}

// Generate returns the ordered candidate slots for a date, one run of
// slots per room. Holidays yield no slots, as does a defense duration
// longer than the operating window.
func (g *SlotGenerator) Generate(date time.Time, cfg ScheduleSettings, roomIDs []string) []models.TimeSlot {
	if g.IsHoliday(date, cfg) {
		return nil
	}

	dayStart := cfg.DayStart
	dayEnd := cfg.DayEnd
	duration := cfg.DurationMinutes
	buffer := cfg.BufferMinutes
	breaks := cfg.Breaks

	weekday := weekdayNames[int(date.Weekday())]
	for _, override := range cfg.WeekdayOverrides {
		if !strings.EqualFold(override.Weekday, weekday) {
			continue
		}
		dayStart = override.DayStart
		dayEnd = override.DayEnd
		if override.DurationMinutes != nil {
			duration = *override.DurationMinutes
		}
		if override.BufferMinutes != nil {
			buffer = *override.BufferMinutes
		}
		breaks = override.Breaks
		break
	}

	startMinutes := parseClock(dayStart)
	endMinutes := parseClock(dayEnd)
	step := duration + buffer

	breakAt := make(map[int]int, len(breaks))
	for _, b := range breaks {
		breakAt[parseClock(b.Trigger)] = b.DurationMinutes
	}

	var slots []models.TimeSlot
	for _, roomID := range roomIDs {
		current := startMinutes
		for current+duration <= endMinutes {
			slotEnd := current + duration
			slots = append(slots, models.TimeSlot{
				Date:      date,
				StartTime: formatClock(current),
				EndTime:   formatClock(slotEnd),
				RoomID:    roomID,
			})
			if pause, ok := breakAt[slotEnd]; ok {
				current = slotEnd + pause
			} else {
				current += step
			}
		}
	}
	return slots
}

// parseClock converts "HH:MM" to minutes since midnight. Malformed
// parts read as zero, matching the defensive settings parsing.
func parseClock(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour*60 + minute
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
