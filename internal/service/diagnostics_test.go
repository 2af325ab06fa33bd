package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

func diagnosticInput() DiagnosticInput {
	cfg := defaultScheduleSettings()
	cfg.RoomNames = []string{"Lab 1"}
	return DiagnosticInput{
		StudentsReady:     1,
		TotalLecturers:    10,
		MaxActiveAdvisees: 4,
		Settings:          cfg,
	}
}

func TestDiagnosticsHappyPath(t *testing.T) {
	info, err := NewDiagnostics().Run(diagnosticInput())
	require.Nil(t, err)
	assert.Equal(t, 1, info.StudentsReady)
	assert.Equal(t, 10, info.TotalLecturers)
	assert.Equal(t, 1, info.RoomCount)
	assert.Equal(t, 5, info.WorkingDays)
	// 420 minutes / 105 per session, one room.
	assert.Equal(t, 4, info.SlotsPerDay)
	assert.Equal(t, 1, info.EstimatedDays)
	assert.Nil(t, info.Warnings)
}

func TestDiagnosticsNoStudents(t *testing.T) {
	in := diagnosticInput()
	in.StudentsReady = 0
	_, err := NewDiagnostics().Run(in)
	require.NotNil(t, err)
	assert.Equal(t, appErrors.ErrNoReadyStudents.Code, err.Code)
}

func TestDiagnosticsNoRooms(t *testing.T) {
	in := diagnosticInput()
	in.Settings.RoomNames = nil
	_, err := NewDiagnostics().Run(in)
	require.NotNil(t, err)
	assert.Equal(t, appErrors.ErrNoRooms.Code, err.Code)
}

func TestDiagnosticsNoLecturers(t *testing.T) {
	in := diagnosticInput()
	in.TotalLecturers = 0
	_, err := NewDiagnostics().Run(in)
	require.NotNil(t, err)
	assert.Equal(t, appErrors.ErrNoLecturers.Code, err.Code)
}

func TestDiagnosticsAllDaysHoliday(t *testing.T) {
	in := diagnosticInput()
	in.Settings.FixedHolidays = []string{"senin", "selasa", "rabu", "kamis", "jumat", "sabtu", "minggu"}
	_, err := NewDiagnostics().Run(in)
	require.NotNil(t, err)
	assert.Equal(t, appErrors.ErrAllDaysHoliday.Code, err.Code)
}

func TestDiagnosticsWindowTooShort(t *testing.T) {
	in := diagnosticInput()
	in.Settings.DayStart = "08:00"
	in.Settings.DayEnd = "09:00"
	_, err := NewDiagnostics().Run(in)
	require.NotNil(t, err)
	assert.Equal(t, appErrors.ErrWindowTooShort.Code, err.Code)
}

func TestDiagnosticsCapacityMargin(t *testing.T) {
	// 12 students x 3 examiners = 36 slots. With 10 lecturers each
	// advising up to 4 students the margin is 40%, so 51 slots are
	// required against a capacity of 10 x 4 = 40.
	in := diagnosticInput()
	in.StudentsReady = 12
	_, err := NewDiagnostics().Run(in)
	require.NotNil(t, err)
	assert.Equal(t, appErrors.ErrExaminerCapacity.Code, err.Code)
	assert.Equal(t, 6, err.Detail["minimum_quota"])
	assert.Equal(t, 36, err.Detail["slots_needed"])
	assert.Equal(t, 51, err.Detail["slots_needed_with_margin"])
	assert.Equal(t, 40, err.Detail["examiner_capacity"])
}

func TestDiagnosticsLongHorizonAdvisory(t *testing.T) {
	in := diagnosticInput()
	in.StudentsReady = 300
	in.TotalLecturers = 300
	in.MaxActiveAdvisees = 1
	info, err := NewDiagnostics().Run(in)
	require.Nil(t, err)
	assert.Equal(t, 75, info.EstimatedDays)
	require.NotNil(t, info.Warnings)
	assert.NotEmpty(t, info.Warnings.Problems)
	assert.NotEmpty(t, info.Warnings.Suggestions)
}
