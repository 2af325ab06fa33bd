package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

func newScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func testCandidate() models.Candidate {
	return models.Candidate{
		DefenseID: "def-1", ThesisID: "t1", StudentID: "s1",
		StudentName: "Alice", NIM: "101",
		Advisor1ID: "L4", Advisor1Name: "Dr. Dina",
	}
}

func testSlot() models.TimeSlot {
	return models.TimeSlot{
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "08:00",
		EndTime:   "09:30",
		RoomID:    "room-1",
	}
}

func TestScheduleRepositoryCreateAssignment(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	slot := testSlot()
	examiners := [3]string{"L1", "L2", "L3"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM defense_schedules WHERE date = $1 AND room_id = $2")).
		WithArgs(slot.Date, "room-1", "08:00", "09:30").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM defense_schedules sch")).
		WithArgs(slot.Date, "08:00", "09:30", "L1", "L2", "L3", "L4").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM thesis_roles WHERE thesis_id = $1")).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO defense_schedules")).
		WithArgs(sqlmock.AnyArg(), "def-1", "p1", slot.Date, "08:00", "09:30", "room-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	for _, examinerID := range examiners {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO thesis_roles")).
			WithArgs(sqlmock.AnyArg(), "t1", examinerID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE defenses SET status = 'scheduled'")).
		WithArgs("def-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET defense_scheduled = TRUE")).
		WithArgs("s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, name := range []string{"Dr. Satu", "Dr. Dua", "Dr. Tiga"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM lecturers WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(name))
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM rooms WHERE id = $1")).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Lab 1"))
	mock.ExpectCommit()

	record, err := repo.CreateAssignment(context.Background(), testCandidate(), slot, "p1", examiners)
	require.NoError(t, err)
	assert.Equal(t, "def-1", record.Schedule.DefenseID)
	assert.Equal(t, "08:00", record.Schedule.StartTime)
	assert.Equal(t, "Lab 1", record.RoomName)
	assert.Equal(t, [3]string{"Dr. Satu", "Dr. Dua", "Dr. Tiga"}, record.ExaminerNames)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCreateAssignmentRoomConflict(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM defense_schedules WHERE date = $1 AND room_id = $2")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.CreateAssignment(context.Background(), testCandidate(), testSlot(), "p1", [3]string{"L1", "L2", "L3"})
	require.Error(t, err)
	var conflict *models.BookingConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "ROOM", conflict.Dimension)
	assert.Equal(t, "Alice", conflict.StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCreateAssignmentLecturerConflict(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM defense_schedules WHERE date = $1 AND room_id = $2")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM defense_schedules sch")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.CreateAssignment(context.Background(), testCandidate(), testSlot(), "p1", [3]string{"L1", "L2", "L3"})
	require.Error(t, err)
	var conflict *models.BookingConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "LECTURER", conflict.Dimension)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryHasRoomOverlap(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	date := time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM defense_schedules")).
		WithArgs(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "room-1", "08:00", "09:30").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	occupied, err := repo.HasRoomOverlap(context.Background(), date, "room-1", "08:00", "09:30")
	require.NoError(t, err)
	assert.True(t, occupied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryMoveFromDate(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE defense_schedules SET date = date +")).
		WithArgs(from, 7).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	count, err := repo.MoveFromDate(context.Background(), from, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListBoard(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{
		"schedule_id", "defense_id", "student_name", "nim",
		"date", "start_time", "end_time", "room_name",
		"secretary", "member1", "member2", "member3",
	}).AddRow("sch-1", "def-1", "Alice", "101",
		time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "08:00", "09:30", "Lab 1",
		"Dr. Dina", "Dr. Satu", "Dr. Dua", "Dr. Tiga")
	mock.ExpectQuery(regexp.QuoteMeta("FROM defense_schedules sch")).
		WithArgs("p1").
		WillReturnRows(rows)

	board, err := repo.ListBoard(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Alice", board[0].StudentName)
	assert.Equal(t, "Dr. Dina", board[0].Secretary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
