package models

import (
	"fmt"
	"time"
)

// TimeSlot is an ephemeral candidate (date, time range, room) produced
// by the slot generator. It is never persisted until assigned.
type TimeSlot struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	RoomID    string    `json:"room_id"`
}

// DefenseSchedule is the persisted assignment of a defense to a
// (date, time range, room). Times are wall-clock "HH:MM" strings; the
// date column carries no time component.
type DefenseSchedule struct {
	ID        string    `db:"id" json:"id"`
	DefenseID string    `db:"defense_id" json:"defense_id"`
	PeriodID  string    `db:"period_id" json:"period_id"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	RoomID    string    `db:"room_id" json:"room_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PanelSeat is one (schedule, occupied lecturer) pair on a given date.
// The availability resolver and conflict validator consume these flat
// rows and group them by schedule.
type PanelSeat struct {
	ScheduleID   string         `db:"schedule_id"`
	ThesisID     string         `db:"thesis_id"`
	Date         time.Time      `db:"date"`
	StartTime    string         `db:"start_time"`
	EndTime      string         `db:"end_time"`
	RoomID       string         `db:"room_id"`
	LecturerID   string         `db:"lecturer_id"`
	LecturerName string         `db:"lecturer_name"`
	Role         ThesisRoleName `db:"role"`
	StudentName  string         `db:"student_name"`
}

// ScheduleDetail is a schedule joined with its defense, thesis, student
// and advisor identities, as loaded by the manual-edit paths.
type ScheduleDetail struct {
	Schedule    DefenseSchedule
	DefenseID   string
	ThesisID    string
	StudentID   string
	StudentName string
	NIM         string
	AdvisorIDs  []string
}

// BoardRow is one line of the schedule board as shown to operators.
type BoardRow struct {
	ScheduleID  string    `db:"schedule_id" json:"schedule_id"`
	DefenseID   string    `db:"defense_id" json:"defense_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	NIM         string    `db:"nim" json:"nim"`
	Date        time.Time `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	RoomName    string    `db:"room_name" json:"room_name"`
	Secretary   string    `db:"secretary" json:"secretary"`
	Member1     string    `db:"member1" json:"member1"`
	Member2     string    `db:"member2" json:"member2"`
	Member3     string    `db:"member3" json:"member3"`
}

// AssignmentRecord is what the assignment transaction hands back for
// display formatting: the created schedule plus resolved names.
type AssignmentRecord struct {
	Schedule      DefenseSchedule
	RoomName      string
	ExaminerNames [3]string
}

// BookingConflictError names the schedule already occupying a requested
// slot so an operator sees exactly what clashes.
type BookingConflictError struct {
	Dimension    string `json:"dimension"` // ROOM or LECTURER
	StudentName  string `json:"student_name"`
	RoomName     string `json:"room_name,omitempty"`
	LecturerName string `json:"lecturer_name,omitempty"`
}

// Error implements the error interface.
func (e *BookingConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Dimension == "ROOM" {
		return fmt.Sprintf("room %s is already booked for %s's defense at that time", e.RoomName, e.StudentName)
	}
	return fmt.Sprintf("lecturer %s is already assigned to %s's defense at that time", e.LecturerName, e.StudentName)
}
