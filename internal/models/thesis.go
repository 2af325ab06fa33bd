package models

import "time"

// ThesisRoleName names a lecturer's role on a thesis. Advisor1 chairs
// the defense panel and is never eligible as examiner for their own
// advisee.
type ThesisRoleName string

const (
	RoleAdvisor1  ThesisRoleName = "advisor1"
	RoleAdvisor2  ThesisRoleName = "advisor2"
	RoleExaminer1 ThesisRoleName = "examiner1"
	RoleExaminer2 ThesisRoleName = "examiner2"
	RoleExaminer3 ThesisRoleName = "examiner3"
)

// ExaminerRoles lists the three examiner seats in assignment order.
var ExaminerRoles = []ThesisRoleName{RoleExaminer1, RoleExaminer2, RoleExaminer3}

// PanelRoles lists the roles that occupy a person during a defense:
// the three examiners plus the chairing first advisor.
var PanelRoles = []ThesisRoleName{RoleExaminer1, RoleExaminer2, RoleExaminer3, RoleAdvisor1}

// Thesis ties a student to their final project within a period.
type Thesis struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	PeriodID  string    `db:"period_id" json:"period_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ThesisRole links a lecturer to a thesis under one role.
type ThesisRole struct {
	ID         string         `db:"id" json:"id"`
	ThesisID   string         `db:"thesis_id" json:"thesis_id"`
	LecturerID string         `db:"lecturer_id" json:"lecturer_id"`
	Role       ThesisRoleName `db:"role" json:"role"`
}
