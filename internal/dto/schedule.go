package dto

// ScheduleResultRow is the human-readable outcome for one placed
// student: the full panel, the formatted day+date, time range and room.
type ScheduleResultRow struct {
	Student   string `json:"student"`
	NIM       string `json:"nim"`
	Secretary string `json:"secretary"`
	Member1   string `json:"member1"`
	Member2   string `json:"member2"`
	Member3   string `json:"member3"`
	DayDate   string `json:"day_date"`
	Time      string `json:"time"`
	Room      string `json:"room"`
}

// DiagnosticInfo summarises the feasibility pre-analysis of a run that
// was allowed to proceed.
type DiagnosticInfo struct {
	StudentsReady  int                 `json:"students_ready"`
	TotalLecturers int                 `json:"total_lecturers"`
	RoomCount      int                 `json:"room_count"`
	WorkingDays    int                 `json:"working_days"`
	SlotsPerDay    int                 `json:"slots_per_day"`
	EstimatedDays  int                 `json:"estimated_days"`
	Warnings       *DiagnosticWarnings `json:"warnings,omitempty"`
}

// DiagnosticWarnings carries advisory (non-blocking) findings.
type DiagnosticWarnings struct {
	Problems    []string `json:"problems"`
	Suggestions []string `json:"suggestions"`
}

// GenerateResponse is the payload of a successful automatic run.
type GenerateResponse struct {
	Rows []ScheduleResultRow `json:"rows"`
	Info DiagnosticInfo      `json:"info"`
}

// UpdateScheduleRequest patches one schedule. Omitted fields keep their
// current value; the three examiners must be supplied together.
type UpdateScheduleRequest struct {
	Date       *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime  *string `json:"start_time" validate:"omitempty,len=5"`
	EndTime    *string `json:"end_time" validate:"omitempty,len=5"`
	RoomID     *string `json:"room_id" validate:"omitempty,min=1"`
	Examiner1  *string `json:"examiner1" validate:"omitempty,min=1"`
	Examiner2  *string `json:"examiner2" validate:"omitempty,min=1"`
	Examiner3  *string `json:"examiner3" validate:"omitempty,min=1"`
}

// MoveScheduleRequest shifts every schedule on or after FromDate so the
// first moved day lands on ToDate, preserving relative offsets.
type MoveScheduleRequest struct {
	FromDate string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"required,datetime=2006-01-02"`
}

// SwapScheduleRequest exchanges the slots of two schedules.
type SwapScheduleRequest struct {
	ScheduleID1 string `json:"schedule_id_1" validate:"required"`
	ScheduleID2 string `json:"schedule_id_2" validate:"required"`
}

// DeleteScheduleRequest removes one schedule with an operator reason.
type DeleteScheduleRequest struct {
	Reason string `json:"reason"`
}

// EditOptions lists the pickers an operator needs to edit a schedule.
type EditOptions struct {
	Students  []OptionItem `json:"students"`
	Lecturers []OptionItem `json:"lecturers"`
	Rooms     []OptionItem `json:"rooms"`
}

// OptionItem is a generic id/name picker entry.
type OptionItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	NIM  string `json:"nim,omitempty"`
}
