package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error with HTTP awareness. Detail carries
// machine-readable fields so callers can render a failure without
// re-deriving its cause.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Hint    string         `json:"hint,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
	Err     error          `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// WithDetail returns a copy carrying a hint and detail fields.
func (e *Error) WithDetail(hint string, detail map[string]any) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Hint = hint
	clone.Detail = detail
	return &clone
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss  = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// Scheduling infeasibility, reported before the orchestrator starts.
	ErrNoReadyStudents      = New("NO_READY_STUDENTS", http.StatusUnprocessableEntity, "no students are ready for defense")
	ErrNoRooms              = New("NO_ROOMS", http.StatusUnprocessableEntity, "no defense rooms are configured")
	ErrNoLecturers          = New("NO_LECTURERS", http.StatusUnprocessableEntity, "no lecturers exist in the system")
	ErrAllDaysHoliday       = New("ALL_DAYS_HOLIDAY", http.StatusUnprocessableEntity, "every weekday is configured as a holiday")
	ErrWindowTooShort       = New("OPERATING_WINDOW_TOO_SHORT", http.StatusUnprocessableEntity, "operating hours are shorter than one defense session")
	ErrNoDailySlots         = New("NO_DAILY_SLOTS", http.StatusUnprocessableEntity, "configuration yields zero time slots per day")
	ErrExaminerCapacity     = New("EXAMINER_CAPACITY_INSUFFICIENT", http.StatusUnprocessableEntity, "examiner capacity cannot cover the ready students")
	ErrAdvisorOverload      = New("ADVISOR_OVERLOAD", http.StatusUnprocessableEntity, "one or more advisors supervise more students than allowed")
	ErrHorizonExhausted     = New("SCHEDULE_HORIZON_EXHAUSTED", http.StatusUnprocessableEntity, "could not place every student within the scheduling horizon")
	ErrScheduleConflict     = New("SCHEDULE_CONFLICT", http.StatusConflict, "the requested slot is already booked")
	ErrExaminersNotDistinct = New("EXAMINERS_NOT_DISTINCT", http.StatusBadRequest, "examiners must be three distinct lecturers")
	ErrExaminerIsAdvisor    = New("EXAMINER_IS_ADVISOR", http.StatusBadRequest, "an advisor cannot examine their own advisee")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
