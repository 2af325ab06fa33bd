package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

type conflictStoreStub struct {
	roomOccupied bool
	exactSeats   []models.PanelSeat
}

func (s *conflictStoreStub) HasRoomOverlap(ctx context.Context, date time.Time, roomID, start, end string) (bool, error) {
	return s.roomOccupied, nil
}

func (s *conflictStoreStub) ListSeatsExact(ctx context.Context, date time.Time, start, end string) ([]models.PanelSeat, error) {
	return s.exactSeats, nil
}

func TestConflictValidatorIsSlotAvailable(t *testing.T) {
	slot := models.TimeSlot{Date: monday, StartTime: "08:00", EndTime: "09:30", RoomID: "r1"}

	free, err := NewConflictValidator(&conflictStoreStub{}, nil).IsSlotAvailable(context.Background(), slot)
	require.NoError(t, err)
	assert.True(t, free)

	taken, err := NewConflictValidator(&conflictStoreStub{roomOccupied: true}, nil).IsSlotAvailable(context.Background(), slot)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestConflictValidatorValidateNoConflict(t *testing.T) {
	slot := models.TimeSlot{Date: monday, StartTime: "08:00", EndTime: "09:30", RoomID: "r1"}
	store := &conflictStoreStub{exactSeats: []models.PanelSeat{seat("X", "08:00", "09:30")}}
	validator := NewConflictValidator(store, nil)

	ok, err := validator.ValidateNoConflict(context.Background(), slot, []string{"A", "B", "C"}, []string{"D"})
	require.NoError(t, err)
	assert.True(t, ok)

	// A proposed examiner already sits on a panel at the same tuple.
	ok, err = validator.ValidateNoConflict(context.Background(), slot, []string{"A", "X", "C"}, []string{"D"})
	require.NoError(t, err)
	assert.False(t, ok)

	// The candidate's own advisor clashing counts too.
	ok, err = validator.ValidateNoConflict(context.Background(), slot, []string{"A", "B", "C"}, []string{"X"})
	require.NoError(t, err)
	assert.False(t, ok)
}
