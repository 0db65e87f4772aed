package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancy(t *testing.T) {
	e := newEngine(t)
	tables := []Table{
		{ID: 3, Capacity: 4, Label: "10", Active: true},
		{ID: 1, Capacity: 2, Label: "2", Active: true},
		{ID: 2, Capacity: 4, Label: "3", Active: true},
		{ID: 4, Capacity: 6, Label: "4", Active: false},
	}
	bookings := []Booking{
		booking(100, 1, "19:00", "21:00"),
		booking(101, 2, "17:00", "19:30"),
		booking(102, 2, "22:00", ""),
		booking(103, 3, "21:00", "22:00"),
	}

	states, err := e.Occupancy(day, "20:00", tables, bookings)
	require.NoError(t, err)
	require.Len(t, states, 4)

	assert.Equal(t, "2", states[0].Table.Label)
	assert.Equal(t, TableOccupied, states[0].Status)
	assert.Equal(t, int64(100), states[0].Current.ID)
	assert.Nil(t, states[0].Next)

	assert.Equal(t, "3", states[1].Table.Label)
	assert.Equal(t, TableTurnover, states[1].Status)
	assert.Nil(t, states[1].Current)
	assert.Equal(t, int64(102), states[1].Next.ID)

	assert.Equal(t, "4", states[2].Table.Label)
	assert.Equal(t, TableInactive, states[2].Status)

	assert.Equal(t, "10", states[3].Table.Label)
	assert.Equal(t, TableTurnover, states[3].Status)
	assert.Equal(t, int64(103), states[3].Next.ID)
}

func TestOccupancyRejectsBadInput(t *testing.T) {
	e := newEngine(t)

	_, err := e.Occupancy("yesterday", "20:00", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = e.Occupancy(day, "8pm", nil, nil)
	assert.Error(t, err)
}
