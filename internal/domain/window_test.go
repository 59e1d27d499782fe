package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	w, err := NewWindow("2024-01-01", "10:00", 2, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), w.StartAt)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), w.EndAt)
}

func TestNewWindow_UnpaddedFields(t *testing.T) {
	w, err := NewWindow("2024-1-5", "9:05", 1, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 5, 9, 5, 0, 0, time.UTC), w.StartAt)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 5, 0, 0, time.UTC), w.EndAt)
}

func TestNewWindow_CrossesMidnight(t *testing.T) {
	w, err := NewWindow("2024-02-28", "23:30", 3, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 29, 2, 30, 0, 0, time.UTC), w.EndAt)
}

func TestNewWindow_Errors(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		time     string
		duration int
		wantErr  error
	}{
		{name: "bad date", date: "2024-13-01", time: "10:00", duration: 1, wantErr: ErrInvalidTimeFormat},
		{name: "bad time", date: "2024-01-01", time: "25:00", duration: 1, wantErr: ErrInvalidTimeFormat},
		{name: "empty", date: "", time: "", duration: 1, wantErr: ErrInvalidTimeFormat},
		{name: "wrong layout", date: "01/01/2024", time: "10:00", duration: 1, wantErr: ErrInvalidTimeFormat},
		{name: "zero duration", date: "2024-01-01", time: "10:00", duration: 0, wantErr: ErrInvalidDuration},
		{name: "negative duration", date: "2024-01-01", time: "10:00", duration: -2, wantErr: ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindow(tt.date, tt.time, tt.duration, time.UTC)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWindow_Elapsed(t *testing.T) {
	w, err := NewWindow("2024-01-01", "10:00", 2, time.UTC)
	require.NoError(t, err)

	assert.False(t, w.Elapsed(time.Date(2024, 1, 1, 11, 59, 0, 0, time.UTC)))
	assert.True(t, w.Elapsed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, w.Elapsed(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
}
