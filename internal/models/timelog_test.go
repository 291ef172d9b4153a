package models

import (
	"testing"
	"time"
)

func TestClockState(t *testing.T) {
	tests := []struct {
		name   string
		latest *TimeLog
		want   TimeLogType
	}{
		{name: "no punches means clocked out", latest: nil, want: ClockOut},
		{
			name:   "latest clock in",
			latest: &TimeLog{Type: ClockIn, Timestamp: time.Now()},
			want:   ClockIn,
		},
		{
			name:   "latest clock out",
			latest: &TimeLog{Type: ClockOut, Timestamp: time.Now()},
			want:   ClockOut,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClockState(tt.latest); got != tt.want {
				t.Errorf("ClockState() = %v, want %v", got, tt.want)
			}
		})
	}
}
