package models

import "testing"

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want int
	}{
		{name: "zero xp is level one", xp: 0, want: 1},
		{name: "just below threshold", xp: 999, want: 1},
		{name: "exact threshold advances", xp: 1000, want: 2},
		{name: "mid second level", xp: 1500, want: 2},
		{name: "high xp", xp: 9999, want: 10},
		{name: "negative clamps to level one", xp: -50, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.xp); got != tt.want {
				t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want float64
	}{
		{name: "zero", xp: 0, want: 0},
		{name: "mid level", xp: 500, want: 50},
		{name: "just below threshold", xp: 999, want: 99.9},
		{name: "threshold wraps to zero", xp: 1000, want: 0},
		{name: "second level progress", xp: 1250, want: 25},
		{name: "negative clamps to zero", xp: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelProgress(tt.xp); got != tt.want {
				t.Errorf("LevelProgress(%d) = %v, want %v", tt.xp, got, tt.want)
			}
		})
	}
}
