package services

import (
	"testing"
	"time"

	"github.com/codeverse-academy/academy-service/internal/models"
)

func TestSessionDate(t *testing.T) {
	anchor := time.Date(2025, 9, 1, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		orderIndex int
		want       time.Time
	}{
		{name: "first session lands on anchor", orderIndex: 1, want: anchor},
		{name: "second session one week later", orderIndex: 2, want: anchor.AddDate(0, 0, 7)},
		{name: "fifth session four weeks later", orderIndex: 5, want: anchor.AddDate(0, 0, 28)},
		{name: "zero index falls back to anchor", orderIndex: 0, want: anchor},
		{name: "negative index falls back to anchor", orderIndex: -3, want: anchor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionDate(anchor, tt.orderIndex); !got.Equal(tt.want) {
				t.Errorf("SessionDate(%d) = %v, want %v", tt.orderIndex, got, tt.want)
			}
		})
	}
}

func TestBuildScheduleMergesTracksChronologically(t *testing.T) {
	// Track A starts first but its second session lands after track B's
	// first, so the merged schedule interleaves them.
	startA := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	startB := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	groupTracks := []*models.GroupTrack{
		{
			TrackID:   "track-a",
			StartDate: startA,
			Track: models.Track{
				ID:    "track-a",
				Title: "Python",
				Sessions: []models.Session{
					{ID: "a1", Title: "Variables", OrderIndex: 1},
					{ID: "a2", Title: "Loops", OrderIndex: 2},
				},
			},
		},
		{
			TrackID:   "track-b",
			StartDate: startB,
			Track: models.Track{
				ID:    "track-b",
				Title: "Robotics",
				Sessions: []models.Session{
					{ID: "b1", Title: "Motors", OrderIndex: 1},
				},
			},
		},
	}

	schedule := buildSchedule(groupTracks)
	if len(schedule) != 3 {
		t.Fatalf("buildSchedule() returned %d sessions, want 3", len(schedule))
	}

	wantOrder := []string{"a1", "b1", "a2"}
	for i, want := range wantOrder {
		if schedule[i].SessionID != want {
			t.Errorf("schedule[%d].SessionID = %s, want %s", i, schedule[i].SessionID, want)
		}
	}

	if !schedule[2].Date.Equal(startA.AddDate(0, 0, 7)) {
		t.Errorf("schedule[2].Date = %v, want one week after track start", schedule[2].Date)
	}
	if schedule[1].TrackTitle != "Robotics" {
		t.Errorf("schedule[1].TrackTitle = %s, want Robotics", schedule[1].TrackTitle)
	}
}

func TestBuildScheduleEmpty(t *testing.T) {
	if schedule := buildSchedule(nil); len(schedule) != 0 {
		t.Errorf("buildSchedule(nil) = %v, want empty", schedule)
	}
}
