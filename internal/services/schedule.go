package services

import (
	"sort"
	"time"

	"github.com/codeverse-academy/academy-service/internal/models"
)

// SessionDate derives the calendar date of a session from the track's
// anchor date: one week apart per order index, the first session landing on
// the anchor itself. A non-positive order index falls back to the anchor.
func SessionDate(startDate time.Time, orderIndex int) time.Time {
	if orderIndex <= 0 {
		return startDate
	}
	return startDate.AddDate(0, 0, 7*(orderIndex-1))
}

// buildSchedule flattens every assigned track into dated sessions and
// merges them chronologically. Ties keep track assignment order, then
// session order.
func buildSchedule(groupTracks []*models.GroupTrack) []ScheduledSession {
	schedule := make([]ScheduledSession, 0)
	for _, gt := range groupTracks {
		for _, session := range gt.Track.Sessions {
			schedule = append(schedule, ScheduledSession{
				SessionID:  session.ID,
				Title:      session.Title,
				Link:       session.Link,
				OrderIndex: session.OrderIndex,
				TrackID:    gt.TrackID,
				TrackTitle: gt.Track.Title,
				Date:       SessionDate(gt.StartDate, session.OrderIndex),
			})
		}
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].Date.Before(schedule[j].Date)
	})
	return schedule
}

// scheduleFromGroup adapts the preloaded association slice.
func scheduleFromGroup(group *models.Group) []ScheduledSession {
	groupTracks := make([]*models.GroupTrack, len(group.GroupTracks))
	for i := range group.GroupTracks {
		groupTracks[i] = &group.GroupTracks[i]
	}
	return buildSchedule(groupTracks)
}
