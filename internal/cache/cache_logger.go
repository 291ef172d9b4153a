package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateGroupCache drops every cached view derived from a group:
// detail, schedule, roster summary and its leaderboard.
func InvalidateGroupCache(ctx context.Context, cm *CacheManager, groupID string) {
	SafeDelete(ctx, cm.Group,
		fmt.Sprintf("id:%s", groupID),
		fmt.Sprintf("schedule:%s", groupID),
		fmt.Sprintf("summary:%s", groupID))
	SafeDelete(ctx, cm.Leaderboard, fmt.Sprintf("group:%s", groupID))
}

// InvalidateEnrollmentCache drops the enrollment dashboard aggregations
// after an alta/baja is logged.
func InvalidateEnrollmentCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Dashboard, "enrollments*")
}

// InvalidateTrackCache drops cached track structures after session edits.
func InvalidateTrackCache(ctx context.Context, cm *CacheManager, trackID string) {
	SafeDelete(ctx, cm.Track, fmt.Sprintf("id:%s", trackID))
	SafeInvalidatePattern(ctx, cm.Group, "schedule:*")
}
