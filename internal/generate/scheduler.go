package generate

import (
	"context"
	"time"
)

// refreshHour is the local hour at which auto-refreshed gym playlists are
// regenerated.
const refreshHour = 3

// RunScheduler regenerates gym playlists for opted-in users once a day at
// 03:00 local time and prunes stale search cache entries afterwards. Blocks
// until the context is canceled.
func (s *Service) RunScheduler(ctx context.Context) {
	for {
		next := nextRun(time.Now())
		s.log.Info("scheduler: next gym auto-refresh", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.refreshGymPlaylists(ctx)

		if removed, err := s.db.SearchCache().DeleteStale(ctx); err != nil {
			s.log.Warn("scheduler: cache cleanup failed", "err", err)
		} else if removed > 0 {
			s.log.Info("scheduler: pruned search cache", "removed", removed)
		}
	}
}

// nextRun returns the next occurrence of the refresh hour after now.
func nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), refreshHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// refreshGymPlaylists regenerates the gym playlist for every user with
// auto-refresh enabled. Per-user failures are logged and skipped so one bad
// account cannot stall the rest.
func (s *Service) refreshGymPlaylists(ctx context.Context) {
	settingsList, err := s.db.GymSettings().ListAutoRefresh(ctx)
	if err != nil {
		s.log.Error("scheduler: listing auto-refresh users failed", "err", err)
		return
	}
	s.log.Info("scheduler: starting gym auto-refresh", "users", len(settingsList))

	for _, settings := range settingsList {
		if ctx.Err() != nil {
			return
		}
		if len(settings.SourcePlaylistIDs) == 0 {
			continue
		}

		user, err := s.db.Users().Get(ctx, settings.UserID)
		if err != nil {
			s.log.Warn("scheduler: skipping user", "user", settings.UserID, "err", err)
			continue
		}

		client, err := s.ClientForUser(ctx, user)
		if err != nil {
			s.log.Warn("scheduler: no usable spotify session", "user", user.ID, "err", err)
			continue
		}

		if _, err := s.GymPlaylist(ctx, user, client, settings.SourcePlaylistIDs); err != nil {
			s.log.Warn("scheduler: gym refresh failed", "user", user.ID, "err", err)
			continue
		}
		s.log.Info("scheduler: refreshed gym playlist", "user", user.ID)

		// Brief pause between users to spread provider load.
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return
		}
	}
}
