package models

import "time"

// WatchedEpisode records that a user watched one episode of one TV show.
// The (user, show, season, episode) quadruple is unique.
type WatchedEpisode struct {
	ID            int       `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	MediaID       int       `json:"media_id" db:"media_id"`
	SeasonNumber  int       `json:"season_number" db:"season_number"`
	EpisodeNumber int       `json:"episode_number" db:"episode_number"`
	WatchedAt     time.Time `json:"watched_at" db:"watched_at"`
}

// WatchProgress summarizes how much of a show a user has watched.
// Percentage is integer-truncated and deliberately unclamped: stale show
// metadata can undercount total episodes, and the refresher fixes the
// source data rather than masking it here.
type WatchProgress struct {
	WatchedEpisodes    int `json:"watched_episodes"`
	TotalEpisodes      int `json:"total_episodes"`
	ProgressPercentage int `json:"progress_percentage"`
}
