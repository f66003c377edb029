package models

import "time"

// PublicProfile is the one-to-one extension of a user controlling what a
// viewer sees on the nickname-addressed public page.
type PublicProfile struct {
	ID                  int       `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	Bio                 string    `json:"bio" db:"bio"`
	AvatarURL           string    `json:"avatar_url" db:"avatar_url"`
	IsVisible           bool      `json:"is_visible" db:"is_visible"`
	ShowWatchedEpisodes bool      `json:"show_watched_episodes" db:"show_watched_episodes"`
	ShowLists           bool      `json:"show_lists" db:"show_lists"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// PublicProfileView is the assembled public page: the profile plus the
// sections its toggles allow.
type PublicProfileView struct {
	Nickname        string           `json:"nickname"`
	Bio             string           `json:"bio"`
	AvatarURL       string           `json:"avatar_url"`
	Lists           []List           `json:"lists,omitempty"`
	WatchedEpisodes []WatchedEpisode `json:"watched_episodes,omitempty"`
}
