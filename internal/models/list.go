package models

import "time"

type WatchStatus string

const (
	StatusPlanned    WatchStatus = "PLANNED"
	StatusInProgress WatchStatus = "IN_PROGRESS"
	StatusWatched    WatchStatus = "WATCHED"
)

func (s WatchStatus) Valid() bool {
	return s == StatusPlanned || s == StatusInProgress || s == StatusWatched
}

// List is a named, ordered collection of media owned by one user.
// Private by default.
type List struct {
	ID        int       `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	IsPublic  bool      `json:"is_public" db:"is_public"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ListItem associates one media entry with one list. The (list, media)
// pair is unique. Position orders items within the list; gaps are allowed
// after removals.
type ListItem struct {
	ID       int         `json:"id" db:"id"`
	ListID   int         `json:"list_id" db:"list_id"`
	MediaID  int         `json:"media_id" db:"media_id"`
	Position int         `json:"position" db:"position"`
	Status   WatchStatus `json:"status" db:"status"`
	AddedAt  time.Time   `json:"added_at" db:"added_at"`
}

// ListItemWithMedia carries a list item together with its media row so
// callers never need a second lookup.
type ListItemWithMedia struct {
	ListItem
	Media Media `json:"media"`
}
