package models

import "time"

type MediaType string

const (
	MediaTypeMovie  MediaType = "MOVIE"
	MediaTypeTVShow MediaType = "TV_SHOW"
)

func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTVShow
}

// Media is a catalog entry for one movie or one TV show. TMDBID is nil
// for manually entered media without a catalog match; when present it is
// unique. Identity is immutable once created, metadata columns may be
// refreshed from TMDb.
type Media struct {
	ID               int       `json:"id" db:"id"`
	TMDBID           *int      `json:"tmdb_id" db:"tmdb_id"`
	MediaType        MediaType `json:"media_type" db:"media_type"`
	Title            string    `json:"title" db:"title"`
	OriginalTitle    string    `json:"original_title" db:"original_title"`
	Overview         *string   `json:"overview" db:"overview"`
	PosterPath       *string   `json:"poster_path" db:"poster_path"`
	BackdropPath     *string   `json:"backdrop_path" db:"backdrop_path"`
	ReleaseDate      *string   `json:"release_date" db:"release_date"`
	Popularity       float64   `json:"popularity" db:"popularity"`
	VoteAverage      float64   `json:"vote_average" db:"vote_average"`
	VoteCount        int       `json:"vote_count" db:"vote_count"`
	OriginalLanguage string    `json:"original_language" db:"original_language"`

	// Movie-only fields.
	Runtime *int  `json:"runtime,omitempty" db:"runtime"`
	Budget  int64 `json:"budget,omitempty" db:"budget"`
	Revenue int64 `json:"revenue,omitempty" db:"revenue"`

	// TV-show-only fields.
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty" db:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty" db:"number_of_episodes"`
	EpisodeRunTime   *int    `json:"episode_run_time,omitempty" db:"episode_run_time"`
	ShowStatus       *string `json:"show_status,omitempty" db:"show_status"`
	FirstAirDate     *string `json:"first_air_date,omitempty" db:"first_air_date"`
	LastAirDate      *string `json:"last_air_date,omitempty" db:"last_air_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
