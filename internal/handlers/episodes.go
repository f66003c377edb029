package handlers

import (
	"net/http"
)

type episodeRequest struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

func (s *Server) handleMarkEpisode(w http.ResponseWriter, r *http.Request) {
	mediaID, err := urlInt(r, "mediaID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media ID")
		return
	}

	var req episodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Season < 1 || req.Episode < 1 {
		respondError(w, http.StatusBadRequest, "season and episode must be positive")
		return
	}

	watched, err := s.episodes.MarkEpisodeWatched(r.Context(), currentUserID(r), mediaID, req.Season, req.Episode)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, watched)
}

func (s *Server) handleUnmarkEpisode(w http.ResponseWriter, r *http.Request) {
	mediaID, err := urlInt(r, "mediaID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media ID")
		return
	}

	var req episodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	removed, err := s.episodes.UnmarkEpisodeWatched(r.Context(), currentUserID(r), mediaID, req.Season, req.Episode)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleWatchedEpisodes(w http.ResponseWriter, r *http.Request) {
	mediaID, err := urlInt(r, "mediaID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media ID")
		return
	}

	episodes, err := s.episodes.GetWatchedEpisodes(r.Context(), currentUserID(r), mediaID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, episodes)
}

func (s *Server) handleWatchProgress(w http.ResponseWriter, r *http.Request) {
	mediaID, err := urlInt(r, "mediaID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media ID")
		return
	}

	progress, err := s.episodes.GetWatchProgress(r.Context(), currentUserID(r), mediaID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
