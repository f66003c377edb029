package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"showlog/internal/services"
)

type updateProfileRequest struct {
	Bio                 *string `json:"bio,omitempty"`
	AvatarURL           *string `json:"avatar_url,omitempty"`
	IsVisible           *bool   `json:"is_visible,omitempty"`
	ShowWatchedEpisodes *bool   `json:"show_watched_episodes,omitempty"`
	ShowLists           *bool   `json:"show_lists,omitempty"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.GetProfile(r.Context(), currentUserID(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.profiles.UpdateProfile(r.Context(), currentUserID(r), services.ProfileUpdate{
		Bio:                 req.Bio,
		AvatarURL:           req.AvatarURL,
		IsVisible:           req.IsVisible,
		ShowWatchedEpisodes: req.ShowWatchedEpisodes,
		ShowLists:           req.ShowLists,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePublicProfile(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	view, err := s.profiles.GetPublicView(r.Context(), nickname)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
