package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"showlog/internal/models"
)

func (s *Server) handleSearchMedia(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	mediaType := models.MediaType(r.URL.Query().Get("type"))
	if !mediaType.Valid() {
		respondError(w, http.StatusBadRequest, "type must be MOVIE or TV_SHOW")
		return
	}

	results, err := s.media.Search(r.Context(), mediaType, query)
	if err != nil {
		s.logger.WithError(err).Warn("TMDb search failed")
		respondError(w, http.StatusBadGateway, "metadata service unavailable")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// handleMediaDetails returns the catalog entry for a TMDb id, creating
// it on first request, enriched with credits when TMDb cooperates. A
// credits failure degrades to the base record instead of failing the
// request.
func (s *Server) handleMediaDetails(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(chi.URLParam(r, "mediaType"))
	if !mediaType.Valid() {
		respondError(w, http.StatusBadRequest, "media type must be MOVIE or TV_SHOW")
		return
	}

	tmdbID, err := strconv.Atoi(chi.URLParam(r, "tmdbID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid TMDb ID")
		return
	}

	media, err := s.media.GetOrCreateFromTMDB(r.Context(), tmdbID, mediaType)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	response := map[string]interface{}{"media": media}
	if credits, err := s.media.Credits(r.Context(), media); err != nil {
		s.logger.WithError(err).WithField("tmdb_id", tmdbID).Warn("Credits enrichment failed")
	} else {
		response["credits"] = credits
	}

	respondJSON(w, http.StatusOK, response)
}
