package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"showlog/internal/models"
	"showlog/internal/services"
)

type createListRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

type updateListRequest struct {
	Name     *string `json:"name,omitempty"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

type addItemRequest struct {
	TMDBID    int              `json:"tmdb_id"`
	MediaType models.MediaType `json:"media_type"`
}

type moveItemRequest struct {
	TargetListID int `json:"target_list_id"`
}

type updateStatusRequest struct {
	Status models.WatchStatus `json:"status"`
}

type reorderRequest struct {
	ItemIDs []int `json:"item_ids"`
}

func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.GetUserLists(r.Context(), currentUserID(r), true)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := s.lists.CreateList(r.Context(), currentUserID(r), req.Name, req.IsPublic)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	listID, err := urlInt(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list ID")
		return
	}

	items, err := s.lists.GetListItems(r.Context(), currentUserID(r), listID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"list_id": listID,
		"items":   items,
	})
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	listID, err := urlInt(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list ID")
		return
	}

	var req updateListRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := s.lists.UpdateList(r.Context(), currentUserID(r), listID, services.ListUpdate{
		Name:     req.Name,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	listID, err := urlInt(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list ID")
		return
	}

	if err := s.lists.DeleteList(r.Context(), currentUserID(r), listID); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddItem resolves the TMDb reference to a catalog entry (creating
// it on first sight) and appends it to the list.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	listID, err := urlInt(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list ID")
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.MediaType.Valid() {
		respondError(w, http.StatusBadRequest, "media_type must be MOVIE or TV_SHOW")
		return
	}

	media, err := s.media.GetOrCreateFromTMDB(r.Context(), req.TMDBID, req.MediaType)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	item, err := s.lists.AddMediaToList(r.Context(), currentUserID(r), listID, media.ID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	listID, err := urlInt(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list ID")
		return
	}
	mediaID, err := urlInt(r, "mediaID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media ID")
		return
	}

	removed, err := s.lists.RemoveMediaFromList(r.Context(), currentUserID(r), listID, mediaID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlInt(r, "itemID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req moveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.lists.MoveItemToList(r.Context(), currentUserID(r), itemID, req.TargetListID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlInt(r, "itemID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "status must be PLANNED, IN_PROGRESS or WATCHED")
		return
	}

	item, err := s.lists.UpdateItemStatus(r.Context(), currentUserID(r), itemID, req.Status)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleReorderItems(w http.ResponseWriter, r *http.Request) {
	listID, err := urlInt(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list ID")
		return
	}

	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.lists.ReorderItems(r.Context(), currentUserID(r), listID, req.ItemIDs); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func urlInt(r *http.Request, param string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, param))
}
