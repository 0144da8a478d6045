package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safarx/places-backend/internal/models"
)

// minDescriptionLen matches the validation the API has always enforced on
// place descriptions.
const minDescriptionLen = 5

type createPlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Creator     string `json:"creator"`
}

type updatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleGetPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "pid")

	place, err := s.svc.GetPlaceByID(r.Context(), placeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"place": place})
}

func (s *Server) handleGetPlacesByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uid")

	places, err := s.svc.GetPlacesByUserID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if places == nil {
		places = []models.Place{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": places})
}

func (s *Server) handleCreatePlace(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, models.ErrInvalidInput.Error())
		return
	}

	if req.Title == "" || req.Address == "" || req.Creator == "" || len(req.Description) < minDescriptionLen {
		writeMessage(w, http.StatusUnprocessableEntity, models.ErrInvalidInput.Error())
		return
	}

	draft := models.PlaceDraft{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
	}

	place, err := s.svc.CreatePlaceForUser(r.Context(), draft, req.Creator)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"place": place})
}

func (s *Server) handleUpdatePlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "pid")

	var req updatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, models.ErrInvalidInput.Error())
		return
	}

	if req.Title == "" || len(req.Description) < minDescriptionLen {
		writeMessage(w, http.StatusUnprocessableEntity, models.ErrInvalidInput.Error())
		return
	}

	place, err := s.svc.UpdatePlace(r.Context(), placeID, req.Title, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"place": place})
}

func (s *Server) handleDeletePlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "pid")

	if err := s.svc.DeletePlace(r.Context(), placeID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Deleted place.")
}
