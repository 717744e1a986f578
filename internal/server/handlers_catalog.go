package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type catalogEntryBody struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

func (s *Server) handleCatalogInsert(w http.ResponseWriter, r *http.Request) {
	var body catalogEntryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	item, err := s.catalog.Insert(r.Context(), body.Name, body.Category, body.MediaURL, body.MediaType)
	if err != nil {
		s.log.Error("catalog insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleCatalogUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog ID"})
		return
	}

	var body catalogEntryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	updated, err := s.catalog.Update(r.Context(), id, body.Name, body.Category, body.MediaURL, body.MediaType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !updated {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog exercise not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCatalogDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog ID"})
		return
	}

	deleted, err := s.catalog.Delete(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog exercise not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCatalogAdopt copies a catalog entry into the user's personal plan.
// The body carries the plan-specific fields the catalog does not know about.
func (s *Server) handleCatalogAdopt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog ID"})
		return
	}

	var body struct {
		CategoryID  string  `json:"categoryId"`
		DefaultSets int     `json:"defaultSets"`
		DefaultReps int     `json:"defaultReps"`
		InitialLoad float64 `json:"initialLoad"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	item, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog exercise not found"})
		return
	}

	ex := s.manager.AddExercise(models.Exercise{
		Name:        item.Name,
		CategoryID:  body.CategoryID,
		DefaultSets: body.DefaultSets,
		DefaultReps: body.DefaultReps,
		InitialLoad: body.InitialLoad,
		ViewURL:     item.MediaURL,
	})
	writeJSON(w, http.StatusCreated, ex)
}
