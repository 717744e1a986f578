package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/workout"
)

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string             `json:"name"`
		GroupLetter models.GroupLetter `json:"groupLetter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Name == "" || !body.GroupLetter.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and a valid groupLetter are required"})
		return
	}
	writeJSON(w, http.StatusCreated, s.manager.AddCategory(body.Name, body.GroupLetter))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var upd workout.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if upd.GroupLetter != nil && !upd.GroupLetter.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown group: " + string(*upd.GroupLetter)})
		return
	}
	s.manager.UpdateCategory(chi.URLParam(r, "id"), upd)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	s.manager.RemoveCategory(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ex.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	writeJSON(w, http.StatusCreated, s.manager.AddExercise(ex))
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var upd workout.ExerciseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.manager.UpdateExercise(chi.URLParam(r, "id"), upd)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	s.manager.RemoveExercise(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 0 || day > 6 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day must be 0-6"})
		return
	}

	var body struct {
		Group *models.GroupLetter `json:"group"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Group != nil && !body.Group.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown group: " + string(*body.Group)})
		return
	}

	s.manager.UpdateSchedule(day, body.Group)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.manager.UpdateSettings(settings)
	writeJSON(w, http.StatusOK, settings)
}
