package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/progress"
	"github.com/meltforce/liftlog/internal/workout"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.State())
}

func (s *Server) handleActiveWorkout(w http.ResponseWriter, r *http.Request) {
	draft := s.manager.ActiveDraft()
	if draft == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active workout"})
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Groups []models.GroupLetter `json:"groups"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	for _, g := range body.Groups {
		if !g.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown group: " + string(g)})
			return
		}
	}

	draft := s.manager.StartWorkout(body.Groups)
	writeJSON(w, http.StatusCreated, draft)
}

func (s *Server) handleUpdateSeries(w http.ResponseWriter, r *http.Request) {
	var upd workout.SeriesUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.manager.UpdateSeries(chi.URLParam(r, "exerciseID"), chi.URLParam(r, "seriesID"), upd)
	writeJSON(w, http.StatusOK, s.manager.ActiveDraft())
}

func (s *Server) handleUpdateAllSeries(w http.ResponseWriter, r *http.Request) {
	var upd workout.SeriesUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.manager.UpdateAllSeries(chi.URLParam(r, "exerciseID"), upd)
	writeJSON(w, http.StatusOK, s.manager.ActiveDraft())
}

func (s *Server) handleFinishWorkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	session := s.manager.FinishWorkout(body.Notes)
	if session == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no active workout"})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCancelWorkout(w http.ResponseWriter, r *http.Request) {
	s.manager.CancelWorkout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.State().Sessions)
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	s.manager.RemoveSession(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVolumeByDate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.VolumeByDate(s.manager.State().Sessions))
}

func (s *Server) handleLoadEvolution(w http.ResponseWriter, r *http.Request) {
	points := progress.LoadEvolution(s.manager.State().Sessions, chi.URLParam(r, "exerciseID"))
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.CategoryDistribution(s.manager.State().Sessions))
}

func (s *Server) handleSessionsOnDay(w http.ResponseWriter, r *http.Request) {
	sessions := progress.SessionsOnDay(s.manager.State().Sessions, chi.URLParam(r, "date"))
	writeJSON(w, http.StatusOK, sessions)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
