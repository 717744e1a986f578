// Package backup serializes the whole application state to a portable JSON
// document and parses such documents back. The format is the state document
// itself, pretty-printed, so a backup is byte-for-byte what the app holds
// in memory at export time.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// ErrInvalidBackup is returned when the input parses as JSON but is not a
// state document (it must carry both categories and exercises).
var ErrInvalidBackup = errors.New("backup: missing categories or exercises")

// Export renders the state as an indented JSON document. Deterministic for
// identical state.
func Export(state *models.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// Filename returns the dated download name for an export taken at t.
func Filename(t time.Time) string {
	return "liftlog-backup-" + models.DateString(t) + ".json"
}

// Parse validates and decodes a backup document. The only required fields
// are categories and exercises; settings and schedule are defaulted when
// absent. Referential integrity between categories, exercises and sessions
// is deliberately not checked.
func Parse(data []byte) (*models.AppState, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	if !fieldPresent(raw, "categories") || !fieldPresent(raw, "exercises") {
		return nil, ErrInvalidBackup
	}

	state := &models.AppState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}

	if state.Sessions == nil {
		state.Sessions = []models.Session{}
	}
	if state.Schedule == nil {
		state.Schedule = models.EmptySchedule()
	}
	if _, ok := raw["settings"]; !ok {
		state.Settings = models.Settings{AutoTimer: true, RestTimeSeconds: 60}
	}

	return state, nil
}

func fieldPresent(raw map[string]json.RawMessage, key string) bool {
	v, ok := raw[key]
	return ok && string(v) != "null"
}
