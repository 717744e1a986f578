// Package workout owns the application state and the lifecycle of the single
// active workout draft. Every mutation is applied in memory and then the
// whole document is written back to the store (write-through). Operations
// referencing unknown ids are silent no-ops.
package workout

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/backup"
	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/store"
)

// deletedExerciseName is the display name recorded for session details whose
// exercise was removed from the plan before the workout finished. Kept
// identical to the historical document vocabulary so old backups line up.
const deletedExerciseName = "Exercício Excluído"

// Manager is the state container: one AppState, at most one active draft.
// All methods are safe for concurrent use; a single mutex serializes every
// operation, preserving the single-writer model.
type Manager struct {
	mu    sync.Mutex
	state *models.AppState
	draft *models.WorkoutDraft
	st    *store.Store
	log   *slog.Logger
	now   func() time.Time
}

// New loads the persisted state and draft from the store. A fresh store
// yields the default state and no draft.
func New(st *store.Store, log *slog.Logger) (*Manager, error) {
	state, err := st.LoadState()
	if errors.Is(err, store.ErrNotFound) {
		state = models.DefaultState()
	} else if err != nil {
		return nil, err
	}

	draft, err := st.LoadDraft()
	if errors.Is(err, store.ErrNotFound) {
		draft = nil
	} else if err != nil {
		return nil, err
	}

	return &Manager{
		state: state,
		draft: draft,
		st:    st,
		log:   log,
		now:   time.Now,
	}, nil
}

// persistState rewrites the full state document. Persistence failures are
// logged, not surfaced: the in-memory state already moved on.
func (m *Manager) persistState() {
	if err := m.st.SaveState(m.state); err != nil {
		m.log.Error("state persist failed", "error", err)
	}
}

func (m *Manager) persistDraft() {
	var err error
	if m.draft == nil {
		err = m.st.ClearDraft()
	} else {
		err = m.st.SaveDraft(m.draft)
	}
	if err != nil {
		m.log.Error("draft persist failed", "error", err)
	}
}

// State returns a snapshot of the current state. Top-level collections are
// copied; sessions are immutable and safe to share.
func (m *Manager) State() *models.AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshotState(m.state)
}

// ActiveDraft returns a copy of the in-progress draft, or nil.
func (m *Manager) ActiveDraft() *models.WorkoutDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshotDraft(m.draft)
}

func snapshotState(s *models.AppState) *models.AppState {
	out := &models.AppState{
		Categories: append([]models.Category(nil), s.Categories...),
		Exercises:  append([]models.Exercise(nil), s.Exercises...),
		Sessions:   append([]models.Session(nil), s.Sessions...),
		Schedule:   make(models.Schedule, len(s.Schedule)),
		Settings:   s.Settings,
	}
	for day, group := range s.Schedule {
		out.Schedule[day] = group
	}
	return out
}

func snapshotDraft(d *models.WorkoutDraft) *models.WorkoutDraft {
	if d == nil {
		return nil
	}
	out := &models.WorkoutDraft{
		StartTime:      d.StartTime,
		SelectedGroups: append([]models.GroupLetter(nil), d.SelectedGroups...),
		Exercises:      make(map[string][]models.SeriesEntry, len(d.Exercises)),
	}
	for id, series := range d.Exercises {
		out.Exercises[id] = append([]models.SeriesEntry(nil), series...)
	}
	return out
}

// SeedData is the load/reps pair a new draft series starts from.
type SeedData struct {
	Load float64 `json:"load"`
	Reps int     `json:"reps"`
}

// LastSessionData returns the seed values for an exercise: the first series
// of the most recent stored session containing it, falling back to the
// exercise's initial load and default reps. "Most recent" is insertion
// order scanned in reverse, not date order.
func (m *Manager) LastSessionData(exerciseID string) SeedData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSessionData(exerciseID)
}

func (m *Manager) lastSessionData(exerciseID string) SeedData {
	for i := len(m.state.Sessions) - 1; i >= 0; i-- {
		for _, d := range m.state.Sessions[i].Details {
			if d.ExerciseID != exerciseID {
				continue
			}
			if len(d.Series) == 0 {
				return SeedData{}
			}
			return SeedData{Load: d.Series[0].Load, Reps: d.Series[0].Reps}
		}
	}
	for _, ex := range m.state.Exercises {
		if ex.ID == exerciseID {
			return SeedData{Load: ex.InitialLoad, Reps: ex.DefaultReps}
		}
	}
	return SeedData{}
}

// StartWorkout creates the active draft for the given groups, seeding one
// series list per matching exercise. Groups with no categories simply
// contribute nothing; an empty selection produces an empty draft.
func (m *Manager) StartWorkout(groups []models.GroupLetter) *models.WorkoutDraft {
	m.mu.Lock()
	defer m.mu.Unlock()

	inGroups := make(map[string]bool) // category id -> selected
	for _, c := range m.state.Categories {
		for _, g := range groups {
			if c.GroupLetter == g {
				inGroups[c.ID] = true
				break
			}
		}
	}

	exercises := make(map[string][]models.SeriesEntry)
	for _, ex := range m.state.Exercises {
		if !inGroups[ex.CategoryID] {
			continue
		}
		seed := m.lastSessionData(ex.ID)
		series := make([]models.SeriesEntry, ex.DefaultSets)
		for i := range series {
			series[i] = models.SeriesEntry{
				ID:   uuid.NewString(),
				Load: seed.Load,
				Reps: seed.Reps,
			}
		}
		exercises[ex.ID] = series
	}

	m.draft = &models.WorkoutDraft{
		StartTime:      m.now().UnixMilli(),
		SelectedGroups: append([]models.GroupLetter(nil), groups...),
		Exercises:      exercises,
	}
	m.persistDraft()
	return snapshotDraft(m.draft)
}

// SeriesUpdate is a partial update of one series entry. Nil fields are
// left untouched.
type SeriesUpdate struct {
	Load      *float64 `json:"load,omitempty"`
	Reps      *int     `json:"reps,omitempty"`
	Completed *bool    `json:"completed,omitempty"`
}

func applySeriesUpdate(s *models.SeriesEntry, upd SeriesUpdate) {
	if upd.Load != nil {
		s.Load = *upd.Load
	}
	if upd.Reps != nil {
		s.Reps = *upd.Reps
	}
	if upd.Completed != nil {
		s.Completed = *upd.Completed
	}
}

// UpdateSeries merges upd into the one series identified by seriesID within
// exerciseID's list. No-op without an active draft or on unknown ids.
func (m *Manager) UpdateSeries(exerciseID, seriesID string, upd SeriesUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return
	}
	series := m.draft.Exercises[exerciseID]
	for i := range series {
		if series[i].ID == seriesID {
			applySeriesUpdate(&series[i], upd)
			m.persistDraft()
			return
		}
	}
}

// UpdateAllSeries merges upd into every series of the exercise. Used for
// "apply to all sets" bulk edits.
func (m *Manager) UpdateAllSeries(exerciseID string, upd SeriesUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return
	}
	series := m.draft.Exercises[exerciseID]
	if len(series) == 0 {
		return
	}
	for i := range series {
		applySeriesUpdate(&series[i], upd)
	}
	m.persistDraft()
}

// FinishWorkout commits the draft into history. Only exercises with at least
// one completed series are recorded; volume is load*reps over completed
// series. Returns the new session, or nil when no draft is active.
func (m *Manager) FinishWorkout(notes string) *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return nil
	}

	endTime := m.now().UnixMilli()
	durationMinutes := int((endTime - m.draft.StartTime) / 60000)

	var volume float64
	var totalSeries int
	var details []models.SessionDetail

	for _, exID := range m.draftExerciseOrder() {
		var completed []models.SessionSeries
		for _, s := range m.draft.Exercises[exID] {
			if !s.Completed {
				continue
			}
			completed = append(completed, models.SessionSeries{Load: s.Load, Reps: s.Reps})
			volume += s.Load * float64(s.Reps)
		}
		if len(completed) == 0 {
			continue
		}
		totalSeries += len(completed)
		details = append(details, models.SessionDetail{
			ExerciseID:   exID,
			ExerciseName: m.exerciseName(exID),
			Series:       completed,
		})
	}

	session := models.Session{
		ID:              uuid.NewString(),
		Date:            models.DateString(m.now()),
		StartTime:       m.draft.StartTime,
		EndTime:         endTime,
		DurationMinutes: durationMinutes,
		Volume:          volume,
		TotalSeries:     totalSeries,
		Notes:           notes,
		Groups:          m.draft.SelectedGroups,
		Details:         details,
	}

	m.state.Sessions = append(m.state.Sessions, session)
	m.draft = nil
	m.persistState()
	m.persistDraft()
	return &session
}

// draftExerciseOrder lists the draft's exercise ids deterministically: plan
// order first, then ids no longer in the plan, sorted.
func (m *Manager) draftExerciseOrder() []string {
	seen := make(map[string]bool, len(m.draft.Exercises))
	order := make([]string, 0, len(m.draft.Exercises))
	for _, ex := range m.state.Exercises {
		if _, ok := m.draft.Exercises[ex.ID]; ok && !seen[ex.ID] {
			seen[ex.ID] = true
			order = append(order, ex.ID)
		}
	}
	var orphaned []string
	for id := range m.draft.Exercises {
		if !seen[id] {
			orphaned = append(orphaned, id)
		}
	}
	sort.Strings(orphaned)
	return append(order, orphaned...)
}

func (m *Manager) exerciseName(id string) string {
	for _, ex := range m.state.Exercises {
		if ex.ID == id {
			return ex.Name
		}
	}
	return deletedExerciseName
}

// CancelWorkout discards the draft unconditionally. Idempotent.
func (m *Manager) CancelWorkout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	m.persistDraft()
}

// RemoveSession deletes one session by id. Unknown ids are a no-op.
func (m *Manager) RemoveSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.state.Sessions {
		if s.ID == id {
			m.state.Sessions = append(m.state.Sessions[:i], m.state.Sessions[i+1:]...)
			m.persistState()
			return
		}
	}
}

// ImportData replaces the whole state with the parsed backup document.
// The active draft is not touched.
func (m *Manager) ImportData(data []byte) error {
	state, err := backup.Parse(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.persistState()
	return nil
}

// ExportData renders the current state as a backup document and returns it
// with its dated filename.
func (m *Manager) ExportData() ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := backup.Export(m.state)
	if err != nil {
		return nil, "", err
	}
	return data, backup.Filename(m.now()), nil
}

// ClearAll resets to the default state. Any confirmation happens at the
// caller; this layer asks no questions.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = models.DefaultState()
	m.persistState()
}
