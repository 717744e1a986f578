package workout

import (
	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

// Plan mutations: categories, exercises, schedule and settings. Same
// semantics as the session operations — unknown ids are silent no-ops and
// every change is written through to the store.

// AddCategory appends a category and returns it with its assigned id.
func (m *Manager) AddCategory(name string, group models.GroupLetter) models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat := models.Category{ID: uuid.NewString(), Name: name, GroupLetter: group}
	m.state.Categories = append(m.state.Categories, cat)
	m.persistState()
	return cat
}

// CategoryUpdate is a partial category update.
type CategoryUpdate struct {
	Name        *string             `json:"name,omitempty"`
	GroupLetter *models.GroupLetter `json:"groupLetter,omitempty"`
}

// UpdateCategory merges upd into the category with the given id.
func (m *Manager) UpdateCategory(id string, upd CategoryUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.state.Categories {
		if m.state.Categories[i].ID != id {
			continue
		}
		if upd.Name != nil {
			m.state.Categories[i].Name = *upd.Name
		}
		if upd.GroupLetter != nil {
			m.state.Categories[i].GroupLetter = *upd.GroupLetter
		}
		m.persistState()
		return
	}
}

// RemoveCategory deletes a category and cascades to every exercise that
// references it. This is the only place referential integrity is enforced.
func (m *Manager) RemoveCategory(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	categories := m.state.Categories[:0]
	for _, c := range m.state.Categories {
		if c.ID == id {
			found = true
			continue
		}
		categories = append(categories, c)
	}
	if !found {
		return
	}
	m.state.Categories = categories

	exercises := m.state.Exercises[:0]
	for _, ex := range m.state.Exercises {
		if ex.CategoryID == id {
			continue
		}
		exercises = append(exercises, ex)
	}
	m.state.Exercises = exercises
	m.persistState()
}

// AddExercise appends an exercise and returns it with its assigned id.
// The category reference is not validated.
func (m *Manager) AddExercise(ex models.Exercise) models.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex.ID = uuid.NewString()
	m.state.Exercises = append(m.state.Exercises, ex)
	m.persistState()
	return ex
}

// ExerciseUpdate is a partial exercise update.
type ExerciseUpdate struct {
	Name        *string  `json:"name,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	DefaultSets *int     `json:"defaultSets,omitempty"`
	DefaultReps *int     `json:"defaultReps,omitempty"`
	InitialLoad *float64 `json:"initialLoad,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	ViewURL     *string  `json:"viewUrl,omitempty"`
}

// UpdateExercise merges upd into the exercise with the given id.
func (m *Manager) UpdateExercise(id string, upd ExerciseUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.state.Exercises {
		if m.state.Exercises[i].ID != id {
			continue
		}
		ex := &m.state.Exercises[i]
		if upd.Name != nil {
			ex.Name = *upd.Name
		}
		if upd.CategoryID != nil {
			ex.CategoryID = *upd.CategoryID
		}
		if upd.DefaultSets != nil {
			ex.DefaultSets = *upd.DefaultSets
		}
		if upd.DefaultReps != nil {
			ex.DefaultReps = *upd.DefaultReps
		}
		if upd.InitialLoad != nil {
			ex.InitialLoad = *upd.InitialLoad
		}
		if upd.Notes != nil {
			ex.Notes = *upd.Notes
		}
		if upd.ViewURL != nil {
			ex.ViewURL = *upd.ViewURL
		}
		m.persistState()
		return
	}
}

// RemoveExercise deletes an exercise from the plan. History and any active
// draft keep their copies.
func (m *Manager) RemoveExercise(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ex := range m.state.Exercises {
		if ex.ID == id {
			m.state.Exercises = append(m.state.Exercises[:i], m.state.Exercises[i+1:]...)
			m.persistState()
			return
		}
	}
}

// UpdateSchedule sets (or clears, with nil) the default group for a weekday.
// Days outside 0-6 are ignored.
func (m *Manager) UpdateSchedule(day int, group *models.GroupLetter) {
	if day < 0 || day > 6 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Schedule == nil {
		m.state.Schedule = models.EmptySchedule()
	}
	m.state.Schedule[day] = group
	m.persistState()
}

// UpdateSettings replaces the user settings.
func (m *Manager) UpdateSettings(s models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Settings = s
	m.persistState()
}
