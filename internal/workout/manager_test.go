package workout

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()

	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	m, err := New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}
	return m, st
}

// seedPlan installs one category and one exercise, returning both.
func seedPlan(t *testing.T, m *Manager) (models.Category, models.Exercise) {
	t.Helper()
	cat := m.AddCategory("Peito", models.GroupA)
	ex := m.AddExercise(models.Exercise{
		Name:        "Supino Reto",
		CategoryID:  cat.ID,
		DefaultSets: 3,
		DefaultReps: 10,
		InitialLoad: 60,
	})
	return cat, ex
}

func TestStartWorkoutSeedsFromDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }

	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})
	if draft == nil {
		t.Fatal("expected a draft")
	}
	if draft.StartTime != start.UnixMilli() {
		t.Errorf("startTime = %d, want %d", draft.StartTime, start.UnixMilli())
	}

	series := draft.Exercises[ex.ID]
	if len(series) != 3 {
		t.Fatalf("got %d series, want 3", len(series))
	}
	seen := map[string]bool{}
	for i, s := range series {
		if s.Load != 60 || s.Reps != 10 || s.Completed {
			t.Errorf("series %d = %+v, want load 60 reps 10 not completed", i, s)
		}
		if s.ID == "" || seen[s.ID] {
			t.Errorf("series %d has missing or duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
}

func TestStartWorkoutSkipsOtherGroups(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)
	other := m.AddCategory("Costas", models.GroupB)
	m.AddExercise(models.Exercise{Name: "Remada", CategoryID: other.ID, DefaultSets: 4})

	draft := m.StartWorkout([]models.GroupLetter{models.GroupB})
	if len(draft.Exercises) != 1 {
		t.Fatalf("got %d exercises, want 1", len(draft.Exercises))
	}
}

func TestStartWorkoutEmptySelection(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)

	draft := m.StartWorkout(nil)
	if draft == nil {
		t.Fatal("empty selection should still create a draft")
	}
	if len(draft.Exercises) != 0 {
		t.Errorf("got %d exercises, want 0", len(draft.Exercises))
	}
}

func TestFinishWorkoutCountsOnlyCompleted(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }
	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})

	load, reps, done := 65.0, 10, true
	for _, s := range draft.Exercises[ex.ID][:2] {
		m.UpdateSeries(ex.ID, s.ID, SeriesUpdate{Load: &load, Reps: &reps, Completed: &done})
	}

	end := start.Add(45 * time.Minute)
	m.now = func() time.Time { return end }
	session := m.FinishWorkout("felt strong")
	if session == nil {
		t.Fatal("expected a session")
	}

	if session.Volume != 1300 {
		t.Errorf("volume = %v, want 1300", session.Volume)
	}
	if session.TotalSeries != 2 {
		t.Errorf("totalSeries = %d, want 2", session.TotalSeries)
	}
	if session.DurationMinutes != 45 {
		t.Errorf("duration = %d, want 45", session.DurationMinutes)
	}
	if session.Date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", session.Date)
	}
	if session.Notes != "felt strong" {
		t.Errorf("notes = %q", session.Notes)
	}
	if len(session.Details) != 1 || len(session.Details[0].Series) != 2 {
		t.Fatalf("details = %+v, want one exercise with two series", session.Details)
	}
	if session.Details[0].ExerciseName != "Supino Reto" {
		t.Errorf("exercise name = %q", session.Details[0].ExerciseName)
	}

	if m.ActiveDraft() != nil {
		t.Error("draft should be gone after finishing")
	}
	if got := len(m.State().Sessions); got != 1 {
		t.Errorf("state holds %d sessions, want 1", got)
	}
}

func TestFinishWorkoutNoCompletedSeries(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)
	m.StartWorkout([]models.GroupLetter{models.GroupA})

	session := m.FinishWorkout("")
	if session == nil {
		t.Fatal("expected a session")
	}
	if len(session.Details) != 0 || session.Volume != 0 || session.TotalSeries != 0 {
		t.Errorf("session = %+v, want empty details and zero totals", session)
	}
}

func TestFinishWorkoutWithoutDraft(t *testing.T) {
	m, _ := newTestManager(t)
	if s := m.FinishWorkout("x"); s != nil {
		t.Errorf("got session %+v, want nil", s)
	}
}

func TestFinishWorkoutNamesDeletedExercise(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})
	done := true
	m.UpdateSeries(ex.ID, draft.Exercises[ex.ID][0].ID, SeriesUpdate{Completed: &done})

	m.RemoveExercise(ex.ID)
	session := m.FinishWorkout("")
	if len(session.Details) != 1 {
		t.Fatalf("details = %+v, want one entry", session.Details)
	}
	if session.Details[0].ExerciseName != "Exercício Excluído" {
		t.Errorf("exercise name = %q", session.Details[0].ExerciseName)
	}
}

func TestSeedsFromMostRecentSession(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})
	load, reps, done := 72.5, 8, true
	m.UpdateSeries(ex.ID, draft.Exercises[ex.ID][0].ID, SeriesUpdate{Load: &load, Reps: &reps, Completed: &done})
	m.FinishWorkout("")

	next := m.StartWorkout([]models.GroupLetter{models.GroupA})
	for i, s := range next.Exercises[ex.ID] {
		if s.Load != 72.5 || s.Reps != 8 {
			t.Errorf("series %d seeded %+v, want load 72.5 reps 8", i, s)
		}
	}
}

func TestSeedsScanInsertionOrderInReverse(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	// Two finished sessions; the later insertion wins regardless of its date.
	for _, load := range []float64{50, 80} {
		draft := m.StartWorkout([]models.GroupLetter{models.GroupA})
		done := true
		l := load
		m.UpdateSeries(ex.ID, draft.Exercises[ex.ID][0].ID, SeriesUpdate{Load: &l, Completed: &done})
		m.FinishWorkout("")
	}

	if seed := m.LastSessionData(ex.ID); seed.Load != 80 {
		t.Errorf("seed load = %v, want 80 (last inserted session)", seed.Load)
	}
}

func TestSeedFromSessionWithNoSeries(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	// A recorded session whose detail carries an empty series list seeds
	// zeros, not the exercise defaults.
	m.state.Sessions = append(m.state.Sessions, models.Session{
		ID:      "s1",
		Details: []models.SessionDetail{{ExerciseID: ex.ID}},
	})

	if seed := m.LastSessionData(ex.ID); seed.Load != 0 || seed.Reps != 0 {
		t.Errorf("seed = %+v, want zeros", seed)
	}
}

func TestLastSessionDataUnknownExercise(t *testing.T) {
	m, _ := newTestManager(t)
	if seed := m.LastSessionData("nope"); seed != (SeedData{}) {
		t.Errorf("seed = %+v, want zero value", seed)
	}
}

func TestUpdateSeriesNoOps(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)

	load := 99.0
	m.UpdateSeries(ex.ID, "nope", SeriesUpdate{Load: &load}) // no draft at all

	before := m.StartWorkout([]models.GroupLetter{models.GroupA})
	m.UpdateSeries(ex.ID, "nope", SeriesUpdate{Load: &load})
	m.UpdateSeries("nope", before.Exercises[ex.ID][0].ID, SeriesUpdate{Load: &load})
	m.UpdateAllSeries("nope", SeriesUpdate{Load: &load})

	after := m.ActiveDraft()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("draft changed by no-op updates:\n before %+v\n after  %+v", before, after)
	}
}

func TestUpdateSeriesKeepsCount(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)
	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})

	load := 70.0
	for _, s := range draft.Exercises[ex.ID] {
		m.UpdateSeries(ex.ID, s.ID, SeriesUpdate{Load: &load})
	}
	m.UpdateAllSeries(ex.ID, SeriesUpdate{Load: &load})

	if got := len(m.ActiveDraft().Exercises[ex.ID]); got != 3 {
		t.Errorf("series count = %d, want 3", got)
	}
}

func TestUpdateAllSeries(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)
	m.StartWorkout([]models.GroupLetter{models.GroupA})

	load, done := 42.5, true
	m.UpdateAllSeries(ex.ID, SeriesUpdate{Load: &load, Completed: &done})

	for i, s := range m.ActiveDraft().Exercises[ex.ID] {
		if s.Load != 42.5 || !s.Completed {
			t.Errorf("series %d = %+v, want load 42.5 completed", i, s)
		}
		if s.Reps != 10 {
			t.Errorf("series %d reps = %d, nil field must not reset", i, s.Reps)
		}
	}
}

func TestCancelWorkoutIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)
	m.StartWorkout([]models.GroupLetter{models.GroupA})

	m.CancelWorkout()
	if m.ActiveDraft() != nil {
		t.Fatal("draft should be gone")
	}
	m.CancelWorkout() // second cancel must not blow up
	if got := len(m.State().Sessions); got != 0 {
		t.Errorf("cancel recorded %d sessions, want 0", got)
	}
}

func TestRemoveSession(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)
	m.StartWorkout([]models.GroupLetter{models.GroupA})
	session := m.FinishWorkout("")

	m.RemoveSession("nope") // unknown id is a no-op
	if got := len(m.State().Sessions); got != 1 {
		t.Fatalf("sessions = %d, want 1", got)
	}
	m.RemoveSession(session.ID)
	if got := len(m.State().Sessions); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestRemoveCategoryCascades(t *testing.T) {
	m, _ := newTestManager(t)
	cat, _ := seedPlan(t, m)
	other := m.AddCategory("Costas", models.GroupB)
	kept := m.AddExercise(models.Exercise{Name: "Remada", CategoryID: other.ID})

	m.RemoveCategory(cat.ID)

	state := m.State()
	if len(state.Categories) != 1 || state.Categories[0].ID != other.ID {
		t.Errorf("categories = %+v, want only %s", state.Categories, other.ID)
	}
	if len(state.Exercises) != 1 || state.Exercises[0].ID != kept.ID {
		t.Errorf("exercises = %+v, want only %s", state.Exercises, kept.ID)
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	_, ex := seedPlan(t, m)
	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})
	done := true
	m.UpdateSeries(ex.ID, draft.Exercises[ex.ID][0].ID, SeriesUpdate{Completed: &done})
	m.FinishWorkout("round trip")
	group := models.GroupA
	m.UpdateSchedule(1, &group)

	before := m.State()
	data, name, err := m.ExportData()
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	if name == "" {
		t.Error("export filename is empty")
	}

	m.ClearAll()
	if got := len(m.State().Categories); got != 0 {
		t.Fatalf("clear left %d categories", got)
	}

	if err := m.ImportData(data); err != nil {
		t.Fatalf("importing: %v", err)
	}
	if got := m.State(); !reflect.DeepEqual(before, got) {
		t.Errorf("state after round trip differs:\n before %+v\n after  %+v", before, got)
	}
}

func TestImportRejectsNonBackup(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)
	before := m.State()

	for _, input := range []string{`{"foo":1}`, `not json`, `{"categories":null,"exercises":[]}`} {
		if err := m.ImportData([]byte(input)); err == nil {
			t.Errorf("ImportData(%q) succeeded, want error", input)
		}
	}
	if got := m.State(); !reflect.DeepEqual(before, got) {
		t.Errorf("failed import changed state:\n before %+v\n after  %+v", before, got)
	}
}

func TestImportKeepsActiveDraft(t *testing.T) {
	m, _ := newTestManager(t)
	seedPlan(t, m)
	draft := m.StartWorkout([]models.GroupLetter{models.GroupA})

	if err := m.ImportData([]byte(`{"categories":[],"exercises":[]}`)); err != nil {
		t.Fatalf("importing: %v", err)
	}
	if got := m.ActiveDraft(); !reflect.DeepEqual(draft, got) {
		t.Error("import must not touch the active draft")
	}
}

func TestReloadFromStore(t *testing.T) {
	m, st := newTestManager(t)
	_, ex := seedPlan(t, m)
	m.StartWorkout([]models.GroupLetter{models.GroupA})

	reloaded, err := New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if got := len(reloaded.State().Exercises); got != 1 {
		t.Errorf("reloaded %d exercises, want 1", got)
	}
	draft := reloaded.ActiveDraft()
	if draft == nil {
		t.Fatal("reloaded manager lost the draft")
	}
	if got := len(draft.Exercises[ex.ID]); got != 3 {
		t.Errorf("reloaded draft has %d series, want 3", got)
	}
}

func TestUpdateCategoryAndExercise(t *testing.T) {
	m, _ := newTestManager(t)
	cat, ex := seedPlan(t, m)

	name := "Peito e Ombro"
	group := models.GroupC
	m.UpdateCategory(cat.ID, CategoryUpdate{Name: &name, GroupLetter: &group})
	m.UpdateCategory("nope", CategoryUpdate{Name: &name})

	sets := 5
	notes := "slow negatives"
	m.UpdateExercise(ex.ID, ExerciseUpdate{DefaultSets: &sets, Notes: &notes})

	state := m.State()
	if c := state.Categories[0]; c.Name != name || c.GroupLetter != group {
		t.Errorf("category = %+v", c)
	}
	if e := state.Exercises[0]; e.DefaultSets != 5 || e.Notes != notes || e.Name != "Supino Reto" {
		t.Errorf("exercise = %+v", e)
	}
}

func TestUpdateSchedule(t *testing.T) {
	m, _ := newTestManager(t)
	group := models.GroupB
	m.UpdateSchedule(3, &group)
	m.UpdateSchedule(7, &group)  // out of range, ignored
	m.UpdateSchedule(-1, &group) // ditto

	sched := m.State().Schedule
	if sched[3] == nil || *sched[3] != models.GroupB {
		t.Errorf("schedule[3] = %v, want B", sched[3])
	}
	if _, ok := sched[7]; ok {
		t.Error("schedule gained an out-of-range day")
	}

	m.UpdateSchedule(3, nil)
	if m.State().Schedule[3] != nil {
		t.Error("schedule[3] should be cleared")
	}
}
