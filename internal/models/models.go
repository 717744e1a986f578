package models

import "time"

// GroupLetter identifies a training split: all categories sharing a letter
// are trained together in one session.
type GroupLetter string

const (
	GroupA GroupLetter = "A"
	GroupB GroupLetter = "B"
	GroupC GroupLetter = "C"
	GroupD GroupLetter = "D"
	GroupE GroupLetter = "E"
	GroupF GroupLetter = "F"
)

// Groups is the fixed split alphabet, in display order.
var Groups = []GroupLetter{GroupA, GroupB, GroupC, GroupD, GroupE, GroupF}

// Valid reports whether g is one of the known group letters.
func (g GroupLetter) Valid() bool {
	for _, k := range Groups {
		if g == k {
			return true
		}
	}
	return false
}

// Category groups exercises under one split letter. Deleting a category
// cascades to every exercise referencing it.
type Category struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	GroupLetter GroupLetter `json:"groupLetter"`
}

// Exercise is one entry in the user's personal training plan.
type Exercise struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CategoryID  string  `json:"categoryId"`
	DefaultSets int     `json:"defaultSets"`
	DefaultReps int     `json:"defaultReps"`
	InitialLoad float64 `json:"initialLoad"`
	Notes       string  `json:"notes,omitempty"`
	ViewURL     string  `json:"viewUrl,omitempty"`
}

// SeriesEntry is one set inside an active workout draft. It exists only
// inside a WorkoutDraft; finished sessions keep a trimmed copy.
type SeriesEntry struct {
	ID        string  `json:"id"`
	Load      float64 `json:"load"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// WorkoutDraft is the single in-progress workout. At most one exists at a
// time; its presence switches the client into active-workout mode.
type WorkoutDraft struct {
	StartTime      int64                    `json:"startTime"` // Unix milliseconds
	SelectedGroups []GroupLetter            `json:"selectedGroups"`
	Exercises      map[string][]SeriesEntry `json:"exercises"`
}

// SessionSeries is one completed set inside a finished session.
type SessionSeries struct {
	Load float64 `json:"load"`
	Reps int     `json:"reps"`
}

// SessionDetail records the completed series of one exercise in a session.
type SessionDetail struct {
	ExerciseID   string          `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName"`
	Series       []SessionSeries `json:"series"`
}

// Session is an immutable finished workout. Only exercises with at least one
// completed series appear in Details; Volume is load*reps summed over
// completed series.
type Session struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"` // YYYY-MM-DD
	StartTime       int64           `json:"startTime"`
	EndTime         int64           `json:"endTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Volume          float64         `json:"volume"`
	TotalSeries     int             `json:"totalSeries"`
	Notes           string          `json:"notes"`
	Groups          []GroupLetter   `json:"groups"`
	Details         []SessionDetail `json:"details"`
}

// Schedule maps weekday index (0 = Sunday) to the group trained that day.
// A nil entry means rest day. It is only a default-selection hint.
type Schedule map[int]*GroupLetter

// Settings holds user preferences for the rest timer.
type Settings struct {
	AutoTimer       bool `json:"autoTimer"`
	RestTimeSeconds int  `json:"restTimeSeconds"`
}

// AppState is the root aggregate: the whole user document, rewritten to the
// store on every mutation.
type AppState struct {
	Categories []Category `json:"categories"`
	Exercises  []Exercise `json:"exercises"`
	Sessions   []Session  `json:"sessions"`
	Schedule   Schedule   `json:"schedule"`
	Settings   Settings   `json:"settings"`
}

// DefaultState returns the state a fresh install starts from.
func DefaultState() *AppState {
	return &AppState{
		Categories: []Category{},
		Exercises:  []Exercise{},
		Sessions:   []Session{},
		Schedule:   EmptySchedule(),
		Settings:   Settings{AutoTimer: true, RestTimeSeconds: 60},
	}
}

// EmptySchedule returns a schedule with every weekday set to rest.
func EmptySchedule() Schedule {
	s := make(Schedule, 7)
	for day := 0; day < 7; day++ {
		s[day] = nil
	}
	return s
}

// DateString formats t as the calendar-day string stored on sessions.
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
