// Package progress derives chart and calendar data from stored sessions.
// Everything here is a pure function recomputed on demand; there is no
// caching to invalidate.
package progress

import (
	"sort"

	"github.com/meltforce/liftlog/internal/models"
)

// VolumePoint is one day's total training volume.
type VolumePoint struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// VolumeByDate groups sessions by calendar day and sums their volume.
// Days are returned in ascending date order.
func VolumeByDate(sessions []models.Session) []VolumePoint {
	byDay := make(map[string]float64)
	for _, s := range sessions {
		byDay[s.Date] += s.Volume
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]VolumePoint, len(dates))
	for i, d := range dates {
		points[i] = VolumePoint{Date: d, Volume: byDay[d]}
	}
	return points
}

// LoadPoint is one session's representative load for an exercise.
type LoadPoint struct {
	Date string  `json:"date"`
	Load float64 `json:"load"`
}

// LoadEvolution emits, for each session containing the exercise, the load of
// its first recorded series. The first series is the representative value;
// heavier later series in the same session are deliberately ignored.
func LoadEvolution(sessions []models.Session, exerciseID string) []LoadPoint {
	var points []LoadPoint
	for _, s := range sessions {
		for _, d := range s.Details {
			if d.ExerciseID != exerciseID {
				continue
			}
			var load float64
			if len(d.Series) > 0 {
				load = d.Series[0].Load
			}
			points = append(points, LoadPoint{Date: s.Date, Load: load})
			break
		}
	}
	return points
}

// GroupCount is the number of sessions covering one split group.
type GroupCount struct {
	Group models.GroupLetter `json:"group"`
	Count int                `json:"count"`
}

// CategoryDistribution counts sessions per group letter. A session covering
// several groups increments each of them. Groups with zero sessions are
// omitted; the result follows the fixed group order.
func CategoryDistribution(sessions []models.Session) []GroupCount {
	counts := make(map[models.GroupLetter]int)
	for _, s := range sessions {
		for _, g := range s.Groups {
			counts[g]++
		}
	}

	var out []GroupCount
	for _, g := range models.Groups {
		if counts[g] > 0 {
			out = append(out, GroupCount{Group: g, Count: counts[g]})
		}
	}
	return out
}

// SessionsOnDay returns the sessions recorded on an exact calendar day
// (YYYY-MM-DD string match).
func SessionsOnDay(sessions []models.Session, date string) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}
