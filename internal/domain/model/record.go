// Package model contains the weekly record shapes shared by the engine, the
// store and the HTTP layer, plus the derived result types the engine returns.
package model

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a weekly record.
type Status string

// Known record states.
const (
	StatusNotCreated Status = "not_created"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DirectorJob is the crew job title that marks a director.
const DirectorJob = "Director"

// dateLayout is the calendar date format used by stored records.
const dateLayout = "2006-01-02"

// WeeklyRecord is one week's movie-selection event.
type WeeklyRecord struct {
	ID             ID               `json:"id"`
	Date           string           `json:"date"`
	Status         Status           `json:"status" validate:"omitempty,oneof=not_created pending in_progress completed"`
	PickerUserID   ID               `json:"pickerUserId"`
	PickerUsername string           `json:"pickerUsername"`
	Selections     []MovieSelection `json:"movieSelections"`
	EventDetails   *EventDetails    `json:"eventDetails,omitempty"`
}

// MovieSelection is one candidate movie proposed in a week.
type MovieSelection struct {
	ID          ID           `json:"id"`
	MovieID     ID           `json:"tmdbMovieId"`
	Title       string       `json:"title"`
	PosterPath  string       `json:"posterPath,omitempty"`
	IsWinner    bool         `json:"isWinner"`
	Genres      StringList   `json:"genres"`
	ReleaseYear int          `json:"releaseYear,omitempty"`
	ReleaseDate string       `json:"releaseDate,omitempty"`
	Cast        []CastMember `json:"cast"`
	Crew        []CrewMember `json:"crew"`
}

// CastMember is an actor credited on a selection.
type CastMember struct {
	ActorID   ID     `json:"actorId"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// CrewMember is a crew credit on a selection.
type CrewMember struct {
	PersonID ID     `json:"personId"`
	Name     string `json:"name"`
	Job      string `json:"job"`
}

// EventDetails holds what was eaten and drunk during the week.
type EventDetails struct {
	Meals     StringList `json:"meals"`
	Cocktails StringList `json:"cocktails"`
	Desserts  StringList `json:"desserts"`
	Notes     string     `json:"notes,omitempty"`
}

// Picker identifies the member who proposed a week's candidates.
type Picker struct {
	UserID   ID     `json:"userId"`
	Username string `json:"username"`
}

// Picker returns the week's picker.
func (r WeeklyRecord) Picker() Picker {
	return Picker{UserID: r.PickerUserID, Username: r.PickerUsername}
}

// Winner returns the winning selection, if one is flagged.
func (r WeeklyRecord) Winner() (MovieSelection, bool) {
	for _, s := range r.Selections {
		if s.IsWinner {
			return s, true
		}
	}
	return MovieSelection{}, false
}

// HasWinner reports whether a winner has been set for the week.
func (r WeeklyRecord) HasWinner() bool {
	_, ok := r.Winner()
	return ok
}

// Meals returns the normalized meals served, never nil.
func (r WeeklyRecord) Meals() []string {
	if r.EventDetails == nil {
		return []string{}
	}
	return r.EventDetails.Meals.Strings()
}

// Cocktails returns the normalized cocktails served, never nil.
func (r WeeklyRecord) Cocktails() []string {
	if r.EventDetails == nil {
		return []string{}
	}
	return r.EventDetails.Cocktails.Strings()
}

// Desserts returns the normalized desserts served, never nil.
func (r WeeklyRecord) Desserts() []string {
	if r.EventDetails == nil {
		return []string{}
	}
	return r.EventDetails.Desserts.Strings()
}

// Day parses the record date. Both plain dates and RFC3339 timestamps are
// accepted; ok is false when the date is missing or unreadable.
func (r WeeklyRecord) Day() (time.Time, bool) {
	return parseDay(r.Date)
}

// Directors returns the crew members whose job is Director.
func (s MovieSelection) Directors() []CrewMember {
	out := make([]CrewMember, 0, 1)
	for _, c := range s.Crew {
		if c.IsDirector() {
			out = append(out, c)
		}
	}
	return out
}

// Year returns the release year, falling back to the year of ReleaseDate.
// Zero means unknown.
func (s MovieSelection) Year() int {
	if s.ReleaseYear > 0 {
		return s.ReleaseYear
	}
	if t, ok := parseDay(s.ReleaseDate); ok {
		return t.Year()
	}
	return 0
}

// IsDirector reports whether the credit is a directing credit.
func (c CrewMember) IsDirector() bool {
	return strings.TrimSpace(c.Job) == DirectorJob
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
