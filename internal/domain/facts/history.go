package facts

import (
	"strings"

	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/model"
)

// Appearance is one time an entity was among a week's candidates.
type Appearance struct {
	RecordID model.ID `json:"recordId"`
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	IsWinner bool     `json:"isWinner"`
}

// EntityHistory tracks a person across every week they were proposed in.
type EntityHistory struct {
	ID          model.ID     `json:"id,omitempty"`
	Name        string       `json:"name"`
	Appearances int          `json:"appearances"`
	Wins        int          `json:"wins"`
	History     []Appearance `json:"history"`
}

// WinRate returns Wins/Appearances; ok is false without appearances.
func (h EntityHistory) WinRate() (float64, bool) {
	return ratio(h.Wins, h.Appearances)
}

// MovieHistory tracks one movie, by external id, across weeks.
type MovieHistory struct {
	MovieID     model.ID     `json:"movieId"`
	Title       string       `json:"title"`
	Appearances int          `json:"appearances"`
	Wins        int          `json:"wins"`
	FirstSeen   string       `json:"firstSeen"`
	History     []Appearance `json:"history"`
}

// PickerHistory summarizes everything one member has picked.
type PickerHistory struct {
	UserID    model.ID              `json:"userId"`
	Username  string                `json:"username"`
	Weeks     int                   `json:"weeks"`
	Proposals int                   `json:"proposals"`
	Wins      int                   `json:"wins"`
	Genres    []model.AggregateStat `json:"genres"`
}

// WinRate returns the share of the picker's proposals that won.
func (p PickerHistory) WinRate() (float64, bool) {
	return ratio(p.Wins, p.Proposals)
}

// DominantGenre returns the picker's most proposed genre when it was picked
// at least twice and strictly more often than any other genre.
func (p PickerHistory) DominantGenre() (model.AggregateStat, bool) {
	if len(p.Genres) == 0 || p.Genres[0].TotalCount < minDominantGenre {
		return model.AggregateStat{}, false
	}
	if len(p.Genres) > 1 && p.Genres[1].TotalCount == p.Genres[0].TotalCount {
		return model.AggregateStat{}, false
	}
	return p.Genres[0], true
}

// HistoricalStats is everything the fact rules know about past weeks.
type HistoricalStats struct {
	Weeks     int                      `json:"weeks"`
	Aggregate aggregate.Result         `json:"aggregate"`
	Movies    map[string]MovieHistory  `json:"movies"`
	Actors    map[string]EntityHistory `json:"actors"`
	Directors map[string]EntityHistory `json:"directors"`
	Pickers   map[string]PickerHistory `json:"pickers"`
	Meals     map[string]int           `json:"meals"`
	Cocktails map[string]int           `json:"cocktails"`
	Desserts  map[string]int           `json:"desserts"`
}

// Movie looks up a selection's movie history.
func (h HistoricalStats) Movie(s model.MovieSelection) (MovieHistory, bool) {
	m, ok := h.Movies[movieKey(s)]
	return m, ok
}

// Actor looks up an actor's history.
func (h HistoricalStats) Actor(c model.CastMember) (EntityHistory, bool) {
	a, ok := h.Actors[personKey(c.ActorID, c.Name)]
	return a, ok
}

// Director looks up a director's history.
func (h HistoricalStats) Director(c model.CrewMember) (EntityHistory, bool) {
	d, ok := h.Directors[personKey(c.PersonID, c.Name)]
	return d, ok
}

// Picker looks up a picker's history.
func (h HistoricalStats) Picker(p model.Picker) (PickerHistory, bool) {
	ph, ok := h.Pickers[pickerKey(p)]
	return ph, ok
}

// HistoryFor builds the history a given week is judged against: every other
// record not dated after it. Records with unreadable dates are kept.
func HistoryFor(records []model.WeeklyRecord, current model.WeeklyRecord) HistoricalStats {
	day, dated := current.Day()
	prior := make([]model.WeeklyRecord, 0, len(records))
	for _, r := range records {
		if current.ID != "" && r.ID == current.ID {
			continue
		}
		if dated {
			if d, ok := r.Day(); ok && d.After(day) {
				continue
			}
		}
		prior = append(prior, r)
	}
	return BuildHistory(prior)
}

// BuildHistory computes HistoricalStats over records. People are keyed by
// their identifiers; names are only used when an identifier is missing.
func BuildHistory(records []model.WeeklyRecord) HistoricalStats {
	agg := aggregate.Aggregate(records)
	h := HistoricalStats{
		Weeks:     len(records),
		Aggregate: agg,
		Movies:    make(map[string]MovieHistory),
		Actors:    make(map[string]EntityHistory),
		Directors: make(map[string]EntityHistory),
		Pickers:   make(map[string]PickerHistory),
		Meals:     make(map[string]int),
		Cocktails: make(map[string]int),
		Desserts:  make(map[string]int),
	}
	pickerGenres := make(map[string][]model.WeeklyRecord)

	for _, r := range records {
		countWeek(h.Meals, r.Meals())
		countWeek(h.Cocktails, r.Cocktails())
		countWeek(h.Desserts, r.Desserts())

		for _, s := range r.Selections {
			app := Appearance{RecordID: r.ID, Date: r.Date, Title: s.Title, IsWinner: s.IsWinner}
			h.addMovie(s, app)
			seen := make(map[string]struct{}, len(s.Cast))
			for _, c := range s.Cast {
				k := personKey(c.ActorID, c.Name)
				if _, dup := seen[k]; dup || k == "" {
					continue
				}
				seen[k] = struct{}{}
				h.Actors[k] = addAppearance(h.Actors[k], c.ActorID, c.Name, app)
			}
			seen = make(map[string]struct{}, 1)
			for _, d := range s.Directors() {
				k := personKey(d.PersonID, d.Name)
				if _, dup := seen[k]; dup || k == "" {
					continue
				}
				seen[k] = struct{}{}
				h.Directors[k] = addAppearance(h.Directors[k], d.PersonID, d.Name, app)
			}
		}

		pk := pickerKey(r.Picker())
		if pk == "" {
			continue
		}
		p := h.Pickers[pk]
		p.UserID, p.Username = r.PickerUserID, r.PickerUsername
		p.Weeks++
		for _, s := range r.Selections {
			p.Proposals++
			if s.IsWinner {
				p.Wins++
			}
		}
		h.Pickers[pk] = p
		pickerGenres[pk] = append(pickerGenres[pk], r)
	}

	for pk, recs := range pickerGenres {
		p := h.Pickers[pk]
		p.Genres = aggregate.Aggregate(recs).Genres
		h.Pickers[pk] = p
	}
	return h
}

func (h HistoricalStats) addMovie(s model.MovieSelection, app Appearance) {
	k := movieKey(s)
	if k == "" {
		return
	}
	m := h.Movies[k]
	if m.Appearances == 0 {
		m.MovieID = s.MovieID
		m.Title = s.Title
		m.FirstSeen = app.Date
	} else if earlier(app.Date, m.FirstSeen) {
		m.FirstSeen = app.Date
	}
	m.Appearances++
	if app.IsWinner {
		m.Wins++
	}
	m.History = append(m.History, app)
	h.Movies[k] = m
}

func addAppearance(e EntityHistory, id model.ID, name string, app Appearance) EntityHistory {
	if e.Appearances == 0 {
		e.ID = id
		e.Name = strings.TrimSpace(name)
	}
	e.Appearances++
	if app.IsWinner {
		e.Wins++
	}
	e.History = append(e.History, app)
	return e
}

// countWeek adds one to every distinct item served in a week.
func countWeek(served map[string]int, items []string) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		served[item]++
	}
}

func movieKey(s model.MovieSelection) string {
	if id := strings.TrimSpace(string(s.MovieID)); id != "" {
		return "id:" + id
	}
	if t := strings.TrimSpace(s.Title); t != "" {
		return "title:" + t
	}
	return ""
}

func personKey(id model.ID, name string) string {
	if s := strings.TrimSpace(string(id)); s != "" {
		return "id:" + s
	}
	if n := strings.TrimSpace(name); n != "" {
		return "name:" + n
	}
	return ""
}

func pickerKey(p model.Picker) string {
	return personKey(p.UserID, p.Username)
}

// earlier reports whether date a is strictly before date b. Unreadable dates
// never replace a readable one.
func earlier(a, b string) bool {
	da, okA := model.WeeklyRecord{Date: a}.Day()
	db, okB := model.WeeklyRecord{Date: b}.Day()
	switch {
	case okA && okB:
		return da.Before(db)
	case okA:
		return true
	default:
		return false
	}
}

func ratio(part, whole int) (float64, bool) {
	if whole <= 0 {
		return 0, false
	}
	return float64(part) / float64(whole), true
}
