// Package connections finds what a single week's candidate movies have in
// common: shared actors, directors, genres and release decades.
package connections

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/moviemonday/internal/domain/model"
)

// minShared is how many selections must share an entity for a connection.
const minShared = 2

// MovieRef identifies a selection inside a connection.
type MovieRef struct {
	ID       model.ID `json:"id"`
	Title    string   `json:"title"`
	IsWinner bool     `json:"isWinner"`
}

// Connection is one entity shared by two or more selections.
type Connection struct {
	Entity   string     `json:"entity"`
	EntityID model.ID   `json:"entityId,omitempty"`
	Movies   []MovieRef `json:"movies"`
}

// Result groups connections by kind. Slices are never nil.
type Result struct {
	Actors    []Connection `json:"actors"`
	Directors []Connection `json:"directors"`
	Genres    []Connection `json:"genres"`
	Decades   []Connection `json:"decades"`
}

// Empty reports whether no connection of any kind was found.
func (r Result) Empty() bool {
	return len(r.Actors) == 0 && len(r.Directors) == 0 && len(r.Genres) == 0 && len(r.Decades) == 0
}

// Find intersects the given selections of one week. People are matched on
// their identifiers, falling back to the name only when no identifier is
// present. Fewer than two selections can share nothing and yield an empty
// Result.
//
// Connections are ordered by how many movies share them, then by the order
// in which the entity was first seen; movies keep selection order.
func Find(selections []model.MovieSelection) Result {
	res := Result{
		Actors:    []Connection{},
		Directors: []Connection{},
		Genres:    []Connection{},
		Decades:   []Connection{},
	}
	if len(selections) < minShared {
		return res
	}

	actors := newGrouper()
	directors := newGrouper()
	genres := newGrouper()
	decades := newGrouper()

	for pos, s := range selections {
		ref := refOf(s)
		for _, c := range s.Cast {
			actors.add(pos, personIdentity(c.ActorID, c.Name), c.Name, c.ActorID, ref)
		}
		for _, d := range s.Directors() {
			directors.add(pos, personIdentity(d.PersonID, d.Name), d.Name, d.PersonID, ref)
		}
		for _, g := range s.Genres.Strings() {
			genres.add(pos, strings.TrimSpace(g), g, "", ref)
		}
		if decade, ok := DecadeOf(s.Year()); ok {
			decades.add(pos, decade, decade, "", ref)
		}
	}

	res.Actors = actors.shared()
	res.Directors = directors.shared()
	res.Genres = genres.shared()
	res.Decades = decades.shared()
	return res
}

// DecadeOf buckets a release year into its decade label, e.g. 1984 -> "1980s".
// Unknown years (<= 0) have no decade.
func DecadeOf(year int) (string, bool) {
	if year <= 0 {
		return "", false
	}
	return fmt.Sprintf("%ds", year/10*10), true
}

func refOf(s model.MovieSelection) MovieRef {
	id := s.MovieID
	if id == "" {
		id = s.ID
	}
	return MovieRef{ID: id, Title: s.Title, IsWinner: s.IsWinner}
}

func personIdentity(id model.ID, name string) string {
	if id = model.ID(strings.TrimSpace(string(id))); id != "" {
		return "id:" + string(id)
	}
	return "name:" + strings.TrimSpace(name)
}

type group struct {
	conn  Connection
	order int
	// lastPos is the selection most recently added; a selection counts once.
	lastPos int
}

type grouper struct {
	byKey  map[string]*group
	groups []*group
}

func newGrouper() *grouper {
	return &grouper{byKey: make(map[string]*group)}
}

func (g *grouper) add(pos int, identity, label string, id model.ID, ref MovieRef) {
	label = strings.TrimSpace(label)
	if label == "" || identity == "" {
		return
	}
	grp, ok := g.byKey[identity]
	if !ok {
		grp = &group{conn: Connection{Entity: label, EntityID: id}, order: len(g.groups), lastPos: -1}
		g.byKey[identity] = grp
		g.groups = append(g.groups, grp)
	}
	if grp.lastPos == pos {
		return
	}
	grp.lastPos = pos
	grp.conn.Movies = append(grp.conn.Movies, ref)
}

func (g *grouper) shared() []Connection {
	kept := make([]*group, 0, len(g.groups))
	for _, grp := range g.groups {
		if len(grp.conn.Movies) >= minShared {
			kept = append(kept, grp)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if len(kept[i].conn.Movies) != len(kept[j].conn.Movies) {
			return len(kept[i].conn.Movies) > len(kept[j].conn.Movies)
		}
		return kept[i].order < kept[j].order
	})
	out := make([]Connection, 0, len(kept))
	for _, grp := range kept {
		out = append(out, grp.conn)
	}
	return out
}
