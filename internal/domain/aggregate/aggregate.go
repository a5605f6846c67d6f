// Package aggregate builds frequency tables over weekly records: how often
// each genre, person and food item was proposed and how often it won.
package aggregate

import (
	"sort"
	"strings"

	"github.com/okian/moviemonday/internal/domain/model"
)

// Category names one of the frequency tables.
type Category string

// Known categories.
const (
	Genres    Category = "genres"
	Directors Category = "directors"
	Actors    Category = "actors"
	Cocktails Category = "cocktails"
	Meals     Category = "meals"
	Desserts  Category = "desserts"
)

// Categories lists every category in display order.
var Categories = []Category{Genres, Directors, Actors, Cocktails, Meals, Desserts}

// Result holds one table per category, each sorted by TotalCount desc and
// then by name asc. Tables are never nil.
type Result struct {
	Genres    []model.AggregateStat `json:"genres"`
	Directors []model.AggregateStat `json:"directors"`
	Actors    []model.AggregateStat `json:"actors"`
	Cocktails []model.AggregateStat `json:"cocktails"`
	Meals     []model.AggregateStat `json:"meals"`
	Desserts  []model.AggregateStat `json:"desserts"`
}

// Table returns the table for c.
func (r Result) Table(c Category) ([]model.AggregateStat, error) {
	switch c {
	case Genres:
		return r.Genres, nil
	case Directors:
		return r.Directors, nil
	case Actors:
		return r.Actors, nil
	case Cocktails:
		return r.Cocktails, nil
	case Meals:
		return r.Meals, nil
	case Desserts:
		return r.Desserts, nil
	default:
		return nil, unknownCategory(string(c))
	}
}

// Aggregate walks records once and counts every entity.
//
// Every entity is counted once per selection it applies to, with a win when
// that selection won. Food belongs to the week, so it applies to each of the
// week's selections.
func Aggregate(records []model.WeeklyRecord) Result {
	genres := newCounter()
	directors := newCounter()
	actors := newCounter()
	cocktails := newCounter()
	meals := newCounter()
	desserts := newCounter()

	for _, r := range records {
		weekMeals := unique(r.Meals())
		weekCocktails := unique(r.Cocktails())
		weekDesserts := unique(r.Desserts())
		for _, s := range r.Selections {
			for _, g := range unique(s.Genres.Strings()) {
				genres.add(g, "", s.IsWinner)
			}
			seen := make(map[key]struct{}, len(s.Cast))
			for _, c := range s.Cast {
				k := personKey(c.Name, c.ActorID)
				if _, dup := seen[k]; dup || k.name == "" {
					continue
				}
				seen[k] = struct{}{}
				actors.add(k.name, k.id, s.IsWinner)
			}
			seen = make(map[key]struct{}, 1)
			for _, d := range s.Directors() {
				k := personKey(d.Name, d.PersonID)
				if _, dup := seen[k]; dup || k.name == "" {
					continue
				}
				seen[k] = struct{}{}
				directors.add(k.name, k.id, s.IsWinner)
			}
			for _, m := range weekMeals {
				meals.add(m, "", s.IsWinner)
			}
			for _, c := range weekCocktails {
				cocktails.add(c, "", s.IsWinner)
			}
			for _, d := range weekDesserts {
				desserts.add(d, "", s.IsWinner)
			}
		}
	}

	return Result{
		Genres:    genres.sorted(),
		Directors: directors.sorted(),
		Actors:    actors.sorted(),
		Cocktails: cocktails.sorted(),
		Meals:     meals.sorted(),
		Desserts:  desserts.sorted(),
	}
}

type key struct {
	name string
	id   model.ID
}

func personKey(name string, id model.ID) key {
	return key{name: strings.TrimSpace(name), id: model.ID(strings.TrimSpace(string(id)))}
}

// counter accumulates stats in first-seen order.
type counter struct {
	index map[key]int
	stats []model.AggregateStat
}

func newCounter() *counter {
	return &counter{index: make(map[key]int)}
}

func (c *counter) add(name string, id model.ID, win bool) {
	k := key{name: name, id: id}
	i, ok := c.index[k]
	if !ok {
		i = len(c.stats)
		c.index[k] = i
		c.stats = append(c.stats, model.AggregateStat{Name: name, ID: id})
	}
	c.stats[i].TotalCount++
	if win {
		c.stats[i].WinCount++
	}
}

func (c *counter) sorted() []model.AggregateStat {
	out := make([]model.AggregateStat, len(c.stats))
	copy(out, c.stats)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCount != out[j].TotalCount {
			return out[i].TotalCount > out[j].TotalCount
		}
		return byName(out[i], out[j])
	})
	return out
}

// byName is the deterministic tie-breaker shared by every view.
func byName(a, b model.AggregateStat) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// unique trims values and drops empties and repeats, keeping first-seen order.
func unique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
