// Package query answers drill-down questions such as "which movies featured
// this actor" over a collection of weekly records.
package query

import (
	"fmt"
	"strings"

	"github.com/okian/moviemonday/internal/domain/model"
)

// EntityType names the kind of entity a drill-down matches on.
type EntityType string

// Supported entity types.
const (
	Actor    EntityType = "actor"
	Director EntityType = "director"
	Genre    EntityType = "genre"
	Cocktail EntityType = "cocktail"
	Meal     EntityType = "meal"
	Dessert  EntityType = "dessert"
)

// EntityTypes lists every supported entity type.
var EntityTypes = []EntityType{Actor, Director, Genre, Cocktail, Meal, Dessert}

// Valid reports whether t is a supported entity type.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Outcome restricts results to winners or losers. The zero value matches both.
type Outcome struct {
	set    bool
	winner bool
}

// Any matches every selection.
var Any = Outcome{}

// Winners returns an Outcome that keeps winning selections only.
func Winners() Outcome { return Outcome{set: true, winner: true} }

// Losers returns an Outcome that keeps non-winning selections only.
func Losers() Outcome { return Outcome{set: true, winner: false} }

// OutcomeOf builds an Outcome from an optional flag; nil matches both.
func OutcomeOf(winner *bool) Outcome {
	if winner == nil {
		return Any
	}
	return Outcome{set: true, winner: *winner}
}

func (o Outcome) match(isWinner bool) bool {
	return !o.set || o.winner == isWinner
}

// MoviesBy returns every selection, in record order, whose entity of the
// given type equals name (case-insensitive, surrounding space ignored).
// Cocktails, meals and desserts belong to the week, so every selection of a
// week that served the item matches.
//
// An unsupported entity type is a caller bug and yields ErrInvalidEntityType.
// No match yields an empty, non-nil slice.
func MoviesBy(entityType EntityType, name string, records []model.WeeklyRecord, outcome Outcome) ([]model.MovieSelection, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntityType, entityType)
	}
	name = strings.TrimSpace(name)
	out := make([]model.MovieSelection, 0)
	if name == "" {
		return out, nil
	}

	for _, r := range records {
		weekMatch := false
		switch entityType {
		case Cocktail:
			weekMatch = containsFold(r.Cocktails(), name)
		case Meal:
			weekMatch = containsFold(r.Meals(), name)
		case Dessert:
			weekMatch = containsFold(r.Desserts(), name)
		}
		for _, s := range r.Selections {
			if !outcome.match(s.IsWinner) {
				continue
			}
			if weekMatch || selectionMatches(entityType, name, s) {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func selectionMatches(entityType EntityType, name string, s model.MovieSelection) bool {
	switch entityType {
	case Actor:
		for _, c := range s.Cast {
			if equalFold(c.Name, name) {
				return true
			}
		}
	case Director:
		for _, d := range s.Directors() {
			if equalFold(d.Name, name) {
				return true
			}
		}
	case Genre:
		return containsFold(s.Genres.Strings(), name)
	}
	return false
}

func containsFold(values []string, name string) bool {
	for _, v := range values {
		if equalFold(v, name) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
