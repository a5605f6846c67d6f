package facts

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/moviemonday/internal/domain/connections"
	"github.com/okian/moviemonday/internal/domain/model"
)

// Priorities. Exact same-week matches rank above partial matches, which rank
// above repeats and records, which rank above regulars.
const (
	PriorityAllShareGenre     = 10
	PriorityAllShareActor     = 10
	PriorityFinallyWon        = 10
	PriorityAllShareDecade    = 9
	PriorityAllShareDirector  = 9
	PriorityMovieWinRate      = 9
	PriorityCursedActor       = 9
	PrioritySomeShareActor    = 8
	PrioritySomeShareDirector = 8
	PriorityRepeatMeal        = 8
	PriorityWinningActor      = 8
	PriorityDirectorWins      = 8
	PriorityPickerRecord      = 8
	PrioritySomeShareGenre    = 7
	PriorityRepeatCocktail    = 7
	PriorityRegularActor      = 7
	PriorityDirectorNoWins    = 7
	PriorityPickerGenre       = 7
	PrioritySomeShareDecade   = 6
	PriorityRepeatDessert     = 6
)

// Icon hints for the UI.
const (
	IconFilm     = "film"
	IconCalendar = "calendar"
	IconUsers    = "users"
	IconVideo    = "video"
	IconTrophy   = "trophy"
	IconChart    = "chart"
	IconUtensils = "utensils"
	IconCocktail = "cocktail"
	IconDessert  = "cake"
	IconSkull    = "skull"
	IconStar     = "star"
	IconRepeat   = "repeat"
	IconUser     = "user"
)

// Thresholds used by the historical rules.
const (
	repeatItemMin       = 1 // served more than this many times before
	cursedActorMin      = 3 // more than this many appearances, no wins
	winningActorRate    = 0.5
	regularActorMin     = 5
	repeatDirectorMin   = 1
	repeatPickerMin     = 1
	minDominantGenre    = 2
	percent             = 100
	titleListSeparator  = ", "
	titleListFinalJoint = " and "
)

// Rule is one named fact template.
type Rule struct {
	Name string
	Eval func(Input) []model.Fact
}

// Rules returns the fixed rule table in generation order.
func Rules() []Rule {
	return []Rule{
		{Name: "shared_genre", Eval: SharedGenres},
		{Name: "shared_decade", Eval: SharedDecades},
		{Name: "shared_actor", Eval: SharedActors},
		{Name: "shared_director", Eval: SharedDirectors},
		{Name: "finally_won", Eval: FinallyWon},
		{Name: "movie_win_rate", Eval: MovieWinRate},
		{Name: "repeat_items", Eval: RepeatItems},
		{Name: "cursed_actor", Eval: CursedActors},
		{Name: "winning_actor", Eval: WinningActors},
		{Name: "regular_actor", Eval: RegularActors},
		{Name: "repeat_director", Eval: RepeatDirectors},
		{Name: "picker", Eval: PickerRecord},
	}
}

// SharedGenres fires once per genre shared by two or more of the week's
// movies.
func SharedGenres(in Input) []model.Fact {
	total := len(in.Current.Selections)
	return fromConnections(in.Connections.Genres, func(c connections.Connection) model.Fact {
		if len(c.Movies) == total {
			return model.Fact{
				Text:     fmt.Sprintf("All %d movies this week are %s", total, c.Entity),
				Icon:     IconFilm,
				Priority: PriorityAllShareGenre,
			}
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s are %s %s", titles(c.Movies), both(len(c.Movies)), c.Entity),
			Icon:     IconFilm,
			Priority: PrioritySomeShareGenre,
		}
	})
}

// SharedDecades fires once per release decade shared by two or more movies.
func SharedDecades(in Input) []model.Fact {
	total := len(in.Current.Selections)
	return fromConnections(in.Connections.Decades, func(c connections.Connection) model.Fact {
		if len(c.Movies) == total {
			return model.Fact{
				Text:     fmt.Sprintf("All %d movies this week are from the %s", total, c.Entity),
				Icon:     IconCalendar,
				Priority: PriorityAllShareDecade,
			}
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s are %s from the %s", titles(c.Movies), both(len(c.Movies)), c.Entity),
			Icon:     IconCalendar,
			Priority: PrioritySomeShareDecade,
		}
	})
}

// SharedActors fires once per actor appearing in two or more movies.
func SharedActors(in Input) []model.Fact {
	total := len(in.Current.Selections)
	return fromConnections(in.Connections.Actors, func(c connections.Connection) model.Fact {
		if len(c.Movies) == total {
			return model.Fact{
				Text:     fmt.Sprintf("%s appears in every movie this week", c.Entity),
				Icon:     IconUsers,
				Priority: PriorityAllShareActor,
			}
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s appears in %s", c.Entity, titles(c.Movies)),
			Icon:     IconUsers,
			Priority: PrioritySomeShareActor,
		}
	})
}

// SharedDirectors fires once per director behind two or more movies.
func SharedDirectors(in Input) []model.Fact {
	total := len(in.Current.Selections)
	return fromConnections(in.Connections.Directors, func(c connections.Connection) model.Fact {
		if len(c.Movies) == total {
			return model.Fact{
				Text:     fmt.Sprintf("%s directed every movie this week", c.Entity),
				Icon:     IconVideo,
				Priority: PriorityAllShareDirector,
			}
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s directed %s", c.Entity, titles(c.Movies)),
			Icon:     IconVideo,
			Priority: PrioritySomeShareDirector,
		}
	})
}

// FinallyWon fires when this week's winner had been proposed before and
// never won.
func FinallyWon(in Input) []model.Fact {
	winner, ok := in.Current.Winner()
	if !ok {
		return nil
	}
	m, ok := in.History.Movie(winner)
	if !ok || m.Appearances == 0 || m.Wins > 0 {
		return nil
	}
	return []model.Fact{{
		Text:     fmt.Sprintf("%s finally won after %s without a win", winner.Title, plural(m.Appearances, "previous appearance", "previous appearances")),
		Icon:     IconTrophy,
		Priority: PriorityFinallyWon,
	}}
}

// MovieWinRate reports the winner's record across its earlier appearances.
func MovieWinRate(in Input) []model.Fact {
	winner, ok := in.Current.Winner()
	if !ok {
		return nil
	}
	m, ok := in.History.Movie(winner)
	if !ok || m.Appearances == 0 {
		return nil
	}
	return []model.Fact{{
		Text:     fmt.Sprintf("%s has won %d out of %d times it was proposed", winner.Title, m.Wins, m.Appearances),
		Icon:     IconChart,
		Priority: PriorityMovieWinRate,
	}}
}

// RepeatItems fires once per meal, cocktail or dessert served this week that
// was already served more than once before.
func RepeatItems(in Input) []model.Fact {
	out := make([]model.Fact, 0)
	out = append(out, repeats(in.Current.Meals(), in.History.Meals, IconUtensils, PriorityRepeatMeal)...)
	out = append(out, repeats(in.Current.Cocktails(), in.History.Cocktails, IconCocktail, PriorityRepeatCocktail)...)
	out = append(out, repeats(in.Current.Desserts(), in.History.Desserts, IconDessert, PriorityRepeatDessert)...)
	return out
}

// CursedActors fires for actors proposed many times who have never won.
func CursedActors(in Input) []model.Fact {
	return forActors(in, func(h EntityHistory) (model.Fact, bool) {
		if h.Appearances <= cursedActorMin || h.Wins != 0 {
			return model.Fact{}, false
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s is cursed: %d appearances and never a winner", h.Name, h.Appearances),
			Icon:     IconSkull,
			Priority: PriorityCursedActor,
		}, true
	})
}

// WinningActors fires for actors who win more often than not.
func WinningActors(in Input) []model.Fact {
	return forActors(in, func(h EntityHistory) (model.Fact, bool) {
		rate, ok := h.WinRate()
		if !ok || rate <= winningActorRate {
			return model.Fact{}, false
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s movies win %d%% of the time (%d of %d)", possessive(h.Name), pct(rate), h.Wins, h.Appearances),
			Icon:     IconStar,
			Priority: PriorityWinningActor,
		}, true
	})
}

// RegularActors fires for actors who keep showing up.
func RegularActors(in Input) []model.Fact {
	return forActors(in, func(h EntityHistory) (model.Fact, bool) {
		if h.Appearances <= regularActorMin {
			return model.Fact{}, false
		}
		return model.Fact{
			Text:     fmt.Sprintf("%s is a regular with %d appearances", h.Name, h.Appearances),
			Icon:     IconRepeat,
			Priority: PriorityRegularActor,
		}, true
	})
}

// RepeatDirectors fires for directors proposed before.
func RepeatDirectors(in Input) []model.Fact {
	out := make([]model.Fact, 0)
	seen := make(map[string]struct{})
	for _, s := range in.Current.Selections {
		for _, d := range s.Directors() {
			k := personKey(d.PersonID, d.Name)
			if _, dup := seen[k]; dup || k == "" {
				continue
			}
			seen[k] = struct{}{}
			h, ok := in.History.Director(d)
			if !ok || h.Appearances <= repeatDirectorMin {
				continue
			}
			if rate, ok := h.WinRate(); ok && h.Wins > 0 {
				out = append(out, model.Fact{
					Text:     fmt.Sprintf("%s has had %d movies proposed and %d won (%d%%)", h.Name, h.Appearances, h.Wins, pct(rate)),
					Icon:     IconVideo,
					Priority: PriorityDirectorWins,
				})
				continue
			}
			out = append(out, model.Fact{
				Text:     fmt.Sprintf("%s has had %d movies proposed without a win", h.Name, h.Appearances),
				Icon:     IconVideo,
				Priority: PriorityDirectorNoWins,
			})
		}
	}
	return out
}

// PickerRecord reports the picker's track record and favorite genre.
func PickerRecord(in Input) []model.Fact {
	p, ok := in.History.Picker(in.Current.Picker())
	if !ok || p.Weeks <= repeatPickerMin {
		return nil
	}
	name := p.Username
	if name == "" {
		name = string(p.UserID)
	}

	var out []model.Fact
	if rate, ok := p.WinRate(); ok {
		out = append(out, model.Fact{
			Text:     fmt.Sprintf("%s has picked %d weeks and %d of their %d movies won (%d%%)", name, p.Weeks, p.Wins, p.Proposals, pct(rate)),
			Icon:     IconUser,
			Priority: PriorityPickerRecord,
		})
	} else {
		out = append(out, model.Fact{
			Text:     fmt.Sprintf("%s has picked %d weeks", name, p.Weeks),
			Icon:     IconUser,
			Priority: PriorityPickerRecord,
		})
	}
	if g, ok := p.DominantGenre(); ok {
		out = append(out, model.Fact{
			Text:     fmt.Sprintf("%s go-to genre is %s (%d picks)", possessive(name), g.Name, g.TotalCount),
			Icon:     IconFilm,
			Priority: PriorityPickerGenre,
		})
	}
	return out
}

func fromConnections(conns []connections.Connection, build func(connections.Connection) model.Fact) []model.Fact {
	out := make([]model.Fact, 0, len(conns))
	for _, c := range conns {
		out = append(out, build(c))
	}
	return out
}

// forActors visits every distinct actor of the week once, in selection and
// billing order, with their history.
func forActors(in Input, build func(EntityHistory) (model.Fact, bool)) []model.Fact {
	out := make([]model.Fact, 0)
	seen := make(map[string]struct{})
	for _, s := range in.Current.Selections {
		for _, c := range s.Cast {
			k := personKey(c.ActorID, c.Name)
			if _, dup := seen[k]; dup || k == "" {
				continue
			}
			seen[k] = struct{}{}
			h, ok := in.History.Actor(c)
			if !ok {
				continue
			}
			if f, ok := build(h); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

func repeats(items []string, served map[string]int, icon string, priority int) []model.Fact {
	out := make([]model.Fact, 0)
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if _, dup := seen[item]; dup || item == "" {
			continue
		}
		seen[item] = struct{}{}
		n := served[item]
		if n <= repeatItemMin {
			continue
		}
		out = append(out, model.Fact{
			Text:     fmt.Sprintf("%s has been served %d times before", item, n),
			Icon:     icon,
			Priority: priority,
		})
	}
	return out
}

// titles joins movie titles as "A, B and C".
func titles(movies []connections.MovieRef) string {
	names := make([]string, 0, len(movies))
	for _, m := range movies {
		names = append(names, m.Title)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], titleListSeparator) + titleListFinalJoint + names[len(names)-1]
	}
}

func both(n int) string {
	if n == 2 {
		return "both"
	}
	return "all"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func possessive(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "'"
	}
	return name + "'s"
}

func pct(rate float64) int {
	return int(math.Round(rate * percent))
}
