package aggregate_test

import (
	"errors"
	"testing"

	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func movie(title string, winner bool, genres ...string) model.MovieSelection {
	return model.MovieSelection{Title: title, IsWinner: winner, Genres: model.StringList(genres)}
}

func directedBy(s model.MovieSelection, id model.ID, name string) model.MovieSelection {
	s.Crew = append(s.Crew, model.CrewMember{PersonID: id, Name: name, Job: model.DirectorJob})
	return s
}

func starring(s model.MovieSelection, id model.ID, name string) model.MovieSelection {
	s.Cast = append(s.Cast, model.CastMember{ActorID: id, Name: name})
	return s
}

func week(id model.ID, selections ...model.MovieSelection) model.WeeklyRecord {
	return model.WeeklyRecord{ID: id, Selections: selections}
}

func find(stats []model.AggregateStat, name string) (model.AggregateStat, bool) {
	for _, s := range stats {
		if s.Name == name {
			return s, true
		}
	}
	return model.AggregateStat{}, false
}

func TestAggregate(t *testing.T) {
	Convey("Given three weeks each with one movie by Director X", t, func() {
		records := []model.WeeklyRecord{
			week("1", directedBy(movie("A", true, "Drama"), "9", "Director X")),
			week("2", directedBy(movie("B", false, "Drama"), "9", "Director X")),
			week("3", directedBy(movie("C", true, "Comedy"), "9", "Director X")),
		}

		res := aggregate.Aggregate(records)

		Convey("Then the director has three appearances and no more wins than that", func() {
			d, ok := find(res.Directors, "Director X")
			So(ok, ShouldBeTrue)
			So(d.TotalCount, ShouldEqual, 3)
			So(d.WinCount, ShouldEqual, 2)
			So(d.WinCount, ShouldBeLessThanOrEqualTo, 3)
			So(d.ID, ShouldEqual, model.ID("9"))
		})

		Convey("Then genres are counted per selection and sorted by count", func() {
			So(res.Genres, ShouldResemble, []model.AggregateStat{
				{Name: "Drama", TotalCount: 2, WinCount: 1},
				{Name: "Comedy", TotalCount: 1, WinCount: 1},
			})
		})

		Convey("Then every table is non-nil even when empty", func() {
			So(res.Actors, ShouldNotBeNil)
			So(res.Meals, ShouldNotBeNil)
		})
	})

	Convey("Given people sharing a name but not an id", t, func() {
		records := []model.WeeklyRecord{
			week("1",
				starring(movie("A", true), "1", "Chris Evans"),
				starring(movie("B", false), "2", "Chris Evans"),
			),
		}

		res := aggregate.Aggregate(records)

		Convey("Then they are counted as different actors", func() {
			So(res.Actors, ShouldHaveLength, 2)
			So(res.Actors[0].ID, ShouldEqual, model.ID("1"))
			So(res.Actors[1].ID, ShouldEqual, model.ID("2"))
		})
	})

	Convey("Given a selection that lists the same genre and actor twice", t, func() {
		s := starring(starring(movie("A", false, "Horror", " Horror "), "7", "Kurt"), "7", "Kurt")
		res := aggregate.Aggregate([]model.WeeklyRecord{week("1", s)})

		Convey("Then each counts once for that selection", func() {
			So(res.Genres[0].TotalCount, ShouldEqual, 1)
			So(res.Actors[0].TotalCount, ShouldEqual, 1)
		})
	})

	Convey("Given weeks with food", t, func() {
		records := []model.WeeklyRecord{
			{
				ID:           "1",
				Selections:   []model.MovieSelection{movie("A", true), movie("B", false), movie("C", false)},
				EventDetails: &model.EventDetails{Meals: model.StringList{"Tacos"}, Cocktails: model.StringList{"Margarita"}},
			},
			{
				ID:           "2",
				Selections:   []model.MovieSelection{movie("D", false)},
				EventDetails: &model.EventDetails{Meals: model.StringList{"Tacos", "tacos"}, Desserts: model.StringList{"Flan"}},
			},
			{ID: "3"},
		}

		res := aggregate.Aggregate(records)

		Convey("Then items are counted once per selection of the week", func() {
			tacos, ok := find(res.Meals, "Tacos")
			So(ok, ShouldBeTrue)
			So(tacos.TotalCount, ShouldEqual, 4)
			So(tacos.WinCount, ShouldEqual, 1)
		})

		Convey("Then names are case-sensitive", func() {
			lower, ok := find(res.Meals, "tacos")
			So(ok, ShouldBeTrue)
			So(lower.TotalCount, ShouldEqual, 1)
		})

		Convey("Then missing event details contribute nothing", func() {
			So(res.Cocktails, ShouldResemble, []model.AggregateStat{{Name: "Margarita", TotalCount: 3, WinCount: 1}})
			So(res.Desserts, ShouldResemble, []model.AggregateStat{{Name: "Flan", TotalCount: 1, WinCount: 0}})
		})
	})

	Convey("Given a three-way week where one movie won", t, func() {
		r := week("1", movie("A", true), movie("B", false), movie("C", false))
		r.EventDetails = &model.EventDetails{Meals: model.StringList{"Tacos"}}
		res := aggregate.Aggregate([]model.WeeklyRecord{r})

		Convey("Then the meal wins with the winner and loses with the others", func() {
			So(res.Meals, ShouldResemble, []model.AggregateStat{{Name: "Tacos", TotalCount: 3, WinCount: 1}})
			So(aggregate.TopLosing(res.Meals, 1)[0].Losses(), ShouldEqual, 2)
		})
	})

	Convey("Given a week with food but no selections", t, func() {
		r := week("1")
		r.EventDetails = &model.EventDetails{Meals: model.StringList{"Soup"}}
		res := aggregate.Aggregate([]model.WeeklyRecord{r})

		Convey("Then the food is not counted", func() {
			So(res.Meals, ShouldBeEmpty)
		})
	})

	Convey("Given ties on total count", t, func() {
		res := aggregate.Aggregate([]model.WeeklyRecord{
			week("1", movie("A", false, "Western", "Action", "Musical")),
		})

		Convey("Then names break the tie ascending", func() {
			So(res.Genres[0].Name, ShouldEqual, "Action")
			So(res.Genres[1].Name, ShouldEqual, "Musical")
			So(res.Genres[2].Name, ShouldEqual, "Western")
		})
	})
}

func TestAggregateProperties(t *testing.T) {
	Convey("Given a collection and one more record", t, func() {
		base := []model.WeeklyRecord{
			week("1", movie("A", true, "Drama", "Crime"), movie("B", false, "Drama")),
			week("2", movie("C", false, "Horror"), movie("D", true, "Crime")),
		}
		extra := week("3", movie("E", false, "Drama", "Horror"), movie("F", true, "Sci-Fi"))

		before := aggregate.Aggregate(base)
		after := aggregate.Aggregate(append(append([]model.WeeklyRecord{}, base...), extra))

		Convey("Then total count is never below win count", func() {
			for _, s := range after.Genres {
				So(s.TotalCount, ShouldBeGreaterThanOrEqualTo, s.WinCount)
			}
		})

		Convey("Then no existing count decreases", func() {
			for _, old := range before.Genres {
				now, ok := find(after.Genres, old.Name)
				So(ok, ShouldBeTrue)
				So(now.TotalCount, ShouldBeGreaterThanOrEqualTo, old.TotalCount)
			}
		})

		Convey("Then the output is identical across calls", func() {
			So(aggregate.Aggregate(base), ShouldResemble, before)
		})
	})

	Convey("Given no records", t, func() {
		res := aggregate.Aggregate(nil)

		Convey("Then every table is empty but present", func() {
			for _, c := range aggregate.Categories {
				table, err := res.Table(c)
				So(err, ShouldBeNil)
				So(table, ShouldNotBeNil)
				So(table, ShouldBeEmpty)
			}
		})
	})

	Convey("Given an unknown category", t, func() {
		_, err := aggregate.Aggregate(nil).Table("snacks")
		So(errors.Is(err, aggregate.ErrUnknownCategory), ShouldBeTrue)
	})
}
