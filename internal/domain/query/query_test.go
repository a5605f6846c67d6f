package query_test

import (
	"errors"
	"testing"

	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() []model.WeeklyRecord {
	return []model.WeeklyRecord{
		{
			ID: "1",
			Selections: []model.MovieSelection{
				{
					Title:    "Heist One",
					IsWinner: true,
					Genres:   model.StringList{"Crime"},
					Cast:     []model.CastMember{{ActorID: "5", Name: "Jane Doe"}},
					Crew:     []model.CrewMember{{PersonID: "9", Name: "Ann Lee", Job: "Director"}},
				},
				{
					Title:  "Quiet Two",
					Genres: model.StringList{"Drama"},
					Cast:   []model.CastMember{{ActorID: "5", Name: "Jane Doe"}},
					Crew:   []model.CrewMember{{PersonID: "9", Name: "Ann Lee", Job: "Producer"}},
				},
			},
			EventDetails: &model.EventDetails{Meals: model.StringList{"Tacos"}, Cocktails: model.StringList{"Margarita"}},
		},
		{
			ID: "2",
			Selections: []model.MovieSelection{
				{Title: "Loud Three", Genres: model.StringList{"crime"}, Cast: []model.CastMember{{ActorID: "6", Name: "John Roe"}}},
				{Title: "Bright Four", IsWinner: true, Cast: []model.CastMember{{ActorID: "5", Name: "jane doe"}}},
			},
			EventDetails: &model.EventDetails{Desserts: model.StringList{"Flan"}},
		},
	}
}

func titles(movies []model.MovieSelection) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestMoviesBy(t *testing.T) {
	Convey("Given two weeks of records", t, func() {
		records := fixture()

		Convey("When asking for Jane Doe's winners", func() {
			movies, err := query.MoviesBy(query.Actor, "Jane Doe", records, query.Winners())

			Convey("Then only winning selections with Jane Doe in the cast are returned", func() {
				So(err, ShouldBeNil)
				So(titles(movies), ShouldResemble, []string{"Heist One", "Bright Four"})
				for _, m := range movies {
					So(m.IsWinner, ShouldBeTrue)
				}
			})
		})

		Convey("When asking for all of Jane Doe's movies", func() {
			movies, err := query.MoviesBy(query.Actor, "Jane Doe", records, query.Any)

			Convey("Then record order is kept", func() {
				So(err, ShouldBeNil)
				So(titles(movies), ShouldResemble, []string{"Heist One", "Quiet Two", "Bright Four"})
			})
		})

		Convey("When asking for losers only", func() {
			movies, err := query.MoviesBy(query.Actor, "jane doe", records, query.Losers())
			So(err, ShouldBeNil)
			So(titles(movies), ShouldResemble, []string{"Quiet Two"})
		})

		Convey("When asking for a director", func() {
			movies, err := query.MoviesBy(query.Director, "Ann Lee", records, query.Any)

			Convey("Then only directing credits match", func() {
				So(err, ShouldBeNil)
				So(titles(movies), ShouldResemble, []string{"Heist One"})
			})
		})

		Convey("When asking for a genre", func() {
			movies, err := query.MoviesBy(query.Genre, "CRIME", records, query.Any)
			So(err, ShouldBeNil)
			So(titles(movies), ShouldResemble, []string{"Heist One", "Loud Three"})
		})

		Convey("When asking for a cocktail", func() {
			movies, err := query.MoviesBy(query.Cocktail, "margarita", records, query.Any)

			Convey("Then every selection of the week that served it matches", func() {
				So(err, ShouldBeNil)
				So(titles(movies), ShouldResemble, []string{"Heist One", "Quiet Two"})
			})
		})

		Convey("When asking for a meal with a win filter", func() {
			movies, err := query.MoviesBy(query.Meal, "Tacos", records, query.Winners())
			So(err, ShouldBeNil)
			So(titles(movies), ShouldResemble, []string{"Heist One"})
		})

		Convey("When asking for a dessert", func() {
			movies, err := query.MoviesBy(query.Dessert, "Flan", records, query.Any)
			So(err, ShouldBeNil)
			So(titles(movies), ShouldResemble, []string{"Loud Three", "Bright Four"})
		})

		Convey("When nothing matches", func() {
			movies, err := query.MoviesBy(query.Actor, "Nobody", records, query.Any)

			Convey("Then an empty non-nil slice is returned", func() {
				So(err, ShouldBeNil)
				So(movies, ShouldNotBeNil)
				So(movies, ShouldBeEmpty)
			})
		})

		Convey("When the entity type is unknown", func() {
			movies, err := query.MoviesBy("studio", "A24", records, query.Any)

			Convey("Then it fails loudly", func() {
				So(errors.Is(err, query.ErrInvalidEntityType), ShouldBeTrue)
				So(movies, ShouldBeNil)
			})
		})
	})
}

func TestOutcomeAndTitle(t *testing.T) {
	Convey("Given optional win filters", t, func() {
		yes, no := true, false
		So(query.OutcomeOf(nil), ShouldResemble, query.Any)
		So(query.OutcomeOf(&yes), ShouldResemble, query.Winners())
		So(query.OutcomeOf(&no), ShouldResemble, query.Losers())
	})

	Convey("Given drill-down titles", t, func() {
		So(query.Title(query.Actor, "Jane Doe", query.Any), ShouldEqual, "Movies with Jane Doe")
		So(query.Title(query.Director, "Ann Lee", query.Winners()), ShouldEqual, "Winning movies directed by Ann Lee")
		So(query.Title(query.Genre, "Crime", query.Losers()), ShouldEqual, "Losing movies in Crime")
		So(query.Title(query.Meal, "Tacos", query.Any), ShouldEqual, "Movies served with Tacos")
	})
}
