package connections_test

import (
	"testing"

	"github.com/okian/moviemonday/internal/domain/connections"
	"github.com/okian/moviemonday/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFind(t *testing.T) {
	Convey("Given fewer than two selections", t, func() {
		for _, in := range [][]model.MovieSelection{nil, {{Title: "Solo", Genres: model.StringList{"Drama"}}}} {
			res := connections.Find(in)

			So(res.Empty(), ShouldBeTrue)
			So(res.Actors, ShouldNotBeNil)
			So(res.Directors, ShouldNotBeNil)
			So(res.Genres, ShouldNotBeNil)
			So(res.Decades, ShouldNotBeNil)
		}
	})

	Convey("Given three selections that all share a genre", t, func() {
		res := connections.Find([]model.MovieSelection{
			{MovieID: "1", Title: "A", Genres: model.StringList{"Horror", "Comedy"}, ReleaseYear: 1984},
			{MovieID: "2", Title: "B", Genres: model.StringList{"Horror"}, ReleaseYear: 1989, IsWinner: true},
			{MovieID: "3", Title: "C", Genres: model.StringList{"Horror", "Comedy"}, ReleaseYear: 1991},
		})

		Convey("Then the genre lists all three movies", func() {
			So(res.Genres, ShouldHaveLength, 2)
			So(res.Genres[0].Entity, ShouldEqual, "Horror")
			So(res.Genres[0].Movies, ShouldHaveLength, 3)
			So(res.Genres[0].Movies[1], ShouldResemble, connections.MovieRef{ID: "2", Title: "B", IsWinner: true})
		})

		Convey("Then a subset share is listed after the full share", func() {
			So(res.Genres[1].Entity, ShouldEqual, "Comedy")
			So(res.Genres[1].Movies, ShouldHaveLength, 2)
		})

		Convey("Then decades are bucketed by floor(year/10)*10", func() {
			So(res.Decades, ShouldHaveLength, 1)
			So(res.Decades[0].Entity, ShouldEqual, "1980s")
			So(res.Decades[0].Movies, ShouldHaveLength, 2)
		})
	})

	Convey("Given people matched across selections", t, func() {
		res := connections.Find([]model.MovieSelection{
			{
				Title: "A",
				Cast:  []model.CastMember{{ActorID: "1", Name: "Chris Evans"}, {ActorID: "3", Name: "Sam Neill"}, {ActorID: "3", Name: "Sam Neill"}},
				Crew:  []model.CrewMember{{PersonID: "9", Name: "John Carpenter", Job: "Director"}},
			},
			{
				Title: "B",
				Cast:  []model.CastMember{{ActorID: "2", Name: "Chris Evans"}, {ActorID: "3", Name: "Sam Neill"}},
				Crew:  []model.CrewMember{{PersonID: "9", Name: "John Carpenter", Job: "Director"}},
			},
			{
				Title: "C",
				Crew:  []model.CrewMember{{PersonID: "9", Name: "John Carpenter", Job: "Writer"}},
			},
		})

		Convey("Then actors are matched by id, not name", func() {
			So(res.Actors, ShouldHaveLength, 1)
			So(res.Actors[0].Entity, ShouldEqual, "Sam Neill")
			So(res.Actors[0].EntityID, ShouldEqual, model.ID("3"))
			So(res.Actors[0].Movies, ShouldHaveLength, 2)
		})

		Convey("Then only directing credits connect directors", func() {
			So(res.Directors, ShouldHaveLength, 1)
			So(res.Directors[0].Movies, ShouldHaveLength, 2)
		})
	})

	Convey("Given selections with unknown release years", t, func() {
		res := connections.Find([]model.MovieSelection{{Title: "A"}, {Title: "B"}})
		So(res.Decades, ShouldBeEmpty)
	})

	Convey("Given decade labels", t, func() {
		d, ok := connections.DecadeOf(1999)
		So(ok, ShouldBeTrue)
		So(d, ShouldEqual, "1990s")
		d, _ = connections.DecadeOf(2000)
		So(d, ShouldEqual, "2000s")
		_, ok = connections.DecadeOf(0)
		So(ok, ShouldBeFalse)
	})
}
