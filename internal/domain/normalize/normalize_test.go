package normalize_test

import (
	"testing"

	"github.com/okian/moviemonday/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestListField(t *testing.T) {
	Convey("Given list fields encoded the ways stored records encode them", t, func() {
		Convey("When the field is a string array", func() {
			got := normalize.ListField([]string{" Tacos ", "", "Pizza"})

			Convey("Then values are trimmed and empties dropped", func() {
				So(got, ShouldResemble, []string{"Tacos", "Pizza"})
			})
		})

		Convey("When the field is a decoded JSON array", func() {
			got := normalize.ListField([]any{"Margarita", 3.0, " ", "Negroni", nil})

			Convey("Then only non-empty strings survive", func() {
				So(got, ShouldResemble, []string{"Margarita", "Negroni"})
			})
		})

		Convey("When the field is a bare string", func() {
			So(normalize.ListField("Lasagna"), ShouldResemble, []string{"Lasagna"})
			So(normalize.ListField("  Lasagna  "), ShouldResemble, []string{"Lasagna"})
		})

		Convey("When the field is a JSON array inside a string", func() {
			So(normalize.ListField(`["Tacos"]`), ShouldResemble, []string{"Tacos"})
			So(normalize.ListField(`["Tacos", "", "Churros"]`), ShouldResemble, []string{"Tacos", "Churros"})
		})

		Convey("When the field is an empty JSON array inside a string", func() {
			got := normalize.ListField(`[]`)

			Convey("Then it parses to an empty sequence, not the placeholder", func() {
				So(got, ShouldNotBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the bracketed string is not valid JSON", func() {
			Convey("Then an empty remainder becomes the placeholder", func() {
				So(normalize.ListField(`[,]`), ShouldResemble, []string{normalize.Placeholder})
				So(normalize.ListField(`[""`+`,]`), ShouldResemble, []string{normalize.Placeholder})
			})

			Convey("Then a quoted remainder is recovered as one item", func() {
				So(normalize.ListField(`['Tacos']`), ShouldResemble, []string{"Tacos"})
				So(normalize.ListField(`[Pad Thai]`), ShouldResemble, []string{"Pad Thai"})
			})
		})

		Convey("When the field is missing or of an unknown shape", func() {
			So(normalize.ListField(nil), ShouldResemble, []string{})
			So(normalize.ListField(""), ShouldResemble, []string{})
			So(normalize.ListField("   "), ShouldResemble, []string{})
			So(normalize.ListField(42), ShouldResemble, []string{})
			So(normalize.ListField(map[string]any{"a": "b"}), ShouldResemble, []string{})
		})
	})
}

func TestListFieldIdempotent(t *testing.T) {
	Convey("Given a variety of raw inputs", t, func() {
		inputs := []any{
			nil,
			"",
			"Tacos",
			`["Tacos", "Pizza"]`,
			`[]`,
			`[,]`,
			`['Tacos']`,
			`[not json`,
			[]string{" a ", "", "b"},
			[]any{"x", 1.0, "y"},
			17,
		}

		Convey("Then normalizing the output again changes nothing", func() {
			for _, in := range inputs {
				once := normalize.ListField(in)
				So(normalize.ListField(once), ShouldResemble, once)
			}
		})
	})
}

func TestJSON(t *testing.T) {
	Convey("Given raw JSON values", t, func() {
		So(normalize.JSON([]byte(`["Tacos"]`)), ShouldResemble, []string{"Tacos"})
		So(normalize.JSON([]byte(`"[\"Tacos\"]"`)), ShouldResemble, []string{"Tacos"})
		So(normalize.JSON([]byte(`"Tacos"`)), ShouldResemble, []string{"Tacos"})
		So(normalize.JSON([]byte(`null`)), ShouldResemble, []string{})
		So(normalize.JSON([]byte(`{`)), ShouldResemble, []string{})
		So(normalize.JSON(nil), ShouldResemble, []string{})
	})
}
