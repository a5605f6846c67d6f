package query

import "fmt"

// Title builds the heading shown above a drill-down list, e.g.
// "Winning movies with Jane Doe" or "Movies served with Tacos".
func Title(entityType EntityType, name string, outcome Outcome) string {
	prefix := "Movies"
	if outcome.set {
		if outcome.winner {
			prefix = "Winning movies"
		} else {
			prefix = "Losing movies"
		}
	}
	switch entityType {
	case Actor:
		return fmt.Sprintf("%s with %s", prefix, name)
	case Director:
		return fmt.Sprintf("%s directed by %s", prefix, name)
	case Genre:
		return fmt.Sprintf("%s in %s", prefix, name)
	case Cocktail, Meal, Dessert:
		return fmt.Sprintf("%s served with %s", prefix, name)
	default:
		return fmt.Sprintf("%s matching %s", prefix, name)
	}
}
