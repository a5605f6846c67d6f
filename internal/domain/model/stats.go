package model

// AggregateStat counts how often one entity was proposed and how often it
// was part of a win. ID is set for people only.
type AggregateStat struct {
	Name       string `json:"name"`
	ID         ID     `json:"id,omitempty"`
	TotalCount int    `json:"totalCount"`
	WinCount   int    `json:"winCount"`
}

// Losses is the number of appearances that did not win.
func (s AggregateStat) Losses() int { return s.TotalCount - s.WinCount }

// RateStat is an AggregateStat with its win rate in [0, 1].
type RateStat struct {
	AggregateStat
	WinRate float64 `json:"winRate"`
}

// ChartPoint is one slice or bar of a chart.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Fact is one ranked insight sentence. Priority only orders facts within a
// single computation.
type Fact struct {
	Text     string `json:"text"`
	Icon     string `json:"icon"`
	Priority int    `json:"priority"`
}
