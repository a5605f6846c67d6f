package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/moviemonday/internal/domain/model"
)

// Metric selects which number a chart plots.
type Metric string

// Chart metrics.
const (
	MetricTotal  Metric = "total"
	MetricWins   Metric = "wins"
	MetricLosses Metric = "losses"
	MetricRate   Metric = "rate"
)

// ParseCategory maps a request value onto a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", unknownCategory(s)
}

// ParseMetric maps a request value onto a Metric. Empty means MetricTotal.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MetricTotal, nil
	case MetricTotal, MetricWins, MetricLosses, MetricRate:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// TopLosing orders entities by how often they were proposed without winning.
// Entities that never lost are left out. limit <= 0 keeps everything.
func TopLosing(stats []model.AggregateStat, limit int) []model.AggregateStat {
	out := make([]model.AggregateStat, 0, len(stats))
	for _, s := range stats {
		if s.Losses() > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Losses() != out[j].Losses() {
			return out[i].Losses() > out[j].Losses()
		}
		return byName(out[i], out[j])
	})
	return truncate(out, limit)
}

// WinRates computes WinCount/TotalCount for every entity with at least
// minTotal appearances. Entities with no appearances are always excluded.
func WinRates(stats []model.AggregateStat, minTotal int) []model.RateStat {
	out := make([]model.RateStat, 0, len(stats))
	for _, s := range stats {
		rate, ok := winRate(s)
		if !ok || s.TotalCount < minTotal {
			continue
		}
		out = append(out, model.RateStat{AggregateStat: s, WinRate: rate})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		if out[i].TotalCount != out[j].TotalCount {
			return out[i].TotalCount > out[j].TotalCount
		}
		return byName(out[i].AggregateStat, out[j].AggregateStat)
	})
	return out
}

// Chart turns a table into chart points for the given metric, largest
// first. Zero-valued points are dropped. limit <= 0 keeps everything.
func Chart(stats []model.AggregateStat, metric Metric, limit int) []model.ChartPoint {
	type point struct {
		stat  model.AggregateStat
		value float64
	}
	points := make([]point, 0, len(stats))
	for _, s := range stats {
		var v float64
		switch metric {
		case MetricWins:
			v = float64(s.WinCount)
		case MetricLosses:
			v = float64(s.Losses())
		case MetricRate:
			r, ok := winRate(s)
			if !ok {
				continue
			}
			v = r
		default:
			v = float64(s.TotalCount)
		}
		if v <= 0 {
			continue
		}
		points = append(points, point{stat: s, value: v})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].value != points[j].value {
			return points[i].value > points[j].value
		}
		return byName(points[i].stat, points[j].stat)
	})

	out := make([]model.ChartPoint, 0, len(points))
	for _, p := range points {
		out = append(out, model.ChartPoint{Name: p.stat.Name, Value: p.value})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func winRate(s model.AggregateStat) (float64, bool) {
	if s.TotalCount <= 0 {
		return 0, false
	}
	return float64(s.WinCount) / float64(s.TotalCount), true
}

func truncate(stats []model.AggregateStat, limit int) []model.AggregateStat {
	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}
