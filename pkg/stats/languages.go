package stats

import (
	"math"
	"sort"
)

const (
	maxLanguages = 10
	defaultColor = "#000000"
)

// DeriveLanguageBreakdown aggregates per-repository language edges into a
// user-level breakdown. Byte counts are summed per language name, keeping
// the first-seen color. Returns an empty breakdown with a nil top language
// when there is no language data at all.
func DeriveLanguageBreakdown(repoEdges [][]LanguageEdge) LanguageStats {
	type langTotal struct {
		name  string
		color string
		size  int64
	}

	totals := make(map[string]*langTotal)
	order := make([]string, 0)

	for _, edges := range repoEdges {
		for _, edge := range edges {
			if existing, ok := totals[edge.Name]; ok {
				existing.size += edge.Size
				continue
			}
			color := edge.Color
			if color == "" {
				color = defaultColor
			}
			totals[edge.Name] = &langTotal{name: edge.Name, color: color, size: edge.Size}
			order = append(order, edge.Name)
		}
	}

	var totalSize int64
	for _, lt := range totals {
		totalSize += lt.size
	}
	if totalSize == 0 {
		return LanguageStats{TopLanguage: nil, Breakdown: []LanguageBreakdown{}}
	}

	breakdown := make([]LanguageBreakdown, 0, len(order))
	for _, name := range order {
		lt := totals[name]
		ratio := float64(lt.size) / float64(totalSize)
		breakdown = append(breakdown, LanguageBreakdown{
			Lang:  lt.name,
			Color: lt.color,
			// Independent roundings of the same ratio at two scales
			Commits:    int(math.Round(ratio * 1000)),
			Percentage: int(math.Round(ratio * 100)),
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Percentage > breakdown[j].Percentage
	})
	if len(breakdown) > maxLanguages {
		breakdown = breakdown[:maxLanguages]
	}

	top := breakdown[0].Lang
	return LanguageStats{TopLanguage: &top, Breakdown: breakdown}
}
