package stats

import (
	"sort"
	"time"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DeriveActivityStats computes activity-pattern metrics from a year's day
// list and the creation dates of the user's repositories. Ties for busiest
// month and weekday go to the bucket first encountered while iterating the
// day list, which keeps the result reproducible for any input order.
func DeriveActivityStats(days []Day, repoCreationDates []time.Time, year int) ActivityStats {
	busiestMonth := busiestBucket(days, 12, func(d Day) int { return int(d.Date.Month()) - 1 }, monthNames, "January")
	busiestDay := busiestBucket(days, 7, func(d Day) int { return d.Weekday }, dayNames, "Monday")

	longestStreak, currentStreak := deriveStreaks(days)

	var firstContribution *string
	for _, d := range sortedByDate(days) {
		if d.Count > 0 {
			formatted := d.Date.Format("2006-01-02")
			firstContribution = &formatted
			break
		}
	}

	newRepos := 0
	for _, created := range repoCreationDates {
		if created.Year() == year {
			newRepos++
		}
	}

	return ActivityStats{
		BusiestMonth:      busiestMonth,
		BusiestDay:        busiestDay,
		LongestStreak:     longestStreak,
		CurrentStreak:     currentStreak,
		FirstContribution: firstContribution,
		NewReposCreated:   newRepos,
	}
}

// busiestBucket sums counts into buckets and returns the name of the bucket
// with the highest sum. On ties the bucket whose first observation appeared
// earliest in the day list wins. Empty input returns the fallback.
func busiestBucket(days []Day, buckets int, bucketOf func(Day) int, names []string, fallback string) string {
	sums := make([]int, buckets)
	order := make([]int, 0, buckets)
	seen := make([]bool, buckets)

	for _, d := range days {
		b := bucketOf(d)
		if b < 0 || b >= buckets {
			continue
		}
		if !seen[b] {
			seen[b] = true
			order = append(order, b)
		}
		sums[b] += d.Count
	}

	if len(order) == 0 {
		return fallback
	}

	best := order[0]
	for _, b := range order[1:] {
		if sums[b] > sums[best] {
			best = b
		}
	}
	return names[best]
}

// deriveStreaks computes the longest and the trailing run of days with at
// least one contribution. A run is measured by adjacency in the date-sorted
// list, not by calendar-day adjacency: sparse inputs with omitted zero days
// join across the gaps. That matches the upstream calendar's dense output
// and is kept deliberately.
func deriveStreaks(days []Day) (longest, current int) {
	sorted := sortedByDate(days)

	streak := 0
	for _, d := range sorted {
		if d.Count > 0 {
			streak++
			if streak > longest {
				longest = streak
			}
		} else {
			streak = 0
		}
	}

	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Count == 0 {
			break
		}
		current++
	}

	return longest, current
}

func sortedByDate(days []Day) []Day {
	sorted := make([]Day, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
