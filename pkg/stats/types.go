package stats

import "time"

// Day is one calendar day of contribution activity. Weekday is 0-6 with
// Sunday = 0, as reported by the contribution calendar. Day lists may be
// dense (every day of the year) or sparse (zero-count days omitted); the
// derivations tolerate both.
type Day struct {
	Date    time.Time
	Weekday int
	Count   int
}

// ContributionStats is the rollup of contribution totals for one window.
type ContributionStats struct {
	TotalContributions int `json:"totalContributions"`
	TotalCommits       int `json:"totalCommits"`
	TotalPRs           int `json:"totalPRs"`
	TotalIssues        int `json:"totalIssues"`
	TotalReviews       int `json:"totalReviews"`
}

// ActivityStats describes when a user was active during a year.
type ActivityStats struct {
	BusiestMonth      string  `json:"busiestMonth"`
	BusiestDay        string  `json:"busiestDay"`
	LongestStreak     int     `json:"longestStreak"`
	CurrentStreak     int     `json:"currentStreak"`
	FirstContribution *string `json:"firstContribution"`
	NewReposCreated   int     `json:"newReposCreated"`
}

// LanguageEdge is one (language, bytes of code) observation within a single
// repository.
type LanguageEdge struct {
	Name  string
	Color string
	Size  int64
}

// LanguageBreakdown is one language's share of a user's code. Commits is an
// approximation scaled to 1000, Percentage to 100; both are independent
// roundings of the same byte ratio.
type LanguageBreakdown struct {
	Lang       string `json:"lang"`
	Color      string `json:"color"`
	Commits    int    `json:"commits"`
	Percentage int    `json:"percentage"`
}

// LanguageStats is the aggregated language breakdown. TopLanguage is nil
// when the user has no language data.
type LanguageStats struct {
	TopLanguage *string             `json:"topLanguage"`
	Breakdown   []LanguageBreakdown `json:"breakdown"`
}

// RepoCandidate is a repository considered for the top-repositories ranking.
type RepoCandidate struct {
	Name       string
	OwnerLogin string
	Stars      int
	Language   *string
	CreatedAt  time.Time
}

// TopRepository is one entry of the ranked repository list. Contributions is
// a fixed estimate by affiliation, not a measured count, and does not affect
// the ranking order.
type TopRepository struct {
	Name          string  `json:"name"`
	Owner         string  `json:"owner"`
	Contributions int     `json:"contributions"`
	Stars         int     `json:"stars"`
	Language      *string `json:"language"`
}
