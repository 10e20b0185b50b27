package wrapped

import (
	"github.com/octowrap/octowrap/pkg/github"
	"github.com/octowrap/octowrap/pkg/stats"
)

// Summary is the full year-in-review payload for one (user, year) pair.
// Immutable once produced; cached as a serialized blob.
type Summary struct {
	Year      int                     `json:"year"`
	Username  string                  `json:"username"`
	AvatarURL string                  `json:"avatarUrl"`
	Stats     stats.ContributionStats `json:"stats"`
	Activity  stats.ActivityStats     `json:"activity"`
	Languages stats.LanguageStats     `json:"languages"`
	TopRepos  []stats.TopRepository   `json:"topRepos"`
}

// UserStats is the lightweight lifetime-stats payload.
type UserStats struct {
	TotalStars         int                       `json:"totalStars"`
	TotalCommits       int                       `json:"totalCommits"`
	TotalPRs           int                       `json:"totalPRs"`
	TotalIssues        int                       `json:"totalIssues"`
	TotalContributions int                       `json:"totalContributions"`
	LanguageBreakdown  []stats.LanguageBreakdown `json:"languageBreakdown"`
}

// PinnedRepository is one pinned repository on a profile.
type PinnedRepository struct {
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	StargazerCount  int              `json:"stargazerCount"`
	PrimaryLanguage *github.Language `json:"primaryLanguage"`
	URL             string           `json:"url"`
}

// Profile is the user profile payload.
type Profile struct {
	Name               *string            `json:"name"`
	AvatarURL          string             `json:"avatarUrl"`
	Bio                *string            `json:"bio"`
	Followers          int                `json:"followers"`
	Following          int                `json:"following"`
	Company            *string            `json:"company"`
	Website            *string            `json:"website"`
	PinnedRepositories []PinnedRepository `json:"pinnedRepositories"`
}

// LanguageResult is the tagged outcome of the language-breakdown fetch.
// Degraded means the upstream language query failed and Stats carries the
// empty fallback; Cause holds the swallowed error.
type LanguageResult struct {
	Stats    stats.LanguageStats
	Degraded bool
	Cause    error
}
