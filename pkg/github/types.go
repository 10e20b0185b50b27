package github

// Typed response shapes for each query document. These are parsed at the
// query boundary so that nothing downstream handles untyped JSON.

// Language is a programming language node with its display color.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LanguageEdge is a (language, byte count) pair within one repository.
type LanguageEdge struct {
	Size int64    `json:"size"`
	Node Language `json:"node"`
}

// RepositoryOwner is the owning account of a repository.
type RepositoryOwner struct {
	Login string `json:"login"`
}

// Repository is a repository node as returned by the wrapped and stats
// queries. Fields not requested by a given query are left zero.
type Repository struct {
	Name            string           `json:"name"`
	Owner           *RepositoryOwner `json:"owner"`
	StargazerCount  int              `json:"stargazerCount"`
	PrimaryLanguage *Language        `json:"primaryLanguage"`
	CreatedAt       string           `json:"createdAt"`
}

// RepositoryConnection is a page of repositories.
type RepositoryConnection struct {
	TotalCount int          `json:"totalCount"`
	Nodes      []Repository `json:"nodes"`
}

// ContributionDay is one calendar day in a contribution calendar.
// Weekday is 0-6 with Sunday = 0. Date is an ISO calendar date.
type ContributionDay struct {
	ContributionCount int    `json:"contributionCount"`
	Date              string `json:"date"`
	Weekday           int    `json:"weekday"`
}

// ContributionWeek groups the days of one calendar week.
type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar is the day-by-day contribution grid.
type ContributionCalendar struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

// ContributionsCollection holds contribution totals for a time window.
type ContributionsCollection struct {
	TotalCommitContributions            int                  `json:"totalCommitContributions"`
	TotalIssueContributions             int                  `json:"totalIssueContributions"`
	TotalPullRequestContributions       int                  `json:"totalPullRequestContributions"`
	TotalPullRequestReviewContributions int                  `json:"totalPullRequestReviewContributions"`
	ContributionCalendar                ContributionCalendar `json:"contributionCalendar"`
}

// Days flattens the calendar weeks into a single day list in calendar order.
func (c *ContributionsCollection) Days() []ContributionDay {
	var days []ContributionDay
	for _, week := range c.ContributionCalendar.Weeks {
		days = append(days, week.ContributionDays...)
	}
	return days
}

// WrappedUser is the root entity of the wrapped stats query.
type WrappedUser struct {
	Login                     string                  `json:"login"`
	Name                      string                  `json:"name"`
	AvatarURL                 string                  `json:"avatarUrl"`
	CreatedAt                 string                  `json:"createdAt"`
	ContributionsCollection   ContributionsCollection `json:"contributionsCollection"`
	Repositories              RepositoryConnection    `json:"repositories"`
	RepositoriesContributedTo RepositoryConnection    `json:"repositoriesContributedTo"`
}

type wrappedStatsResponse struct {
	User *WrappedUser `json:"user"`
}

// LanguageRepository carries just the language edges of one repository.
type LanguageRepository struct {
	Languages struct {
		Edges []LanguageEdge `json:"edges"`
	} `json:"languages"`
}

// LanguagesUser is the root entity of the language stats query.
type LanguagesUser struct {
	Repositories struct {
		Nodes []LanguageRepository `json:"nodes"`
	} `json:"repositories"`
}

type languageStatsResponse struct {
	User *LanguagesUser `json:"user"`
}

// StatsUser is the root entity of the user stats query.
type StatsUser struct {
	Login                     string                  `json:"login"`
	ContributionsCollection   ContributionsCollection `json:"contributionsCollection"`
	Repositories              RepositoryConnection    `json:"repositories"`
	RepositoriesContributedTo RepositoryConnection    `json:"repositoriesContributedTo"`
}

type userStatsResponse struct {
	User *StatsUser `json:"user"`
}

// CountConnection carries only a connection's total count.
type CountConnection struct {
	TotalCount int `json:"totalCount"`
}

// PinnedRepository is a pinned repository on a profile.
type PinnedRepository struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	StargazerCount  int       `json:"stargazerCount"`
	PrimaryLanguage *Language `json:"primaryLanguage"`
	URL             string    `json:"url"`
}

// ProfileUser is the root entity of the profile query.
type ProfileUser struct {
	Login       string          `json:"login"`
	Name        *string         `json:"name"`
	AvatarURL   string          `json:"avatarUrl"`
	Bio         *string         `json:"bio"`
	Followers   CountConnection `json:"followers"`
	Following   CountConnection `json:"following"`
	Company     *string         `json:"company"`
	WebsiteURL  *string         `json:"websiteUrl"`
	PinnedItems struct {
		Nodes []PinnedRepository `json:"nodes"`
	} `json:"pinnedItems"`
}

type userProfileResponse struct {
	User *ProfileUser `json:"user"`
}

// RateLimit is the API quota state for the configured token.
type RateLimit struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	ResetAt   string `json:"resetAt"`
}

type rateLimitResponse struct {
	RateLimit RateLimit `json:"rateLimit"`
}
