package wrapped

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/octowrap/octowrap/pkg/cache"
	"github.com/octowrap/octowrap/pkg/github"
	"github.com/octowrap/octowrap/pkg/observability"
	"github.com/octowrap/octowrap/pkg/stats"
)

// Cache TTLs. Wrapped summaries live longer because most requested years are
// already over; current-year staleness within the TTL is accepted.
const (
	profileTTL = time.Hour
	statsTTL   = time.Hour
	wrappedTTL = 24 * time.Hour
)

// GitHubAPI is the slice of the GitHub client the orchestrators need.
type GitHubAPI interface {
	FetchWrapped(ctx context.Context, username string, from, to time.Time) (*github.WrappedUser, error)
	FetchLanguages(ctx context.Context, username string) (*github.LanguagesUser, error)
	FetchUserStats(ctx context.Context, username string) (*github.StatsUser, error)
	FetchProfile(ctx context.Context, username string) (*github.ProfileUser, error)
}

// Service runs the profile, stats, and wrapped use cases.
type Service struct {
	gh     GitHubAPI
	cache  *cache.Store
	logger *observability.Logger
}

// NewService creates a Service.
func NewService(gh GitHubAPI, cacheStore *cache.Store, logger *observability.Logger) *Service {
	return &Service{
		gh:     gh,
		cache:  cacheStore,
		logger: logger,
	}
}

// GetProfile returns a user's profile, cached for an hour.
func (s *Service) GetProfile(ctx context.Context, username string) (Profile, error) {
	key := fmt.Sprintf("profile:%s", username)
	profile, err := cache.GetOrCompute(ctx, s.cache, key, profileTTL, func() (Profile, error) {
		user, err := s.gh.FetchProfile(ctx, username)
		if err != nil {
			return Profile{}, err
		}
		if user == nil {
			return Profile{}, github.NotFoundError(fmt.Sprintf("User '%s' not found", username))
		}

		pinned := make([]PinnedRepository, 0, len(user.PinnedItems.Nodes))
		for _, repo := range user.PinnedItems.Nodes {
			pinned = append(pinned, PinnedRepository{
				Name:            repo.Name,
				Description:     repo.Description,
				StargazerCount:  repo.StargazerCount,
				PrimaryLanguage: repo.PrimaryLanguage,
				URL:             repo.URL,
			})
		}

		return Profile{
			Name:               user.Name,
			AvatarURL:          user.AvatarURL,
			Bio:                user.Bio,
			Followers:          user.Followers.TotalCount,
			Following:          user.Following.TotalCount,
			Company:            user.Company,
			Website:            user.WebsiteURL,
			PinnedRepositories: pinned,
		}, nil
	})
	return profile, normalizeError(err, "Failed to fetch user profile")
}

// GetWrapped returns the wrapped summary for one (user, year) pair, cached
// for 24 hours. The year window is [Jan 1 00:00:00Z, Dec 31 23:59:59Z].
func (s *Service) GetWrapped(ctx context.Context, username string, year int) (Summary, error) {
	key := fmt.Sprintf("wrapped:%s:%d", username, year)
	summary, err := cache.GetOrCompute(ctx, s.cache, key, wrappedTTL, func() (Summary, error) {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

		user, err := s.gh.FetchWrapped(ctx, username, from, to)
		if err != nil {
			return Summary{}, err
		}
		if user == nil {
			return Summary{}, github.NotFoundError(fmt.Sprintf("User '%s' not found", username))
		}

		contributions := &user.ContributionsCollection
		days := toDays(contributions.Days())

		contributionStats := stats.DeriveContributionStats(stats.ContributionTotals{
			Contributions: contributions.ContributionCalendar.TotalContributions,
			Commits:       contributions.TotalCommitContributions,
			Issues:        contributions.TotalIssueContributions,
			PRs:           contributions.TotalPullRequestContributions,
			Reviews:       contributions.TotalPullRequestReviewContributions,
		})

		activity := stats.DeriveActivityStats(days, repoCreationDates(user.Repositories.Nodes), year)

		languages := s.languageStats(ctx, username)
		if languages.Degraded {
			s.logger.WithError(languages.Cause).
				WithField("username", username).
				Warn("Language breakdown degraded to empty")
		}

		topRepos := stats.DeriveTopRepositories(
			toCandidates(user.Repositories.Nodes, false),
			toCandidates(user.RepositoriesContributedTo.Nodes, true),
			username,
		)

		return Summary{
			Year:      year,
			Username:  user.Login,
			AvatarURL: user.AvatarURL,
			Stats:     contributionStats,
			Activity:  activity,
			Languages: languages.Stats,
			TopRepos:  topRepos,
		}, nil
	})
	return summary, normalizeError(err, "Failed to fetch wrapped stats")
}

// GetUserStats returns lifetime totals plus the language breakdown, cached
// for an hour. Star totals cover the user's first 100 owned repositories;
// paging past 100 is out of scope.
func (s *Service) GetUserStats(ctx context.Context, username string) (UserStats, error) {
	key := fmt.Sprintf("stats:%s", username)
	userStats, err := cache.GetOrCompute(ctx, s.cache, key, statsTTL, func() (UserStats, error) {
		user, err := s.gh.FetchUserStats(ctx, username)
		if err != nil {
			return UserStats{}, err
		}
		if user == nil {
			return UserStats{}, github.NotFoundError(fmt.Sprintf("User '%s' not found", username))
		}

		totalStars := 0
		for _, repo := range user.Repositories.Nodes {
			totalStars += repo.StargazerCount
		}

		languages := s.languageStats(ctx, username)
		if languages.Degraded {
			s.logger.WithError(languages.Cause).
				WithField("username", username).
				Warn("Language breakdown degraded to empty")
		}

		contributions := &user.ContributionsCollection
		return UserStats{
			TotalStars:         totalStars,
			TotalCommits:       contributions.TotalCommitContributions,
			TotalPRs:           contributions.TotalPullRequestContributions,
			TotalIssues:        contributions.TotalIssueContributions,
			TotalContributions: contributions.ContributionCalendar.TotalContributions,
			LanguageBreakdown:  languages.Stats.Breakdown,
		}, nil
	})
	return userStats, normalizeError(err, "Failed to fetch user stats")
}

// languageStats fetches and derives the language breakdown. An upstream
// failure is swallowed here: the result is tagged Degraded and carries the
// empty breakdown, so one broken query does not abort a whole summary.
func (s *Service) languageStats(ctx context.Context, username string) LanguageResult {
	empty := stats.LanguageStats{TopLanguage: nil, Breakdown: []stats.LanguageBreakdown{}}

	user, err := s.gh.FetchLanguages(ctx, username)
	if err != nil {
		return LanguageResult{Stats: empty, Degraded: true, Cause: err}
	}
	if user == nil {
		return LanguageResult{Stats: empty}
	}

	repoEdges := make([][]stats.LanguageEdge, 0, len(user.Repositories.Nodes))
	for _, repo := range user.Repositories.Nodes {
		edges := make([]stats.LanguageEdge, 0, len(repo.Languages.Edges))
		for _, edge := range repo.Languages.Edges {
			edges = append(edges, stats.LanguageEdge{
				Name:  edge.Node.Name,
				Color: edge.Node.Color,
				Size:  edge.Size,
			})
		}
		repoEdges = append(repoEdges, edges)
	}

	return LanguageResult{Stats: stats.DeriveLanguageBreakdown(repoEdges)}
}

// toDays converts calendar days to derivation inputs, dropping entries whose
// date fails to parse.
func toDays(calendarDays []github.ContributionDay) []stats.Day {
	days := make([]stats.Day, 0, len(calendarDays))
	for _, d := range calendarDays {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		days = append(days, stats.Day{
			Date:    date,
			Weekday: d.Weekday,
			Count:   d.ContributionCount,
		})
	}
	return days
}

func repoCreationDates(repos []github.Repository) []time.Time {
	dates := make([]time.Time, 0, len(repos))
	for _, repo := range repos {
		created, err := time.Parse(time.RFC3339, repo.CreatedAt)
		if err != nil {
			continue
		}
		dates = append(dates, created)
	}
	return dates
}

func toCandidates(repos []github.Repository, withOwner bool) []stats.RepoCandidate {
	candidates := make([]stats.RepoCandidate, 0, len(repos))
	for _, repo := range repos {
		candidate := stats.RepoCandidate{
			Name:  repo.Name,
			Stars: repo.StargazerCount,
		}
		if repo.PrimaryLanguage != nil {
			name := repo.PrimaryLanguage.Name
			candidate.Language = &name
		}
		if withOwner && repo.Owner != nil {
			candidate.OwnerLogin = repo.Owner.Login
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// normalizeError passes APIErrors through and wraps anything else as a 500.
func normalizeError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := github.AsAPIError(err); ok {
		return err
	}
	return github.NewAPIError(message, http.StatusInternalServerError, err)
}
