package wrapped

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octowrap/octowrap/pkg/cache"
	"github.com/octowrap/octowrap/pkg/github"
	"github.com/octowrap/octowrap/pkg/observability"
)

type fakeGitHub struct {
	wrappedUser *github.WrappedUser
	wrappedErr  error
	langUser    *github.LanguagesUser
	langErr     error
	statsUser   *github.StatsUser
	statsErr    error
	profileUser *github.ProfileUser
	profileErr  error

	wrappedCalls int
	gotFrom      time.Time
	gotTo        time.Time
}

func (f *fakeGitHub) FetchWrapped(_ context.Context, _ string, from, to time.Time) (*github.WrappedUser, error) {
	f.wrappedCalls++
	f.gotFrom = from
	f.gotTo = to
	return f.wrappedUser, f.wrappedErr
}

func (f *fakeGitHub) FetchLanguages(context.Context, string) (*github.LanguagesUser, error) {
	return f.langUser, f.langErr
}

func (f *fakeGitHub) FetchUserStats(context.Context, string) (*github.StatsUser, error) {
	return f.statsUser, f.statsErr
}

func (f *fakeGitHub) FetchProfile(context.Context, string) (*github.ProfileUser, error) {
	return f.profileUser, f.profileErr
}

func newTestService(gh GitHubAPI) *Service {
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	store := cache.NewStore(cache.Config{Enabled: false}, logger)
	return NewService(gh, store, logger)
}

func newCachedService(t *testing.T, gh GitHubAPI) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	store := cache.NewStore(cache.Config{
		Enabled:  true,
		RedisURL: "redis://" + mr.Addr(),
		RedisDB:  -1,
	}, logger)
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { store.Close() })
	return NewService(gh, store, logger)
}

func calendarWeek(days ...github.ContributionDay) github.ContributionWeek {
	return github.ContributionWeek{ContributionDays: days}
}

func sampleWrappedUser() *github.WrappedUser {
	return &github.WrappedUser{
		Login:     "octocat",
		AvatarURL: "https://example.com/a.png",
		ContributionsCollection: github.ContributionsCollection{
			TotalCommitContributions:            900,
			TotalIssueContributions:             40,
			TotalPullRequestContributions:       150,
			TotalPullRequestReviewContributions: 110,
			ContributionCalendar: github.ContributionCalendar{
				TotalContributions: 1200,
				Weeks: []github.ContributionWeek{
					// 2024-01-01 is a Monday
					calendarWeek(
						github.ContributionDay{ContributionCount: 5, Date: "2024-01-01", Weekday: 1},
						github.ContributionDay{ContributionCount: 3, Date: "2024-01-02", Weekday: 2},
						github.ContributionDay{ContributionCount: 0, Date: "2024-01-03", Weekday: 3},
						github.ContributionDay{ContributionCount: 8, Date: "2024-01-04", Weekday: 4},
					),
				},
			},
		},
		Repositories: github.RepositoryConnection{
			TotalCount: 2,
			Nodes: []github.Repository{
				{
					Name:            "popular",
					StargazerCount:  900,
					PrimaryLanguage: &github.Language{Name: "Go", Color: "#00ADD8"},
					CreatedAt:       "2024-02-01T00:00:00Z",
				},
				{
					Name:           "dotfiles",
					StargazerCount: 5,
					CreatedAt:      "2020-05-01T00:00:00Z",
				},
			},
		},
		RepositoriesContributedTo: github.RepositoryConnection{
			TotalCount: 1,
			Nodes: []github.Repository{
				{
					Name:           "kubernetes",
					Owner:          &github.RepositoryOwner{Login: "kubernetes"},
					StargazerCount: 100000,
				},
			},
		},
	}
}

func sampleLanguagesUser() *github.LanguagesUser {
	user := &github.LanguagesUser{}
	repo := github.LanguageRepository{}
	repo.Languages.Edges = []github.LanguageEdge{
		{Size: 8000, Node: github.Language{Name: "Go", Color: "#00ADD8"}},
		{Size: 2000, Node: github.Language{Name: "Shell", Color: "#89e051"}},
	}
	user.Repositories.Nodes = []github.LanguageRepository{repo}
	return user
}

func TestGetWrapped(t *testing.T) {
	gh := &fakeGitHub{
		wrappedUser: sampleWrappedUser(),
		langUser:    sampleLanguagesUser(),
	}
	svc := newTestService(gh)

	summary, err := svc.GetWrapped(context.Background(), "octocat", 2024)
	require.NoError(t, err)

	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, "octocat", summary.Username)
	assert.Equal(t, "https://example.com/a.png", summary.AvatarURL)

	assert.Equal(t, 1200, summary.Stats.TotalContributions)
	assert.Equal(t, 900, summary.Stats.TotalCommits)
	assert.Equal(t, 150, summary.Stats.TotalPRs)
	assert.Equal(t, 40, summary.Stats.TotalIssues)
	assert.Equal(t, 110, summary.Stats.TotalReviews)

	assert.Equal(t, "Thursday", summary.Activity.BusiestDay)
	assert.Equal(t, "January", summary.Activity.BusiestMonth)
	assert.Equal(t, 2, summary.Activity.LongestStreak)
	assert.Equal(t, 1, summary.Activity.CurrentStreak)
	require.NotNil(t, summary.Activity.FirstContribution)
	assert.Equal(t, "2024-01-01", *summary.Activity.FirstContribution)
	assert.Equal(t, 1, summary.Activity.NewReposCreated)

	require.NotNil(t, summary.Languages.TopLanguage)
	assert.Equal(t, "Go", *summary.Languages.TopLanguage)

	require.Len(t, summary.TopRepos, 3)
	assert.Equal(t, "kubernetes", summary.TopRepos[0].Name)
	assert.Equal(t, "kubernetes", summary.TopRepos[0].Owner)
	assert.Equal(t, 10, summary.TopRepos[0].Contributions)
	assert.Equal(t, "popular", summary.TopRepos[1].Name)
	assert.Equal(t, "octocat", summary.TopRepos[1].Owner)
	assert.Equal(t, 50, summary.TopRepos[1].Contributions)
}

func TestGetWrappedYearWindow(t *testing.T) {
	gh := &fakeGitHub{wrappedUser: sampleWrappedUser(), langUser: sampleLanguagesUser()}
	svc := newTestService(gh)

	_, err := svc.GetWrapped(context.Background(), "octocat", 2023)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), gh.gotFrom)
	assert.Equal(t, time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC), gh.gotTo)
}

func TestGetWrappedUserNotFound(t *testing.T) {
	svc := newTestService(&fakeGitHub{})

	_, err := svc.GetWrapped(context.Background(), "ghost", 2024)

	apiErr, ok := github.AsAPIError(err)
	require.True(t, ok, "error = %v, want APIError", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "User 'ghost' not found", apiErr.Message)
}

func TestGetWrappedUpstreamErrorPassesThrough(t *testing.T) {
	upstream := github.NewAPIError("GitHub API request failed", http.StatusBadGateway, nil)
	svc := newTestService(&fakeGitHub{wrappedErr: upstream})

	_, err := svc.GetWrapped(context.Background(), "octocat", 2024)

	apiErr, ok := github.AsAPIError(err)
	require.True(t, ok, "error = %v, want APIError", err)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "GitHub API request failed", apiErr.Message)
}

func TestGetWrappedUnexpectedErrorWrapped(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	svc := newTestService(&fakeGitHub{wrappedErr: cause})

	_, err := svc.GetWrapped(context.Background(), "octocat", 2024)

	apiErr, ok := github.AsAPIError(err)
	require.True(t, ok, "error = %v, want APIError", err)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to fetch wrapped stats", apiErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestGetWrappedDegradedLanguages(t *testing.T) {
	gh := &fakeGitHub{
		wrappedUser: sampleWrappedUser(),
		langErr:     github.NewAPIError("GitHub API request failed", http.StatusBadGateway, nil),
	}
	svc := newTestService(gh)

	summary, err := svc.GetWrapped(context.Background(), "octocat", 2024)
	require.NoError(t, err, "language failure must degrade, not abort")

	assert.Nil(t, summary.Languages.TopLanguage)
	assert.NotNil(t, summary.Languages.Breakdown)
	assert.Empty(t, summary.Languages.Breakdown)
	assert.Equal(t, 1200, summary.Stats.TotalContributions)
}

func TestGetWrappedCaches(t *testing.T) {
	gh := &fakeGitHub{wrappedUser: sampleWrappedUser(), langUser: sampleLanguagesUser()}
	svc := newCachedService(t, gh)

	first, err := svc.GetWrapped(context.Background(), "octocat", 2024)
	require.NoError(t, err)
	second, err := svc.GetWrapped(context.Background(), "octocat", 2024)
	require.NoError(t, err)

	assert.Equal(t, 1, gh.wrappedCalls, "second call must be served from cache")
	assert.Equal(t, first, second)
}

func TestGetWrappedErrorNotCached(t *testing.T) {
	gh := &fakeGitHub{wrappedErr: github.NewAPIError("GitHub API request failed", http.StatusBadGateway, nil)}
	svc := newCachedService(t, gh)

	_, err := svc.GetWrapped(context.Background(), "octocat", 2024)
	require.Error(t, err)

	// Upstream recovers; the failure must not have been cached.
	gh.wrappedErr = nil
	gh.wrappedUser = sampleWrappedUser()
	gh.langUser = sampleLanguagesUser()

	summary, err := svc.GetWrapped(context.Background(), "octocat", 2024)
	require.NoError(t, err)
	assert.Equal(t, "octocat", summary.Username)
}

func TestGetUserStats(t *testing.T) {
	statsUser := &github.StatsUser{
		Login: "octocat",
		ContributionsCollection: github.ContributionsCollection{
			TotalCommitContributions:      900,
			TotalIssueContributions:       40,
			TotalPullRequestContributions: 150,
			ContributionCalendar: github.ContributionCalendar{
				TotalContributions: 1200,
			},
		},
		Repositories: github.RepositoryConnection{
			Nodes: []github.Repository{
				{Name: "a", StargazerCount: 7},
				{Name: "b", StargazerCount: 3},
			},
		},
	}
	gh := &fakeGitHub{statsUser: statsUser, langUser: sampleLanguagesUser()}
	svc := newTestService(gh)

	got, err := svc.GetUserStats(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, 10, got.TotalStars)
	assert.Equal(t, 900, got.TotalCommits)
	assert.Equal(t, 150, got.TotalPRs)
	assert.Equal(t, 40, got.TotalIssues)
	assert.Equal(t, 1200, got.TotalContributions)
	require.Len(t, got.LanguageBreakdown, 2)
	assert.Equal(t, "Go", got.LanguageBreakdown[0].Lang)
}

func TestGetUserStatsNotFound(t *testing.T) {
	svc := newTestService(&fakeGitHub{})

	_, err := svc.GetUserStats(context.Background(), "ghost")

	apiErr, ok := github.AsAPIError(err)
	require.True(t, ok, "error = %v, want APIError", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "User 'ghost' not found", apiErr.Message)
}

func TestGetUserStatsUnexpectedErrorWrapped(t *testing.T) {
	svc := newTestService(&fakeGitHub{statsErr: errors.New("boom")})

	_, err := svc.GetUserStats(context.Background(), "octocat")

	apiErr, ok := github.AsAPIError(err)
	require.True(t, ok, "error = %v, want APIError", err)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to fetch user stats", apiErr.Message)
}

func TestGetProfile(t *testing.T) {
	name := "The Octocat"
	bio := "I build things"
	desc := "Config files"
	profileUser := &github.ProfileUser{
		Login:     "octocat",
		Name:      &name,
		AvatarURL: "https://example.com/a.png",
		Bio:       &bio,
		Followers: github.CountConnection{TotalCount: 100},
		Following: github.CountConnection{TotalCount: 50},
	}
	profileUser.PinnedItems.Nodes = []github.PinnedRepository{
		{
			Name:            "dotfiles",
			Description:     &desc,
			StargazerCount:  12,
			PrimaryLanguage: &github.Language{Name: "Shell", Color: "#89e051"},
			URL:             "https://github.com/octocat/dotfiles",
		},
	}

	svc := newTestService(&fakeGitHub{profileUser: profileUser})

	got, err := svc.GetProfile(context.Background(), "octocat")
	require.NoError(t, err)

	require.NotNil(t, got.Name)
	assert.Equal(t, "The Octocat", *got.Name)
	assert.Equal(t, 100, got.Followers)
	assert.Equal(t, 50, got.Following)
	require.Len(t, got.PinnedRepositories, 1)
	assert.Equal(t, "dotfiles", got.PinnedRepositories[0].Name)
	assert.Equal(t, 12, got.PinnedRepositories[0].StargazerCount)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := newTestService(&fakeGitHub{})

	_, err := svc.GetProfile(context.Background(), "ghost")

	apiErr, ok := github.AsAPIError(err)
	require.True(t, ok, "error = %v, want APIError", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestLanguageStatsNilUserNotDegraded(t *testing.T) {
	svc := newTestService(&fakeGitHub{})

	result := svc.languageStats(context.Background(), "ghost")

	assert.False(t, result.Degraded)
	assert.Nil(t, result.Stats.TopLanguage)
	assert.Empty(t, result.Stats.Breakdown)
}

func TestToDaysSkipsBadDates(t *testing.T) {
	days := toDays([]github.ContributionDay{
		{Date: "2024-01-01", ContributionCount: 1, Weekday: 1},
		{Date: "not-a-date", ContributionCount: 5, Weekday: 2},
	})

	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Count)
}
