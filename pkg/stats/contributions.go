package stats

// ContributionTotals is the raw totals input to DeriveContributionStats.
type ContributionTotals struct {
	Contributions int
	Commits       int
	Issues        int
	PRs           int
	Reviews       int
}

// DeriveContributionStats projects raw totals into the response rollup.
func DeriveContributionStats(t ContributionTotals) ContributionStats {
	return ContributionStats{
		TotalContributions: t.Contributions,
		TotalCommits:       t.Commits,
		TotalPRs:           t.PRs,
		TotalIssues:        t.Issues,
		TotalReviews:       t.Reviews,
	}
}
