package stats

import "sort"

const (
	maxTopRepositories = 10

	// Fixed contribution estimates by affiliation. Acknowledged
	// approximations: real per-repo attribution would need commit history
	// queries the wrapped summary does not make.
	ownedRepoContributions       = 50
	contributedRepoContributions = 10
)

// DeriveTopRepositories ranks owned and contributed-to repositories by star
// count and keeps the top ten. Owned repositories are attributed to the user
// directly; contributed repositories to their actual owner, or "unknown"
// when the owner login is absent.
func DeriveTopRepositories(owned, contributed []RepoCandidate, username string) []TopRepository {
	all := make([]TopRepository, 0, len(owned)+len(contributed))

	for _, repo := range owned {
		all = append(all, TopRepository{
			Name:          repo.Name,
			Owner:         username,
			Contributions: ownedRepoContributions,
			Stars:         repo.Stars,
			Language:      repo.Language,
		})
	}

	for _, repo := range contributed {
		owner := repo.OwnerLogin
		if owner == "" {
			owner = "unknown"
		}
		all = append(all, TopRepository{
			Name:          repo.Name,
			Owner:         owner,
			Contributions: contributedRepoContributions,
			Stars:         repo.Stars,
			Language:      repo.Language,
		})
	}

	// Ranked by popularity, not by the contribution estimate
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Stars > all[j].Stars
	})

	if len(all) > maxTopRepositories {
		all = all[:maxTopRepositories]
	}
	return all
}
