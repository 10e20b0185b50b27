package github

// Query documents sent to the GitHub GraphQL API. Variables are passed
// separately; see the Fetch* methods on Client.

// wrappedStatsQuery fetches a user's contribution calendar plus owned and
// contributed-to repositories for a single year window.
const wrappedStatsQuery = `
  query GetWrappedStats($username: String!, $from: DateTime!, $to: DateTime!) {
    user(login: $username) {
      login
      name
      avatarUrl
      createdAt
      contributionsCollection(from: $from, to: $to) {
        totalCommitContributions
        totalIssueContributions
        totalPullRequestContributions
        totalPullRequestReviewContributions
        contributionCalendar {
          totalContributions
          weeks {
            contributionDays {
              contributionCount
              date
              weekday
            }
          }
        }
      }
      repositories(first: 50, orderBy: {field: PUSHED_AT, direction: DESC}, ownerAffiliations: OWNER) {
        nodes {
          name
          stargazerCount
          primaryLanguage {
            name
            color
          }
          createdAt
        }
      }
      repositoriesContributedTo(first: 50, contributionTypes: [COMMIT, ISSUE, PULL_REQUEST]) {
        nodes {
          name
          owner {
            login
          }
          stargazerCount
          primaryLanguage {
            name
            color
          }
        }
      }
    }
  }
`

// languageStatsQuery fetches per-repository language byte counts across the
// user's owned repositories. Issued separately from wrappedStatsQuery because
// that query's repository list carries no language size data.
const languageStatsQuery = `
  query GetLanguageStats($username: String!) {
    user(login: $username) {
      repositories(first: 100, ownerAffiliations: OWNER) {
        nodes {
          languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
            edges {
              size
              node {
                name
                color
              }
            }
          }
        }
      }
    }
  }
`

// userStatsQuery fetches lifetime contribution totals and the first 100
// owned repositories for star counting.
const userStatsQuery = `
  query GetUserStats($username: String!) {
    user(login: $username) {
      login
      contributionsCollection {
        totalCommitContributions
        totalIssueContributions
        totalPullRequestContributions
        totalPullRequestReviewContributions
        contributionCalendar {
          totalContributions
        }
      }
      repositories(first: 100, ownerAffiliations: OWNER) {
        totalCount
        nodes {
          stargazerCount
          primaryLanguage {
            name
            color
          }
        }
      }
      repositoriesContributedTo(first: 100) {
        totalCount
      }
    }
  }
`

// userProfileQuery fetches profile fields and pinned repositories.
const userProfileQuery = `
  query GetUserProfile($username: String!) {
    user(login: $username) {
      login
      name
      avatarUrl
      bio
      followers {
        totalCount
      }
      following {
        totalCount
      }
      company
      websiteUrl
      pinnedItems(first: 6, types: REPOSITORY) {
        nodes {
          ... on Repository {
            name
            description
            stargazerCount
            primaryLanguage {
              name
              color
            }
            url
          }
        }
      }
    }
  }
`

// rateLimitQuery introspects the API quota for the configured token.
const rateLimitQuery = `
  query {
    rateLimit {
      limit
      remaining
      resetAt
    }
  }
`
