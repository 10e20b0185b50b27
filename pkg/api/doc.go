// Package api exposes the public HTTP surface: user profile, user stats,
// yearly wrapped summaries, health, and upstream rate limit state.
package api
