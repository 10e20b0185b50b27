// Package wrapped orchestrates the profile, user-stats, and wrapped-summary
// use cases: cache lookup, upstream GraphQL fetch, pure derivation, cache
// write.
//
// Orchestrators return *github.APIError for every failure: upstream errors
// propagate unchanged, an absent root user becomes a 404, and anything else
// is wrapped with a 500. The language breakdown is the one deliberately
// partial path: its upstream failure degrades the summary to an empty
// breakdown instead of aborting the request, and the degradation is recorded
// in a tagged LanguageResult so callers and tests can observe it.
package wrapped
