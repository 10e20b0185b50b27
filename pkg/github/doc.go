// Package github is the upstream query layer for the GitHub GraphQL API.
//
// It issues parameterized query documents over HTTP with a bearer token and
// parses responses into typed structs at the boundary. Every upstream fault
// (transport, auth, malformed response, GraphQL-level errors) is normalized
// into a single *APIError carrying an HTTP-style status code. The layer does
// not special-case entity absence: a successful response with a null root
// user is returned as (nil, nil) and the caller decides whether that is a
// 404.
package github
