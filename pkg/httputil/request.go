package httputil

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// GetPathVars returns all path variables from the request
func GetPathVars(r *http.Request) map[string]string {
	return mux.Vars(r)
}

// ParsePathString extracts a string path parameter; empty when missing.
func ParsePathString(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}

// ParseQueryString extracts a string query parameter with a default.
func ParseQueryString(r *http.Request, key string, defaultVal string) string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// ParseQueryInt extracts and parses an integer query parameter. The boolean
// reports whether the parameter was present and valid; an absent parameter
// returns the default with ok=true.
func ParseQueryInt(r *http.Request, key string, defaultVal int) (int, bool) {
	str := r.URL.Query().Get(key)
	if str == "" {
		return defaultVal, true
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, false
	}
	return val, true
}
