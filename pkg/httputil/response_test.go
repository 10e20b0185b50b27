package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := WriteSuccess(rec, map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("WriteSuccess() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		wantCode int
		wantKind string
		wantMsg  string
	}{
		{
			name:     "generic",
			write:    func(w http.ResponseWriter) { WriteError(w, http.StatusBadGateway, "Bad Gateway", "upstream broke") },
			wantCode: http.StatusBadGateway,
			wantKind: "Bad Gateway",
			wantMsg:  "upstream broke",
		},
		{
			name:     "validation",
			write:    func(w http.ResponseWriter) { WriteValidationError(w, "Username parameter is required") },
			wantCode: http.StatusBadRequest,
			wantKind: "Bad Request",
			wantMsg:  "Username parameter is required",
		},
		{
			name:     "not found",
			write:    func(w http.ResponseWriter) { WriteNotFoundError(w, "User 'ghost' not found") },
			wantCode: http.StatusNotFound,
			wantKind: "Not Found",
			wantMsg:  "User 'ghost' not found",
		},
		{
			name:     "internal",
			write:    func(w http.ResponseWriter) { WriteInternalError(w, "An unexpected error occurred") },
			wantCode: http.StatusInternalServerError,
			wantKind: "Internal Server Error",
			wantMsg:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Error != tt.wantKind {
				t.Errorf("error = %q, want %q", body.Error, tt.wantKind)
			}
			if body.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMsg)
			}
			if body.StatusCode != tt.wantCode {
				t.Errorf("statusCode = %d, want %d", body.StatusCode, tt.wantCode)
			}
		})
	}
}

func TestParseQueryInt(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   int
		wantOK bool
	}{
		{"absent uses default", "/x", 2024, true},
		{"present", "/x?year=2020", 2020, true},
		{"invalid", "/x?year=abc", 0, false},
		{"negative", "/x?year=-3", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			got, ok := ParseQueryInt(r, "year", 2024)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseQueryInt() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseQueryString(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?name=octocat", nil)
	if got := ParseQueryString(r, "name", "fallback"); got != "octocat" {
		t.Errorf("got %q", got)
	}
	if got := ParseQueryString(r, "missing", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
}
