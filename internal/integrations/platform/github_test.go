package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGitHubFetchSkipsForksAndExtractsLanguages(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "api", "description": "a service", "language": "Go", "html_url": "https://github.com/u/api", "fork": false},
			{"name": "forked", "language": "Go", "html_url": "https://github.com/u/forked", "fork": true},
			{"name": "site", "description": "", "language": "TypeScript", "html_url": "https://github.com/u/site", "homepage": "https://u.dev", "fork": false}
		]`))
	}))
	t.Cleanup(server.Close)

	adapter := NewGitHubAdapter(server.URL)
	payload, err := adapter.Fetch(context.Background(), Session{AccessToken: "tok-1", PlatformUserID: "octocat"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotPath != "/users/octocat/repos" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth == "" {
		t.Fatal("missing Authorization header")
	}

	if len(payload.Projects) != 2 {
		t.Fatalf("projects = %d, want 2 (fork excluded)", len(payload.Projects))
	}
	if payload.Projects[0].Title != "api" || payload.Projects[1].Title != "site" {
		t.Fatalf("unexpected projects: %+v", payload.Projects)
	}
	if payload.Projects[1].Description != "GitHub repository" {
		t.Fatalf("empty description not defaulted: %q", payload.Projects[1].Description)
	}

	// Languages deduplicate across every repo, forks included.
	if len(payload.Skills) != 2 {
		t.Fatalf("skills = %d, want 2", len(payload.Skills))
	}
	for _, skill := range payload.Skills {
		if len(skill.VerifiedBy) != 1 || skill.VerifiedBy[0].Source != "GitHub" {
			t.Fatalf("skill missing GitHub verification: %+v", skill)
		}
	}
}

func TestGitHubFetchCapsAtTenRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := "["
		for i := 0; i < 15; i++ {
			if i > 0 {
				body += ","
			}
			body += `{"name": "r", "language": "Go", "html_url": "https://github.com/u/r", "fork": false}`
		}
		body += "]"
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	adapter := NewGitHubAdapter(server.URL)
	payload, err := adapter.Fetch(context.Background(), Session{AccessToken: "tok", PlatformUserID: "u"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(payload.Projects) != 10 {
		t.Fatalf("projects = %d, want 10", len(payload.Projects))
	}
}

func TestGitHubFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	adapter := NewGitHubAdapter(server.URL)
	if _, err := adapter.Fetch(context.Background(), Session{AccessToken: "bad"}); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestHackerRankProficiencyThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{2000, "expert"},
		{1501, "expert"},
		{1500, "advanced"},
		{1001, "advanced"},
		{1000, "intermediate"},
		{501, "intermediate"},
		{500, "beginner"},
		{0, "beginner"},
	}
	for _, tc := range cases {
		if got := proficiencyForScore(tc.score); got != tc.want {
			t.Errorf("proficiencyForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
