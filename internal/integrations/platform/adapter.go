// Package platform holds the per-platform fetch adapters used by the sync
// engine. Adapters translate external API payloads into record candidates;
// they never touch storage.
package platform

import (
	"context"
	"net/http"
	"time"

	"resume-ecosystem-backend/internal/records"
)

// Session carries the credentials stored for a connected integration.
type Session struct {
	AccessToken    string
	PlatformUserID string
}

// Payload is the normalized output of one fetch. UserID and ID fields on
// the candidates are left empty; the sync engine fills them on insert.
type Payload struct {
	Internships []records.Internship
	Courses     []records.Course
	Hackathons  []records.Hackathon
	Projects    []records.Project
	Skills      []records.Skill
}

// Adapter fetches record candidates from one external platform.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, session Session) (Payload, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
