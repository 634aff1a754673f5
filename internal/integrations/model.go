package integrations

import "time"

// Integration is one user's connection to an external platform.
// Unique per (userId, platformName).
type Integration struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	PlatformName   string     `json:"platformName"`
	PlatformUserID string     `json:"platformUserId,omitempty"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	TokenExpiry    *time.Time `json:"tokenExpiry,omitempty"`
	ConnectedAt    time.Time  `json:"connectedAt"`
	LastSync       *time.Time `json:"lastSync,omitempty"`
	SyncStatus     string     `json:"syncStatus"`
}

// SyncResult reports what one sync run inserted.
type SyncResult struct {
	Platform          string `json:"platform"`
	InternshipsSynced int    `json:"internshipsSynced"`
	CoursesSynced     int    `json:"coursesSynced"`
	HackathonsSynced  int    `json:"hackathonsSynced"`
	ProjectsSynced    int    `json:"projectsSynced"`
	SkillsSynced      int    `json:"skillsSynced"`
	DuplicatesSkipped int    `json:"duplicatesSkipped"`
	CredibilityScore  int    `json:"credibilityScore"`
}
