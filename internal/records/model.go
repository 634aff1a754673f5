package records

import "time"

// VerificationStatus tags externally-attestable records.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

// ValidStatus reports whether s is a known verification status.
func ValidStatus(s VerificationStatus) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Internship is a work engagement owned by a user.
// Natural key: (userId, company, role).
type Internship struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	Company            string             `json:"company"`
	Role               string             `json:"role"`
	Description        string             `json:"description,omitempty"`
	StartDate          *time.Time         `json:"startDate,omitempty"`
	EndDate            *time.Time         `json:"endDate,omitempty"`
	IsCurrentlyWorking bool               `json:"isCurrentlyWorking"`
	Location           string             `json:"location,omitempty"`
	PlatformName       string             `json:"platformName,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// Course is a completed course. Natural key: (userId, courseName, platform).
type Course struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	CourseName         string             `json:"courseName"`
	Platform           string             `json:"platform"`
	Instructor         string             `json:"instructor,omitempty"`
	CompletionDate     *time.Time         `json:"completionDate,omitempty"`
	SkillsLearned      []string           `json:"skillsLearned,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// Hackathon is a hackathon participation. Natural key: (userId, name).
type Hackathon struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	Name               string             `json:"name"`
	Organizer          string             `json:"organizer,omitempty"`
	Position           string             `json:"position,omitempty"`
	ProjectName        string             `json:"projectName,omitempty"`
	ProjectDescription string             `json:"projectDescription,omitempty"`
	Technologies       []string           `json:"technologies,omitempty"`
	EventDate          *time.Time         `json:"eventDate,omitempty"`
	ProjectURL         string             `json:"projectUrl,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// Project has no verification concept; all projects count toward scoring.
// Natural key: (userId, githubUrl).
type Project struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Technologies []string   `json:"technologies,omitempty"`
	GitHubURL    string     `json:"githubUrl,omitempty"`
	LiveURL      string     `json:"liveUrl,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Verification records which source attested a skill and when.
type Verification struct {
	Source string    `json:"source"`
	Date   time.Time `json:"date"`
}

// Skill is a named skill. Natural key: (userId, skillName).
type Skill struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	SkillName        string         `json:"skillName"`
	Category         string         `json:"category"`
	ProficiencyLevel string         `json:"proficiencyLevel"`
	VerifiedBy       []Verification `json:"verifiedBy,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// ScoreCounts are the inputs to the credibility score.
type ScoreCounts struct {
	VerifiedInternships int
	VerifiedCourses     int
	VerifiedHackathons  int
	Projects            int
}
