package resumes

import "time"

// Visibility values form a closed set.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
	VisibilityShared  = "shared"
)

// ValidVisibility reports whether v is a known visibility.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityShared:
		return true
	}
	return false
}

// Sections toggles which record types render into the resume view.
type Sections struct {
	Education    bool `json:"education"`
	Internships  bool `json:"internships"`
	Projects     bool `json:"projects"`
	Courses      bool `json:"courses"`
	Hackathons   bool `json:"hackathons"`
	Skills       bool `json:"skills"`
	Achievements bool `json:"achievements"`
}

// DefaultSections enables everything.
func DefaultSections() Sections {
	return Sections{
		Education:    true,
		Internships:  true,
		Projects:     true,
		Courses:      true,
		Hackathons:   true,
		Skills:       true,
		Achievements: true,
	}
}

// CustomSection is free-form user content rendered at the given order.
type CustomSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// Resume is a named view over the user's records. At most one resume per
// user may be the default; the store enforces this.
type Resume struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Title          string          `json:"title"`
	IsDefault      bool            `json:"isDefault"`
	TemplateID     string          `json:"templateId"`
	Visibility     string          `json:"visibility"`
	Summary        string          `json:"summary,omitempty"`
	Sections       Sections        `json:"sections"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
	LastUpdated    time.Time       `json:"lastUpdated"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ContactCard is the user header rendered alongside a resume.
type ContactCard struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	LinkedInURL  string `json:"linkedinUrl,omitempty"`
	GitHubURL    string `json:"githubUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
	Bio          string `json:"bio,omitempty"`
}
