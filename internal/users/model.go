package users

import "time"

// Roles form a closed set.
const (
	RoleStudent      = "student"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// ValidRole reports whether role is a known role.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// User is an account. Credential and token hash fields never serialize.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FullName         string    `json:"fullName"`
	Phone            string    `json:"phone,omitempty"`
	Role             string    `json:"role"`
	IsVerified       bool      `json:"isVerified"`
	PictureURL       string    `json:"pictureUrl,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	Location         string    `json:"location,omitempty"`
	LinkedInURL      string    `json:"linkedinUrl,omitempty"`
	GitHubURL        string    `json:"githubUrl,omitempty"`
	PortfolioURL     string    `json:"portfolioUrl,omitempty"`
	CredibilityScore int       `json:"credibilityScore"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	VerificationTokenHash      string     `json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`
	ResetTokenHash             string     `json:"-"`
	ResetTokenExpiresAt        *time.Time `json:"-"`
}

// Stats summarizes an account for the dashboard.
type Stats struct {
	Resumes                int `json:"resumes"`
	Internships            int `json:"internships"`
	Projects               int `json:"projects"`
	Courses                int `json:"courses"`
	Hackathons             int `json:"hackathons"`
	VerifiedInternships    int `json:"verifiedInternships"`
	VerifiedCourses        int `json:"verifiedCourses"`
	VerificationPercentage int `json:"verificationPercentage"`
	CredibilityScore       int `json:"credibilityScore"`
	AccountAgeDays         int `json:"accountAge"`
}
