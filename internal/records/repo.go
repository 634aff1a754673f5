package records

import "context"

var (
	ErrNotFound  = errNotFound{}
	ErrDuplicate = errDuplicate{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }

type errDuplicate struct{}

func (errDuplicate) Error() string { return "record already exists" }

// Repo is the typed record store shared by CRUD handlers, the sync engine,
// the scorer and the summary generator. Existence checks take the type's
// natural key; the backing schema carries matching unique indexes.
type Repo interface {
	CreateInternship(ctx context.Context, in Internship) error
	InternshipExists(ctx context.Context, userID, company, role string) (bool, error)
	ListInternships(ctx context.Context, userID string, status VerificationStatus) ([]Internship, error)
	GetInternship(ctx context.Context, id, userID string) (Internship, error)
	UpdateInternship(ctx context.Context, in Internship) error
	DeleteInternship(ctx context.Context, id, userID string) error

	CreateCourse(ctx context.Context, course Course) error
	CourseExists(ctx context.Context, userID, courseName, platform string) (bool, error)
	ListCourses(ctx context.Context, userID string, status VerificationStatus) ([]Course, error)
	GetCourse(ctx context.Context, id, userID string) (Course, error)
	UpdateCourse(ctx context.Context, course Course) error
	DeleteCourse(ctx context.Context, id, userID string) error

	CreateHackathon(ctx context.Context, hack Hackathon) error
	HackathonExists(ctx context.Context, userID, name string) (bool, error)
	ListHackathons(ctx context.Context, userID string, status VerificationStatus) ([]Hackathon, error)
	GetHackathon(ctx context.Context, id, userID string) (Hackathon, error)
	UpdateHackathon(ctx context.Context, hack Hackathon) error
	DeleteHackathon(ctx context.Context, id, userID string) error

	CreateProject(ctx context.Context, project Project) error
	ProjectExists(ctx context.Context, userID, githubURL string) (bool, error)
	ListProjects(ctx context.Context, userID string) ([]Project, error)
	GetProject(ctx context.Context, id, userID string) (Project, error)
	UpdateProject(ctx context.Context, project Project) error
	DeleteProject(ctx context.Context, id, userID string) error

	CreateSkill(ctx context.Context, skill Skill) error
	SkillExists(ctx context.Context, userID, skillName string) (bool, error)
	ListSkills(ctx context.Context, userID string) ([]Skill, error)
	GetSkill(ctx context.Context, id, userID string) (Skill, error)
	UpdateSkill(ctx context.Context, skill Skill) error
	DeleteSkill(ctx context.Context, id, userID string) error

	ScoreCounts(ctx context.Context, userID string) (ScoreCounts, error)

	// DeleteByUser removes every record the user owns, across all five
	// types. A user with no records is not an error.
	DeleteByUser(ctx context.Context, userID string) error
}
