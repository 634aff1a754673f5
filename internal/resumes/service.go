package resumes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resume-ecosystem-backend/internal/records"
)

// RecordSource is the slice of the record store the resume view reads.
// *records.PGRepo and *records.MemoryRepo both satisfy it.
type RecordSource interface {
	ListInternships(ctx context.Context, userID string, status records.VerificationStatus) ([]records.Internship, error)
	ListCourses(ctx context.Context, userID string, status records.VerificationStatus) ([]records.Course, error)
	ListHackathons(ctx context.Context, userID string, status records.VerificationStatus) ([]records.Hackathon, error)
	ListProjects(ctx context.Context, userID string) ([]records.Project, error)
	ListSkills(ctx context.Context, userID string) ([]records.Skill, error)
}

// UserSource supplies the resume header and the role used by the summary.
type UserSource interface {
	ContactCard(ctx context.Context, userID string) (ContactCard, string, error)
}

type Service struct {
	Repo    Repo
	Records RecordSource
	Users   UserSource
}

func NewService(repo Repo, recordSource RecordSource, users UserSource) *Service {
	return &Service{Repo: repo, Records: recordSource, Users: users}
}

func (s *Service) Create(ctx context.Context, resume Resume) (Resume, error) {
	resume.ID = uuid.NewString()
	if resume.Title == "" {
		resume.Title = "My Resume"
	}
	if resume.TemplateID == "" {
		resume.TemplateID = "modern"
	}
	if resume.Visibility == "" {
		resume.Visibility = VisibilityPrivate
	}
	now := time.Now().UTC()
	resume.LastUpdated = now
	resume.CreatedAt = now

	// Clear before insert so the one-default index never sees two.
	if resume.IsDefault {
		if err := s.Repo.ClearDefault(ctx, resume.UserID, ""); err != nil {
			return Resume{}, err
		}
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.List(ctx, userID)
}

// View is a resume joined with the owner's contact info and the records
// enabled by its section toggles.
type View struct {
	Resume      Resume               `json:"resume"`
	User        ContactCard          `json:"user"`
	Internships []records.Internship `json:"internships"`
	Courses     []records.Course     `json:"courses"`
	Hackathons  []records.Hackathon  `json:"hackathons"`
	Projects    []records.Project    `json:"projects"`
	Skills      []records.Skill      `json:"skills"`
}

func (s *Service) GetView(ctx context.Context, id, userID string) (View, error) {
	resume, err := s.Repo.Get(ctx, id, userID)
	if err != nil {
		return View{}, err
	}
	card, _, err := s.Users.ContactCard(ctx, userID)
	if err != nil {
		return View{}, err
	}
	view := View{Resume: resume, User: card}
	if resume.Sections.Internships {
		if view.Internships, err = s.Records.ListInternships(ctx, userID, ""); err != nil {
			return View{}, err
		}
	}
	if resume.Sections.Courses {
		if view.Courses, err = s.Records.ListCourses(ctx, userID, ""); err != nil {
			return View{}, err
		}
	}
	if resume.Sections.Hackathons {
		if view.Hackathons, err = s.Records.ListHackathons(ctx, userID, ""); err != nil {
			return View{}, err
		}
	}
	if resume.Sections.Projects {
		if view.Projects, err = s.Records.ListProjects(ctx, userID); err != nil {
			return View{}, err
		}
	}
	if resume.Sections.Skills {
		if view.Skills, err = s.Records.ListSkills(ctx, userID); err != nil {
			return View{}, err
		}
	}
	return view, nil
}

func (s *Service) Update(ctx context.Context, resume Resume) (Resume, error) {
	current, err := s.Repo.Get(ctx, resume.ID, resume.UserID)
	if err != nil {
		return Resume{}, err
	}
	resume.CreatedAt = current.CreatedAt
	if resume.Title == "" {
		resume.Title = current.Title
	}
	if resume.TemplateID == "" {
		resume.TemplateID = current.TemplateID
	}
	if resume.Visibility == "" {
		resume.Visibility = current.Visibility
	}
	if resume.Summary == "" {
		resume.Summary = current.Summary
	}
	resume.LastUpdated = time.Now().UTC()

	if resume.IsDefault && !current.IsDefault {
		if err := s.Repo.ClearDefault(ctx, resume.UserID, resume.ID); err != nil {
			return Resume{}, err
		}
	}
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.Repo.Delete(ctx, id, userID)
}

// GenerateSummary recomputes the resume's professional summary from the
// user's verified records and persists it.
func (s *Service) GenerateSummary(ctx context.Context, id, userID string) (string, error) {
	if _, err := s.Repo.Get(ctx, id, userID); err != nil {
		return "", err
	}
	_, role, err := s.Users.ContactCard(ctx, userID)
	if err != nil {
		return "", err
	}
	internships, err := s.Records.ListInternships(ctx, userID, records.StatusVerified)
	if err != nil {
		return "", err
	}
	courses, err := s.Records.ListCourses(ctx, userID, records.StatusVerified)
	if err != nil {
		return "", err
	}
	hackathons, err := s.Records.ListHackathons(ctx, userID, records.StatusVerified)
	if err != nil {
		return "", err
	}
	projects, err := s.Records.ListProjects(ctx, userID)
	if err != nil {
		return "", err
	}
	skills, err := s.Records.ListSkills(ctx, userID)
	if err != nil {
		return "", err
	}

	summary := GenerateSummary(SummaryInput{
		UserRole:    role,
		Internships: internships,
		Courses:     courses,
		Hackathons:  hackathons,
		Projects:    projects,
		Skills:      skills,
	})
	if err := s.Repo.SetSummary(ctx, id, userID, summary); err != nil {
		return "", err
	}
	return summary, nil
}

// TouchDefault satisfies the record store's refresh hook.
func (s *Service) TouchDefault(ctx context.Context, userID string) error {
	return s.Repo.TouchDefault(ctx, userID)
}
