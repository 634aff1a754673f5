package records

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ecosystem-backend/internal/shared/telemetry"
)

// Rescorer recomputes a user's credibility score from stored counts.
type Rescorer interface {
	Recompute(ctx context.Context, userID string) (int, error)
}

// ResumeToucher stamps the user's default resume as stale-refreshed.
type ResumeToucher interface {
	TouchDefault(ctx context.Context, userID string) error
}

type Service struct {
	Repo    Repo
	Scorer  Rescorer
	Resumes ResumeToucher
}

func NewService(repo Repo, scorer Rescorer, resumes ResumeToucher) *Service {
	return &Service{Repo: repo, Scorer: scorer, Resumes: resumes}
}

func (s *Service) CreateInternship(ctx context.Context, in Internship) (Internship, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Role = strings.TrimSpace(in.Role)
	exists, err := s.Repo.InternshipExists(ctx, in.UserID, in.Company, in.Role)
	if err != nil {
		return Internship{}, err
	}
	if exists {
		return Internship{}, ErrDuplicate
	}
	in.ID = uuid.NewString()
	if in.VerificationStatus == "" {
		in.VerificationStatus = StatusPending
	}
	in.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateInternship(ctx, in); err != nil {
		return Internship{}, err
	}
	s.afterChange(ctx, in.UserID)
	return in, nil
}

func (s *Service) ListInternships(ctx context.Context, userID string, status VerificationStatus) ([]Internship, error) {
	return s.Repo.ListInternships(ctx, userID, status)
}

func (s *Service) UpdateInternship(ctx context.Context, in Internship) (Internship, error) {
	current, err := s.Repo.GetInternship(ctx, in.ID, in.UserID)
	if err != nil {
		return Internship{}, err
	}
	in.CreatedAt = current.CreatedAt
	if in.VerificationStatus == "" {
		in.VerificationStatus = current.VerificationStatus
	}
	if err := s.Repo.UpdateInternship(ctx, in); err != nil {
		return Internship{}, err
	}
	s.afterChange(ctx, in.UserID)
	return in, nil
}

func (s *Service) DeleteInternship(ctx context.Context, id, userID string) error {
	if err := s.Repo.DeleteInternship(ctx, id, userID); err != nil {
		return err
	}
	s.afterChange(ctx, userID)
	return nil
}

func (s *Service) CreateCourse(ctx context.Context, course Course) (Course, error) {
	course.CourseName = strings.TrimSpace(course.CourseName)
	course.Platform = strings.TrimSpace(course.Platform)
	exists, err := s.Repo.CourseExists(ctx, course.UserID, course.CourseName, course.Platform)
	if err != nil {
		return Course{}, err
	}
	if exists {
		return Course{}, ErrDuplicate
	}
	course.ID = uuid.NewString()
	if course.VerificationStatus == "" {
		course.VerificationStatus = StatusPending
	}
	course.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateCourse(ctx, course); err != nil {
		return Course{}, err
	}
	s.afterChange(ctx, course.UserID)
	return course, nil
}

func (s *Service) ListCourses(ctx context.Context, userID string, status VerificationStatus) ([]Course, error) {
	return s.Repo.ListCourses(ctx, userID, status)
}

func (s *Service) UpdateCourse(ctx context.Context, course Course) (Course, error) {
	current, err := s.Repo.GetCourse(ctx, course.ID, course.UserID)
	if err != nil {
		return Course{}, err
	}
	course.CreatedAt = current.CreatedAt
	if course.VerificationStatus == "" {
		course.VerificationStatus = current.VerificationStatus
	}
	if err := s.Repo.UpdateCourse(ctx, course); err != nil {
		return Course{}, err
	}
	s.afterChange(ctx, course.UserID)
	return course, nil
}

func (s *Service) DeleteCourse(ctx context.Context, id, userID string) error {
	if err := s.Repo.DeleteCourse(ctx, id, userID); err != nil {
		return err
	}
	s.afterChange(ctx, userID)
	return nil
}

func (s *Service) CreateHackathon(ctx context.Context, hack Hackathon) (Hackathon, error) {
	hack.Name = strings.TrimSpace(hack.Name)
	exists, err := s.Repo.HackathonExists(ctx, hack.UserID, hack.Name)
	if err != nil {
		return Hackathon{}, err
	}
	if exists {
		return Hackathon{}, ErrDuplicate
	}
	hack.ID = uuid.NewString()
	if hack.VerificationStatus == "" {
		hack.VerificationStatus = StatusPending
	}
	hack.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateHackathon(ctx, hack); err != nil {
		return Hackathon{}, err
	}
	s.afterChange(ctx, hack.UserID)
	return hack, nil
}

func (s *Service) ListHackathons(ctx context.Context, userID string, status VerificationStatus) ([]Hackathon, error) {
	return s.Repo.ListHackathons(ctx, userID, status)
}

func (s *Service) UpdateHackathon(ctx context.Context, hack Hackathon) (Hackathon, error) {
	current, err := s.Repo.GetHackathon(ctx, hack.ID, hack.UserID)
	if err != nil {
		return Hackathon{}, err
	}
	hack.CreatedAt = current.CreatedAt
	if hack.VerificationStatus == "" {
		hack.VerificationStatus = current.VerificationStatus
	}
	if err := s.Repo.UpdateHackathon(ctx, hack); err != nil {
		return Hackathon{}, err
	}
	s.afterChange(ctx, hack.UserID)
	return hack, nil
}

func (s *Service) DeleteHackathon(ctx context.Context, id, userID string) error {
	if err := s.Repo.DeleteHackathon(ctx, id, userID); err != nil {
		return err
	}
	s.afterChange(ctx, userID)
	return nil
}

func (s *Service) CreateProject(ctx context.Context, project Project) (Project, error) {
	project.Title = strings.TrimSpace(project.Title)
	if project.GitHubURL != "" {
		exists, err := s.Repo.ProjectExists(ctx, project.UserID, project.GitHubURL)
		if err != nil {
			return Project{}, err
		}
		if exists {
			return Project{}, ErrDuplicate
		}
	}
	project.ID = uuid.NewString()
	project.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return Project{}, err
	}
	s.afterChange(ctx, project.UserID)
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	return s.Repo.ListProjects(ctx, userID)
}

func (s *Service) UpdateProject(ctx context.Context, project Project) (Project, error) {
	current, err := s.Repo.GetProject(ctx, project.ID, project.UserID)
	if err != nil {
		return Project{}, err
	}
	project.CreatedAt = current.CreatedAt
	if err := s.Repo.UpdateProject(ctx, project); err != nil {
		return Project{}, err
	}
	s.afterChange(ctx, project.UserID)
	return project, nil
}

func (s *Service) DeleteProject(ctx context.Context, id, userID string) error {
	if err := s.Repo.DeleteProject(ctx, id, userID); err != nil {
		return err
	}
	s.afterChange(ctx, userID)
	return nil
}

func (s *Service) CreateSkill(ctx context.Context, skill Skill) (Skill, error) {
	skill.SkillName = strings.TrimSpace(skill.SkillName)
	exists, err := s.Repo.SkillExists(ctx, skill.UserID, skill.SkillName)
	if err != nil {
		return Skill{}, err
	}
	if exists {
		return Skill{}, ErrDuplicate
	}
	skill.ID = uuid.NewString()
	if skill.Category == "" {
		skill.Category = "technical"
	}
	if skill.ProficiencyLevel == "" {
		skill.ProficiencyLevel = "intermediate"
	}
	skill.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateSkill(ctx, skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

func (s *Service) ListSkills(ctx context.Context, userID string) ([]Skill, error) {
	return s.Repo.ListSkills(ctx, userID)
}

func (s *Service) UpdateSkill(ctx context.Context, skill Skill) (Skill, error) {
	current, err := s.Repo.GetSkill(ctx, skill.ID, skill.UserID)
	if err != nil {
		return Skill{}, err
	}
	skill.CreatedAt = current.CreatedAt
	if skill.VerifiedBy == nil {
		skill.VerifiedBy = current.VerifiedBy
	}
	if err := s.Repo.UpdateSkill(ctx, skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

func (s *Service) DeleteSkill(ctx context.Context, id, userID string) error {
	return s.Repo.DeleteSkill(ctx, id, userID)
}

// afterChange refreshes derived state once a count-affecting record changed.
// Failures here must not fail the write that triggered them.
func (s *Service) afterChange(ctx context.Context, userID string) {
	if s.Scorer != nil {
		if _, err := s.Scorer.Recompute(ctx, userID); err != nil {
			telemetry.Warn("score.recompute_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}
	if s.Resumes != nil {
		if err := s.Resumes.TouchDefault(ctx, userID); err != nil {
			telemetry.Warn("resume.touch_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}
}
