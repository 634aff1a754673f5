package records

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo backs dev mode and tests.
type MemoryRepo struct {
	mu          sync.RWMutex
	internships map[string]Internship
	courses     map[string]Course
	hackathons  map[string]Hackathon
	projects    map[string]Project
	skills      map[string]Skill
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		internships: make(map[string]Internship),
		courses:     make(map[string]Course),
		hackathons:  make(map[string]Hackathon),
		projects:    make(map[string]Project),
		skills:      make(map[string]Skill),
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (r *MemoryRepo) CreateInternship(ctx context.Context, in Internship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.internships {
		if existing.UserID == in.UserID && equalFold(existing.Company, in.Company) && equalFold(existing.Role, in.Role) {
			return ErrDuplicate
		}
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	r.internships[in.ID] = in
	return nil
}

func (r *MemoryRepo) InternshipExists(ctx context.Context, userID, company, role string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, in := range r.internships {
		if in.UserID == userID && equalFold(in.Company, company) && equalFold(in.Role, role) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListInternships(ctx context.Context, userID string, status VerificationStatus) ([]Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Internship, 0)
	for _, in := range r.internships {
		if in.UserID != userID {
			continue
		}
		if status != "" && in.VerificationStatus != status {
			continue
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].StartDate, out[j].StartDate
		if a == nil || b == nil {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return a.After(*b)
	})
	return out, nil
}

func (r *MemoryRepo) GetInternship(ctx context.Context, id, userID string) (Internship, error) {
	if err := ctx.Err(); err != nil {
		return Internship{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	in, ok := r.internships[id]
	if !ok || in.UserID != userID {
		return Internship{}, ErrNotFound
	}
	return in, nil
}

func (r *MemoryRepo) UpdateInternship(ctx context.Context, in Internship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.internships[in.ID]
	if !ok || existing.UserID != in.UserID {
		return ErrNotFound
	}
	in.CreatedAt = existing.CreatedAt
	r.internships[in.ID] = in
	return nil
}

func (r *MemoryRepo) DeleteInternship(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.internships[id]
	if !ok || in.UserID != userID {
		return ErrNotFound
	}
	delete(r.internships, id)
	return nil
}

func (r *MemoryRepo) CreateCourse(ctx context.Context, course Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.courses {
		if existing.UserID == course.UserID && equalFold(existing.CourseName, course.CourseName) && equalFold(existing.Platform, course.Platform) {
			return ErrDuplicate
		}
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	r.courses[course.ID] = course
	return nil
}

func (r *MemoryRepo) CourseExists(ctx context.Context, userID, courseName, platform string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.courses {
		if c.UserID == userID && equalFold(c.CourseName, courseName) && equalFold(c.Platform, platform) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListCourses(ctx context.Context, userID string, status VerificationStatus) ([]Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Course, 0)
	for _, c := range r.courses {
		if c.UserID != userID {
			continue
		}
		if status != "" && c.VerificationStatus != status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].CompletionDate, out[j].CompletionDate
		if a == nil || b == nil {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return a.After(*b)
	})
	return out, nil
}

func (r *MemoryRepo) GetCourse(ctx context.Context, id, userID string) (Course, error) {
	if err := ctx.Err(); err != nil {
		return Course{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.courses[id]
	if !ok || c.UserID != userID {
		return Course{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) UpdateCourse(ctx context.Context, course Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.courses[course.ID]
	if !ok || existing.UserID != course.UserID {
		return ErrNotFound
	}
	course.CreatedAt = existing.CreatedAt
	r.courses[course.ID] = course
	return nil
}

func (r *MemoryRepo) DeleteCourse(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *MemoryRepo) CreateHackathon(ctx context.Context, hack Hackathon) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.hackathons {
		if existing.UserID == hack.UserID && equalFold(existing.Name, hack.Name) {
			return ErrDuplicate
		}
	}
	if hack.CreatedAt.IsZero() {
		hack.CreatedAt = time.Now().UTC()
	}
	r.hackathons[hack.ID] = hack
	return nil
}

func (r *MemoryRepo) HackathonExists(ctx context.Context, userID, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.hackathons {
		if h.UserID == userID && equalFold(h.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListHackathons(ctx context.Context, userID string, status VerificationStatus) ([]Hackathon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Hackathon, 0)
	for _, h := range r.hackathons {
		if h.UserID != userID {
			continue
		}
		if status != "" && h.VerificationStatus != status {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].EventDate, out[j].EventDate
		if a == nil || b == nil {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return a.After(*b)
	})
	return out, nil
}

func (r *MemoryRepo) GetHackathon(ctx context.Context, id, userID string) (Hackathon, error) {
	if err := ctx.Err(); err != nil {
		return Hackathon{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hackathons[id]
	if !ok || h.UserID != userID {
		return Hackathon{}, ErrNotFound
	}
	return h, nil
}

func (r *MemoryRepo) UpdateHackathon(ctx context.Context, hack Hackathon) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.hackathons[hack.ID]
	if !ok || existing.UserID != hack.UserID {
		return ErrNotFound
	}
	hack.CreatedAt = existing.CreatedAt
	r.hackathons[hack.ID] = hack
	return nil
}

func (r *MemoryRepo) DeleteHackathon(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hackathons[id]
	if !ok || h.UserID != userID {
		return ErrNotFound
	}
	delete(r.hackathons, id)
	return nil
}

func (r *MemoryRepo) CreateProject(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.projects {
		if existing.UserID == project.UserID && project.GitHubURL != "" && existing.GitHubURL == project.GitHubURL {
			return ErrDuplicate
		}
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryRepo) ProjectExists(ctx context.Context, userID, githubURL string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.projects {
		if p.UserID == userID && p.GitHubURL == githubURL {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Project, 0)
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].StartDate, out[j].StartDate
		if a == nil || b == nil {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return a.After(*b)
	})
	return out, nil
}

func (r *MemoryRepo) GetProject(ctx context.Context, id, userID string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok || p.UserID != userID {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) UpdateProject(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[project.ID]
	if !ok || existing.UserID != project.UserID {
		return ErrNotFound
	}
	project.CreatedAt = existing.CreatedAt
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryRepo) DeleteProject(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *MemoryRepo) CreateSkill(ctx context.Context, skill Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.skills {
		if existing.UserID == skill.UserID && equalFold(existing.SkillName, skill.SkillName) {
			return ErrDuplicate
		}
	}
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = time.Now().UTC()
	}
	r.skills[skill.ID] = skill
	return nil
}

func (r *MemoryRepo) SkillExists(ctx context.Context, userID, skillName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.skills {
		if s.UserID == userID && equalFold(s.SkillName, skillName) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListSkills(ctx context.Context, userID string) ([]Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Skill, 0)
	for _, s := range r.skills {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetSkill(ctx context.Context, id, userID string) (Skill, error) {
	if err := ctx.Err(); err != nil {
		return Skill{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[id]
	if !ok || s.UserID != userID {
		return Skill{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) UpdateSkill(ctx context.Context, skill Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.skills[skill.ID]
	if !ok || existing.UserID != skill.UserID {
		return ErrNotFound
	}
	skill.CreatedAt = existing.CreatedAt
	r.skills[skill.ID] = skill
	return nil
}

func (r *MemoryRepo) DeleteSkill(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.skills[id]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	delete(r.skills, id)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, in := range r.internships {
		if in.UserID == userID {
			delete(r.internships, id)
		}
	}
	for id, c := range r.courses {
		if c.UserID == userID {
			delete(r.courses, id)
		}
	}
	for id, h := range r.hackathons {
		if h.UserID == userID {
			delete(r.hackathons, id)
		}
	}
	for id, p := range r.projects {
		if p.UserID == userID {
			delete(r.projects, id)
		}
	}
	for id, s := range r.skills {
		if s.UserID == userID {
			delete(r.skills, id)
		}
	}
	return nil
}

func (r *MemoryRepo) ScoreCounts(ctx context.Context, userID string) (ScoreCounts, error) {
	if err := ctx.Err(); err != nil {
		return ScoreCounts{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var counts ScoreCounts
	for _, in := range r.internships {
		if in.UserID == userID && in.VerificationStatus == StatusVerified {
			counts.VerifiedInternships++
		}
	}
	for _, c := range r.courses {
		if c.UserID == userID && c.VerificationStatus == StatusVerified {
			counts.VerifiedCourses++
		}
	}
	for _, h := range r.hackathons {
		if h.UserID == userID && h.VerificationStatus == StatusVerified {
			counts.VerifiedHackathons++
		}
	}
	for _, p := range r.projects {
		if p.UserID == userID {
			counts.Projects++
		}
	}
	return counts, nil
}
