package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres. Natural keys are backed by compound
// unique indexes, so a racing insert surfaces as ErrDuplicate instead of a
// second row.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateInternship(ctx context.Context, in Internship) error {
	const query = `
INSERT INTO internships (id, user_id, company, role, description, start_date, end_date,
	is_currently_working, location, platform_name, verification_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`
	_, err := r.DB.ExecContext(ctx, query,
		in.ID,
		in.UserID,
		in.Company,
		in.Role,
		nullableString(in.Description),
		in.StartDate,
		in.EndDate,
		in.IsCurrentlyWorking,
		nullableString(in.Location),
		nullableString(in.PlatformName),
		string(in.VerificationStatus),
	)
	return mapInsertErr(err)
}

func (r *PGRepo) InternshipExists(ctx context.Context, userID, company, role string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM internships WHERE user_id = $1 AND lower(company) = lower($2) AND lower(role) = lower($3)
)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, company, role).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListInternships(ctx context.Context, userID string, status VerificationStatus) ([]Internship, error) {
	query := `
SELECT id, user_id, company, role, description, start_date, end_date,
	is_currently_working, location, platform_name, verification_status, created_at
FROM internships
WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND verification_status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date DESC NULLS LAST, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Internship
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetInternship(ctx context.Context, id, userID string) (Internship, error) {
	const query = `
SELECT id, user_id, company, role, description, start_date, end_date,
	is_currently_working, location, platform_name, verification_status, created_at
FROM internships
WHERE id = $1 AND user_id = $2`
	in, err := scanInternship(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Internship{}, ErrNotFound
	}
	return in, err
}

func (r *PGRepo) UpdateInternship(ctx context.Context, in Internship) error {
	const query = `
UPDATE internships SET company = $3, role = $4, description = $5, start_date = $6, end_date = $7,
	is_currently_working = $8, location = $9, platform_name = $10, verification_status = $11
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		in.ID,
		in.UserID,
		in.Company,
		in.Role,
		nullableString(in.Description),
		in.StartDate,
		in.EndDate,
		in.IsCurrentlyWorking,
		nullableString(in.Location),
		nullableString(in.PlatformName),
		string(in.VerificationStatus),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteInternship(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM internships WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CreateCourse(ctx context.Context, course Course) error {
	const query = `
INSERT INTO courses (id, user_id, course_name, platform, instructor, completion_date,
	skills_learned, verification_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	skills, err := marshalJSONB(course.SkillsLearned)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		course.ID,
		course.UserID,
		course.CourseName,
		course.Platform,
		nullableString(course.Instructor),
		course.CompletionDate,
		skills,
		string(course.VerificationStatus),
	)
	return mapInsertErr(err)
}

func (r *PGRepo) CourseExists(ctx context.Context, userID, courseName, platform string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM courses WHERE user_id = $1 AND lower(course_name) = lower($2) AND lower(platform) = lower($3)
)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, courseName, platform).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListCourses(ctx context.Context, userID string, status VerificationStatus) ([]Course, error) {
	query := `
SELECT id, user_id, course_name, platform, instructor, completion_date,
	skills_learned, verification_status, created_at
FROM courses
WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND verification_status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY completion_date DESC NULLS LAST, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, course)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetCourse(ctx context.Context, id, userID string) (Course, error) {
	const query = `
SELECT id, user_id, course_name, platform, instructor, completion_date,
	skills_learned, verification_status, created_at
FROM courses
WHERE id = $1 AND user_id = $2`
	course, err := scanCourse(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	return course, err
}

func (r *PGRepo) UpdateCourse(ctx context.Context, course Course) error {
	const query = `
UPDATE courses SET course_name = $3, platform = $4, instructor = $5, completion_date = $6,
	skills_learned = $7, verification_status = $8
WHERE id = $1 AND user_id = $2`
	skills, err := marshalJSONB(course.SkillsLearned)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		course.ID,
		course.UserID,
		course.CourseName,
		course.Platform,
		nullableString(course.Instructor),
		course.CompletionDate,
		skills,
		string(course.VerificationStatus),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteCourse(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CreateHackathon(ctx context.Context, hack Hackathon) error {
	const query = `
INSERT INTO hackathons (id, user_id, name, organizer, position, project_name, project_description,
	technologies, event_date, project_url, verification_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`
	techs, err := marshalJSONB(hack.Technologies)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		hack.ID,
		hack.UserID,
		hack.Name,
		nullableString(hack.Organizer),
		nullableString(hack.Position),
		nullableString(hack.ProjectName),
		nullableString(hack.ProjectDescription),
		techs,
		hack.EventDate,
		nullableString(hack.ProjectURL),
		string(hack.VerificationStatus),
	)
	return mapInsertErr(err)
}

func (r *PGRepo) HackathonExists(ctx context.Context, userID, name string) (bool, error) {
	const query = `
SELECT EXISTS (SELECT 1 FROM hackathons WHERE user_id = $1 AND lower(name) = lower($2))`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, name).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListHackathons(ctx context.Context, userID string, status VerificationStatus) ([]Hackathon, error) {
	query := `
SELECT id, user_id, name, organizer, position, project_name, project_description,
	technologies, event_date, project_url, verification_status, created_at
FROM hackathons
WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND verification_status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY event_date DESC NULLS LAST, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Hackathon
	for rows.Next() {
		hack, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, hack)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetHackathon(ctx context.Context, id, userID string) (Hackathon, error) {
	const query = `
SELECT id, user_id, name, organizer, position, project_name, project_description,
	technologies, event_date, project_url, verification_status, created_at
FROM hackathons
WHERE id = $1 AND user_id = $2`
	hack, err := scanHackathon(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Hackathon{}, ErrNotFound
	}
	return hack, err
}

func (r *PGRepo) UpdateHackathon(ctx context.Context, hack Hackathon) error {
	const query = `
UPDATE hackathons SET name = $3, organizer = $4, position = $5, project_name = $6,
	project_description = $7, technologies = $8, event_date = $9, project_url = $10,
	verification_status = $11
WHERE id = $1 AND user_id = $2`
	techs, err := marshalJSONB(hack.Technologies)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		hack.ID,
		hack.UserID,
		hack.Name,
		nullableString(hack.Organizer),
		nullableString(hack.Position),
		nullableString(hack.ProjectName),
		nullableString(hack.ProjectDescription),
		techs,
		hack.EventDate,
		nullableString(hack.ProjectURL),
		string(hack.VerificationStatus),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteHackathon(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM hackathons WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CreateProject(ctx context.Context, project Project) error {
	const query = `
INSERT INTO projects (id, user_id, title, description, technologies, github_url, live_url,
	start_date, end_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	techs, err := marshalJSONB(project.Technologies)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		nullableString(project.Description),
		techs,
		nullableString(project.GitHubURL),
		nullableString(project.LiveURL),
		project.StartDate,
		project.EndDate,
	)
	return mapInsertErr(err)
}

func (r *PGRepo) ProjectExists(ctx context.Context, userID, githubURL string) (bool, error) {
	const query = `
SELECT EXISTS (SELECT 1 FROM projects WHERE user_id = $1 AND github_url = $2)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, githubURL).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	const query = `
SELECT id, user_id, title, description, technologies, github_url, live_url,
	start_date, end_date, created_at
FROM projects
WHERE user_id = $1
ORDER BY start_date DESC NULLS LAST, created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetProject(ctx context.Context, id, userID string) (Project, error) {
	const query = `
SELECT id, user_id, title, description, technologies, github_url, live_url,
	start_date, end_date, created_at
FROM projects
WHERE id = $1 AND user_id = $2`
	project, err := scanProject(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return project, err
}

func (r *PGRepo) UpdateProject(ctx context.Context, project Project) error {
	const query = `
UPDATE projects SET title = $3, description = $4, technologies = $5, github_url = $6,
	live_url = $7, start_date = $8, end_date = $9
WHERE id = $1 AND user_id = $2`
	techs, err := marshalJSONB(project.Technologies)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		nullableString(project.Description),
		techs,
		nullableString(project.GitHubURL),
		nullableString(project.LiveURL),
		project.StartDate,
		project.EndDate,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteProject(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CreateSkill(ctx context.Context, skill Skill) error {
	const query = `
INSERT INTO skills (id, user_id, skill_name, category, proficiency_level, verified_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	verifiedBy, err := marshalJSONB(skill.VerifiedBy)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		skill.ID,
		skill.UserID,
		skill.SkillName,
		skill.Category,
		skill.ProficiencyLevel,
		verifiedBy,
	)
	return mapInsertErr(err)
}

func (r *PGRepo) SkillExists(ctx context.Context, userID, skillName string) (bool, error) {
	const query = `
SELECT EXISTS (SELECT 1 FROM skills WHERE user_id = $1 AND lower(skill_name) = lower($2))`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, skillName).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListSkills(ctx context.Context, userID string) ([]Skill, error) {
	const query = `
SELECT id, user_id, skill_name, category, proficiency_level, verified_by, created_at
FROM skills
WHERE user_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, skill)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetSkill(ctx context.Context, id, userID string) (Skill, error) {
	const query = `
SELECT id, user_id, skill_name, category, proficiency_level, verified_by, created_at
FROM skills
WHERE id = $1 AND user_id = $2`
	skill, err := scanSkill(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Skill{}, ErrNotFound
	}
	return skill, err
}

func (r *PGRepo) UpdateSkill(ctx context.Context, skill Skill) error {
	const query = `
UPDATE skills SET skill_name = $3, category = $4, proficiency_level = $5, verified_by = $6
WHERE id = $1 AND user_id = $2`
	verifiedBy, err := marshalJSONB(skill.VerifiedBy)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		skill.ID,
		skill.UserID,
		skill.SkillName,
		skill.Category,
		skill.ProficiencyLevel,
		verifiedBy,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteSkill(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	// Redundant with the ON DELETE CASCADE FKs but kept explicit so the
	// cascade does not depend on which store backs the repo.
	for _, table := range []string{"internships", "courses", "hackathons", "projects", "skills"} {
		if _, err := r.DB.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepo) ScoreCounts(ctx context.Context, userID string) (ScoreCounts, error) {
	const query = `
SELECT
	(SELECT count(*) FROM internships WHERE user_id = $1 AND verification_status = 'verified'),
	(SELECT count(*) FROM courses WHERE user_id = $1 AND verification_status = 'verified'),
	(SELECT count(*) FROM hackathons WHERE user_id = $1 AND verification_status = 'verified'),
	(SELECT count(*) FROM projects WHERE user_id = $1)`
	var counts ScoreCounts
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&counts.VerifiedInternships,
		&counts.VerifiedCourses,
		&counts.VerifiedHackathons,
		&counts.Projects,
	)
	return counts, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInternship(row rowScanner) (Internship, error) {
	var in Internship
	var description, location, platformName sql.NullString
	var status string
	err := row.Scan(
		&in.ID,
		&in.UserID,
		&in.Company,
		&in.Role,
		&description,
		&in.StartDate,
		&in.EndDate,
		&in.IsCurrentlyWorking,
		&location,
		&platformName,
		&status,
		&in.CreatedAt,
	)
	if err != nil {
		return Internship{}, err
	}
	in.Description = description.String
	in.Location = location.String
	in.PlatformName = platformName.String
	in.VerificationStatus = VerificationStatus(status)
	return in, nil
}

func scanCourse(row rowScanner) (Course, error) {
	var course Course
	var instructor sql.NullString
	var skills []byte
	var status string
	err := row.Scan(
		&course.ID,
		&course.UserID,
		&course.CourseName,
		&course.Platform,
		&instructor,
		&course.CompletionDate,
		&skills,
		&status,
		&course.CreatedAt,
	)
	if err != nil {
		return Course{}, err
	}
	course.Instructor = instructor.String
	course.VerificationStatus = VerificationStatus(status)
	if err := unmarshalJSONB(skills, &course.SkillsLearned); err != nil {
		return Course{}, err
	}
	return course, nil
}

func scanHackathon(row rowScanner) (Hackathon, error) {
	var hack Hackathon
	var organizer, position, projectName, projectDescription, projectURL sql.NullString
	var techs []byte
	var status string
	err := row.Scan(
		&hack.ID,
		&hack.UserID,
		&hack.Name,
		&organizer,
		&position,
		&projectName,
		&projectDescription,
		&techs,
		&hack.EventDate,
		&projectURL,
		&status,
		&hack.CreatedAt,
	)
	if err != nil {
		return Hackathon{}, err
	}
	hack.Organizer = organizer.String
	hack.Position = position.String
	hack.ProjectName = projectName.String
	hack.ProjectDescription = projectDescription.String
	hack.ProjectURL = projectURL.String
	hack.VerificationStatus = VerificationStatus(status)
	if err := unmarshalJSONB(techs, &hack.Technologies); err != nil {
		return Hackathon{}, err
	}
	return hack, nil
}

func scanProject(row rowScanner) (Project, error) {
	var project Project
	var description, githubURL, liveURL sql.NullString
	var techs []byte
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&description,
		&techs,
		&githubURL,
		&liveURL,
		&project.StartDate,
		&project.EndDate,
		&project.CreatedAt,
	)
	if err != nil {
		return Project{}, err
	}
	project.Description = description.String
	project.GitHubURL = githubURL.String
	project.LiveURL = liveURL.String
	if err := unmarshalJSONB(techs, &project.Technologies); err != nil {
		return Project{}, err
	}
	return project, nil
}

func scanSkill(row rowScanner) (Skill, error) {
	var skill Skill
	var verifiedBy []byte
	err := row.Scan(
		&skill.ID,
		&skill.UserID,
		&skill.SkillName,
		&skill.Category,
		&skill.ProficiencyLevel,
		&verifiedBy,
		&skill.CreatedAt,
	)
	if err != nil {
		return Skill{}, err
	}
	if err := unmarshalJSONB(verifiedBy, &skill.VerifiedBy); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(value)
}

func unmarshalJSONB(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
