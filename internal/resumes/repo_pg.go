package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, is_default, template_id, visibility, summary, sections, custom_sections, last_updated, created_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, title, is_default, template_id, visibility, summary,
	sections, custom_sections, last_updated, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	sections, err := json.Marshal(resume.Sections)
	if err != nil {
		return err
	}
	custom, err := marshalCustom(resume.CustomSections)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.IsDefault,
		resume.TemplateID,
		resume.Visibility,
		nullable(resume.Summary),
		sections,
		custom,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY is_default DESC, last_updated DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id, userID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes SET title = $3, is_default = $4, template_id = $5, visibility = $6,
	summary = $7, sections = $8, custom_sections = $9, last_updated = now()
WHERE id = $1 AND user_id = $2`
	sections, err := json.Marshal(resume.Sections)
	if err != nil {
		return err
	}
	custom, err := marshalCustom(resume.CustomSections)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.IsDefault,
		resume.TemplateID,
		resume.Visibility,
		nullable(resume.Summary),
		sections,
		custom,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	return err
}

func (r *PGRepo) ClearDefault(ctx context.Context, userID, exceptID string) error {
	const query = `UPDATE resumes SET is_default = FALSE WHERE user_id = $1 AND is_default AND id <> $2`
	_, err := r.DB.ExecContext(ctx, query, userID, exceptID)
	return err
}

func (r *PGRepo) TouchDefault(ctx context.Context, userID string) error {
	const query = `UPDATE resumes SET last_updated = now() WHERE user_id = $1 AND is_default`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

func (r *PGRepo) SetSummary(ctx context.Context, id, userID, summary string) error {
	const query = `UPDATE resumes SET summary = $3, last_updated = now() WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID, summary)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var summary sql.NullString
	var sections, custom []byte
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.IsDefault,
		&resume.TemplateID,
		&resume.Visibility,
		&summary,
		&sections,
		&custom,
		&resume.LastUpdated,
		&resume.CreatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	resume.Summary = summary.String
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &resume.Sections); err != nil {
			return Resume{}, err
		}
	}
	if len(custom) > 0 {
		if err := json.Unmarshal(custom, &resume.CustomSections); err != nil {
			return Resume{}, err
		}
	}
	return resume, nil
}

func marshalCustom(sections []CustomSection) ([]byte, error) {
	if sections == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(sections)
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
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
