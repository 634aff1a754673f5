package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, password_hash, full_name, phone, role, is_verified,
	picture_url, bio, location, linkedin_url, github_url, portfolio_url,
	credibility_score, verification_token_hash, verification_token_expires_at,
	reset_token_hash, reset_token_expires_at, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, password_hash, full_name, phone, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		nullable(user.Phone),
		user.Role,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *PGRepo) UpdateProfile(ctx context.Context, user User) error {
	const query = `
UPDATE users SET full_name = $2, phone = $3, bio = $4, location = $5,
	linkedin_url = $6, github_url = $7, portfolio_url = $8, picture_url = $9,
	updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.FullName,
		nullable(user.Phone),
		nullable(user.Bio),
		nullable(user.Location),
		nullable(user.LinkedInURL),
		nullable(user.GitHubURL),
		nullable(user.PortfolioURL),
		nullable(user.PictureURL),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdateRole(ctx context.Context, userID, role string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`,
		userID, role)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdateCredibilityScore(ctx context.Context, userID string, score int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET credibility_score = $2, updated_at = now() WHERE id = $1`,
		userID, score)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetVerificationToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET verification_token_hash = $2, verification_token_expires_at = $3, updated_at = now() WHERE id = $1`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) GetByVerificationToken(ctx context.Context, tokenHash string) (User, error) {
	return r.getBy(ctx,
		`SELECT `+userColumns+` FROM users WHERE verification_token_hash = $1 AND verification_token_expires_at > now()`,
		tokenHash)
}

func (r *PGRepo) MarkVerified(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET is_verified = TRUE, verification_token_hash = NULL, verification_token_expires_at = NULL, updated_at = now() WHERE id = $1`,
		userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = now() WHERE id = $1`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) GetByResetToken(ctx context.Context, tokenHash string) (User, error) {
	return r.getBy(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = $1 AND reset_token_expires_at > now()`,
		tokenHash)
}

func (r *PGRepo) ClearResetToken(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now() WHERE id = $1`,
		userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}

func (r *PGRepo) List(ctx context.Context, offset, limit int) ([]User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC
OFFSET $1 LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PGRepo) getBy(ctx context.Context, query string, arg any) (User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var phone, pictureURL, bio, location, linkedinURL, githubURL, portfolioURL sql.NullString
	var verificationHash, resetHash sql.NullString
	var verificationExpires, resetExpires sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&phone,
		&user.Role,
		&user.IsVerified,
		&pictureURL,
		&bio,
		&location,
		&linkedinURL,
		&githubURL,
		&portfolioURL,
		&user.CredibilityScore,
		&verificationHash,
		&verificationExpires,
		&resetHash,
		&resetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.Phone = phone.String
	user.PictureURL = pictureURL.String
	user.Bio = bio.String
	user.Location = location.String
	user.LinkedInURL = linkedinURL.String
	user.GitHubURL = githubURL.String
	user.PortfolioURL = portfolioURL.String
	user.VerificationTokenHash = verificationHash.String
	if verificationExpires.Valid {
		user.VerificationTokenExpiresAt = &verificationExpires.Time
	}
	user.ResetTokenHash = resetHash.String
	if resetExpires.Valid {
		user.ResetTokenExpiresAt = &resetExpires.Time
	}
	return user, nil
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
