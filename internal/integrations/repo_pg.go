package integrations

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, integration Integration) (Integration, error) {
	const query = `
INSERT INTO platform_integrations (id, user_id, platform_name, platform_user_id,
	access_token, refresh_token, token_expiry, connected_at, sync_status)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), 'active')
ON CONFLICT (user_id, platform_name) DO UPDATE SET
	platform_user_id = EXCLUDED.platform_user_id,
	access_token = EXCLUDED.access_token,
	refresh_token = EXCLUDED.refresh_token,
	token_expiry = EXCLUDED.token_expiry,
	connected_at = now(),
	sync_status = 'active'
RETURNING id, connected_at, sync_status`
	err := r.DB.QueryRowContext(ctx, query,
		integration.ID,
		integration.UserID,
		integration.PlatformName,
		nullable(integration.PlatformUserID),
		nullable(integration.AccessToken),
		nullable(integration.RefreshToken),
		integration.TokenExpiry,
	).Scan(&integration.ID, &integration.ConnectedAt, &integration.SyncStatus)
	return integration, err
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]Integration, error) {
	const query = `
SELECT id, user_id, platform_name, platform_user_id, access_token, refresh_token,
	token_expiry, connected_at, last_sync, sync_status
FROM platform_integrations
WHERE user_id = $1
ORDER BY platform_name`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Integration
	for rows.Next() {
		row, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, userID, platformName string) (Integration, error) {
	const query = `
SELECT id, user_id, platform_name, platform_user_id, access_token, refresh_token,
	token_expiry, connected_at, last_sync, sync_status
FROM platform_integrations
WHERE user_id = $1 AND platform_name = $2`
	row, err := scanIntegration(r.DB.QueryRowContext(ctx, query, userID, platformName))
	if errors.Is(err, sql.ErrNoRows) {
		return Integration{}, ErrNotConnected
	}
	return row, err
}

func (r *PGRepo) Delete(ctx context.Context, userID, platformName string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM platform_integrations WHERE user_id = $1 AND platform_name = $2`,
		userID, platformName)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotConnected
	}
	return nil
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM platform_integrations WHERE user_id = $1`, userID)
	return err
}

func (r *PGRepo) StampLastSync(ctx context.Context, userID, platformName string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE platform_integrations SET last_sync = $3 WHERE user_id = $1 AND platform_name = $2`,
		userID, platformName, at)
	return err
}

func (r *PGRepo) SetSyncStatus(ctx context.Context, userID, platformName, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE platform_integrations SET sync_status = $3 WHERE user_id = $1 AND platform_name = $2`,
		userID, platformName, status)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntegration(row rowScanner) (Integration, error) {
	var integration Integration
	var platformUserID, accessToken, refreshToken sql.NullString
	var tokenExpiry, lastSync sql.NullTime
	err := row.Scan(
		&integration.ID,
		&integration.UserID,
		&integration.PlatformName,
		&platformUserID,
		&accessToken,
		&refreshToken,
		&tokenExpiry,
		&integration.ConnectedAt,
		&lastSync,
		&integration.SyncStatus,
	)
	if err != nil {
		return Integration{}, err
	}
	integration.PlatformUserID = platformUserID.String
	integration.AccessToken = accessToken.String
	integration.RefreshToken = refreshToken.String
	if tokenExpiry.Valid {
		integration.TokenExpiry = &tokenExpiry.Time
	}
	if lastSync.Valid {
		integration.LastSync = &lastSync.Time
	}
	return integration, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
