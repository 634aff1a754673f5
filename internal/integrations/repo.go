package integrations

import (
	"context"
	"time"
)

type Repo interface {
	// Upsert creates the integration or refreshes credentials on an
	// existing (userId, platformName) row.
	Upsert(ctx context.Context, integration Integration) (Integration, error)
	List(ctx context.Context, userID string) ([]Integration, error)
	Get(ctx context.Context, userID, platformName string) (Integration, error)
	Delete(ctx context.Context, userID, platformName string) error
	// DeleteByUser removes every integration the user owns.
	DeleteByUser(ctx context.Context, userID string) error
	StampLastSync(ctx context.Context, userID, platformName string, at time.Time) error
	SetSyncStatus(ctx context.Context, userID, platformName, status string) error
}
