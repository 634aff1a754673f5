package integrations

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Integration // keyed userID|platformName
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Integration)}
}

func key(userID, platformName string) string {
	return userID + "|" + platformName
}

func (r *MemoryRepo) Upsert(ctx context.Context, integration Integration) (Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(integration.UserID, integration.PlatformName)
	if current, ok := r.rows[k]; ok {
		current.AccessToken = integration.AccessToken
		current.RefreshToken = integration.RefreshToken
		current.PlatformUserID = integration.PlatformUserID
		current.TokenExpiry = integration.TokenExpiry
		current.SyncStatus = "active"
		current.ConnectedAt = time.Now().UTC()
		r.rows[k] = current
		return current, nil
	}
	integration.ID = uuid.NewString()
	integration.ConnectedAt = time.Now().UTC()
	integration.SyncStatus = "active"
	r.rows[k] = integration
	return integration, nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string) ([]Integration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Integration
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlatformName < out[j].PlatformName })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, platformName string) (Integration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[key(userID, platformName)]
	if !ok {
		return Integration{}, ErrNotConnected
	}
	return row, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, platformName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(userID, platformName)
	if _, ok := r.rows[k]; !ok {
		return ErrNotConnected
	}
	delete(r.rows, k)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, row := range r.rows {
		if row.UserID == userID {
			delete(r.rows, k)
		}
	}
	return nil
}

func (r *MemoryRepo) StampLastSync(ctx context.Context, userID, platformName string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(userID, platformName)
	row, ok := r.rows[k]
	if !ok {
		return ErrNotConnected
	}
	row.LastSync = &at
	r.rows[k] = row
	return nil
}

func (r *MemoryRepo) SetSyncStatus(ctx context.Context, userID, platformName, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(userID, platformName)
	row, ok := r.rows[k]
	if !ok {
		return ErrNotConnected
	}
	row.SyncStatus = status
	r.rows[k] = row
	return nil
}
