package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is the in-memory store used by tests and DB-less runs.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id, userID string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.resumes[resume.ID]
	if !ok || current.UserID != resume.UserID {
		return ErrNotFound
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	delete(r.resumes, id)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resume := range r.resumes {
		if resume.UserID == userID {
			delete(r.resumes, id)
		}
	}
	return nil
}

func (r *MemoryRepo) ClearDefault(ctx context.Context, userID, exceptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resume := range r.resumes {
		if resume.UserID == userID && resume.IsDefault && id != exceptID {
			resume.IsDefault = false
			r.resumes[id] = resume
		}
	}
	return nil
}

func (r *MemoryRepo) TouchDefault(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resume := range r.resumes {
		if resume.UserID == userID && resume.IsDefault {
			resume.LastUpdated = time.Now().UTC()
			r.resumes[id] = resume
		}
	}
	return nil
}

func (r *MemoryRepo) SetSummary(ctx context.Context, id, userID, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	resume.Summary = summary
	resume.LastUpdated = time.Now().UTC()
	r.resumes[id] = resume
	return nil
}
