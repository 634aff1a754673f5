package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	current.FullName = user.FullName
	current.Phone = user.Phone
	current.Bio = user.Bio
	current.Location = user.Location
	current.LinkedInURL = user.LinkedInURL
	current.GitHubURL = user.GitHubURL
	current.PortfolioURL = user.PortfolioURL
	current.PictureURL = user.PictureURL
	current.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = current
	return nil
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.mutate(userID, func(user *User) {
		user.PasswordHash = passwordHash
	})
}

func (r *MemoryRepo) UpdateRole(ctx context.Context, userID, role string) error {
	return r.mutate(userID, func(user *User) {
		user.Role = role
	})
}

func (r *MemoryRepo) UpdateCredibilityScore(ctx context.Context, userID string, score int) error {
	return r.mutate(userID, func(user *User) {
		user.CredibilityScore = score
	})
}

func (r *MemoryRepo) SetVerificationToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return r.mutate(userID, func(user *User) {
		user.VerificationTokenHash = tokenHash
		user.VerificationTokenExpiresAt = &expiresAt
	})
}

func (r *MemoryRepo) GetByVerificationToken(ctx context.Context, tokenHash string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now().UTC()
	for _, user := range r.users {
		if user.VerificationTokenHash == tokenHash &&
			user.VerificationTokenExpiresAt != nil &&
			user.VerificationTokenExpiresAt.After(now) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) MarkVerified(ctx context.Context, userID string) error {
	return r.mutate(userID, func(user *User) {
		user.IsVerified = true
		user.VerificationTokenHash = ""
		user.VerificationTokenExpiresAt = nil
	})
}

func (r *MemoryRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return r.mutate(userID, func(user *User) {
		user.ResetTokenHash = tokenHash
		user.ResetTokenExpiresAt = &expiresAt
	})
}

func (r *MemoryRepo) GetByResetToken(ctx context.Context, tokenHash string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now().UTC()
	for _, user := range r.users {
		if user.ResetTokenHash == tokenHash &&
			user.ResetTokenExpiresAt != nil &&
			user.ResetTokenExpiresAt.After(now) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) ClearResetToken(ctx context.Context, userID string) error {
	return r.mutate(userID, func(user *User) {
		user.ResetTokenHash = ""
		user.ResetTokenExpiresAt = nil
	})
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *MemoryRepo) List(ctx context.Context, offset, limit int) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) mutate(userID string, apply func(*User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	apply(&user)
	user.UpdatedAt = time.Now().UTC()
	r.users[userID] = user
	return nil
}
