package users

import (
	"context"
	"time"
)

var (
	ErrNotFound  = errNotFound{}
	ErrDuplicate = errDuplicate{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type errDuplicate struct{}

func (errDuplicate) Error() string { return "user already exists" }

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, user User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateRole(ctx context.Context, userID, role string) error
	UpdateCredibilityScore(ctx context.Context, userID string, score int) error

	SetVerificationToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetByVerificationToken(ctx context.Context, tokenHash string) (User, error)
	MarkVerified(ctx context.Context, userID string) error

	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, tokenHash string) (User, error)
	ClearResetToken(ctx context.Context, userID string) error

	// Delete removes the account. Child rows go with it through the
	// schema's cascading foreign keys.
	Delete(ctx context.Context, userID string) error

	Count(ctx context.Context) (int, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
}
