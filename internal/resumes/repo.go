package resumes

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "resume not found" }

type Repo interface {
	Create(ctx context.Context, resume Resume) error
	List(ctx context.Context, userID string) ([]Resume, error)
	Get(ctx context.Context, id, userID string) (Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, id, userID string) error

	// DeleteByUser removes every resume the user owns.
	DeleteByUser(ctx context.Context, userID string) error

	// ClearDefault unsets is_default on every resume of the user except
	// exceptID (pass "" to clear all). Must run before a default flip so
	// the one-default invariant never breaks mid-write.
	ClearDefault(ctx context.Context, userID, exceptID string) error

	// TouchDefault stamps last_updated on the user's default resume.
	// A user without a default resume is not an error.
	TouchDefault(ctx context.Context, userID string) error

	SetSummary(ctx context.Context, id, userID, summary string) error
}
