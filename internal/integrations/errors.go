package integrations

import "fmt"

var (
	// ErrNotConnected means the user has no integration for the platform.
	ErrNotConnected = errNotConnected{}
	// ErrUnsupportedPlatform means the platform name is outside the known set.
	ErrUnsupportedPlatform = errUnsupportedPlatform{}
	// ErrSyncNotImplemented means the platform is connectable but has no
	// fetch adapter.
	ErrSyncNotImplemented = errSyncNotImplemented{}
	// ErrSyncInProgress means another sync for the same user and platform
	// is still running.
	ErrSyncInProgress = errSyncInProgress{}
)

type errNotConnected struct{}

func (errNotConnected) Error() string { return "platform not connected" }

type errUnsupportedPlatform struct{}

func (errUnsupportedPlatform) Error() string { return "platform not supported" }

type errSyncNotImplemented struct{}

func (errSyncNotImplemented) Error() string { return "sync not implemented for this platform" }

type errSyncInProgress struct{}

func (errSyncInProgress) Error() string { return "sync already in progress" }

// SyncError wraps an upstream fetch failure so handlers can map it to a
// gateway error while logs keep the cause.
type SyncError struct {
	Platform string
	cause    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to sync %s data: %v", e.Platform, e.cause)
}

func (e *SyncError) Unwrap() error { return e.cause }
