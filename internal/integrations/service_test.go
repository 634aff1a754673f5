package integrations

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-ecosystem-backend/internal/integrations/platform"
	"resume-ecosystem-backend/internal/records"
)

type fakeAdapter struct {
	name    string
	payload platform.Payload
	err     error
	fetches int

	entered chan struct{}
	proceed chan struct{}
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context, session platform.Session) (platform.Payload, error) {
	f.fetches++
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.proceed
	}
	return f.payload, f.err
}

func githubPayload() platform.Payload {
	return platform.Payload{
		Projects: []records.Project{
			{Title: "api", GitHubURL: "https://github.com/u/api", Technologies: []string{"Go"}},
		},
		Skills: []records.Skill{
			{SkillName: "Go", Category: "technical", ProficiencyLevel: "intermediate",
				VerifiedBy: []records.Verification{{Source: "GitHub", Date: time.Now().UTC()}}},
		},
	}
}

func connectGitHub(t *testing.T, svc *Service, userID string) {
	t.Helper()
	_, err := svc.Connect(context.Background(), Integration{
		UserID:         userID,
		PlatformName:   platform.GitHub,
		PlatformUserID: "octocat",
		AccessToken:    "tok",
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
}

func TestSyncInsertsAndIsIdempotent(t *testing.T) {
	recordRepo := records.NewMemoryRepo()
	adapter := &fakeAdapter{name: platform.GitHub, payload: githubPayload()}
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(adapter), recordRepo, nil, nil)
	connectGitHub(t, svc, "user-1")
	ctx := context.Background()

	first, err := svc.Sync(ctx, "user-1", platform.GitHub)
	if err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	if first.ProjectsSynced != 1 || first.SkillsSynced != 1 {
		t.Fatalf("first sync: %+v", first)
	}

	second, err := svc.Sync(ctx, "user-1", platform.GitHub)
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if second.ProjectsSynced != 0 || second.SkillsSynced != 0 {
		t.Fatalf("second sync inserted again: %+v", second)
	}
	if second.DuplicatesSkipped != 2 {
		t.Fatalf("duplicates skipped = %d, want 2", second.DuplicatesSkipped)
	}

	projects, err := recordRepo.ListProjects(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(projects))
	}
}

func TestSyncRequiresConnection(t *testing.T) {
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(&fakeAdapter{name: platform.GitHub}), records.NewMemoryRepo(), nil, nil)
	if _, err := svc.Sync(context.Background(), "user-1", platform.GitHub); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("got %v, want ErrNotConnected", err)
	}
}

func TestSyncUnknownPlatform(t *testing.T) {
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(), records.NewMemoryRepo(), nil, nil)
	if _, err := svc.Sync(context.Background(), "user-1", "myspace"); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("got %v, want ErrUnsupportedPlatform", err)
	}
}

func TestSyncWithoutAdapterIsNotImplemented(t *testing.T) {
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(), records.NewMemoryRepo(), nil, nil)
	if _, err := svc.Connect(context.Background(), Integration{UserID: "user-1", PlatformName: platform.LeetCode}); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := svc.Sync(context.Background(), "user-1", platform.LeetCode); !errors.Is(err, ErrSyncNotImplemented) {
		t.Fatalf("got %v, want ErrSyncNotImplemented", err)
	}
}

func TestConnectRejectsUnknownPlatform(t *testing.T) {
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(), records.NewMemoryRepo(), nil, nil)
	if _, err := svc.Connect(context.Background(), Integration{UserID: "user-1", PlatformName: "myspace"}); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("got %v, want ErrUnsupportedPlatform", err)
	}
}

func TestSyncFetchFailureWrapsCause(t *testing.T) {
	cause := errors.New("upstream 500")
	adapter := &fakeAdapter{name: platform.GitHub, err: cause}
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(adapter), records.NewMemoryRepo(), nil, nil)
	connectGitHub(t, svc, "user-1")

	_, err := svc.Sync(context.Background(), "user-1", platform.GitHub)
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("got %T, want *SyncError", err)
	}
	if syncErr.Platform != platform.GitHub {
		t.Fatalf("platform = %q", syncErr.Platform)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not preserved through Unwrap")
	}

	integration, getErr := svc.Repo.Get(context.Background(), "user-1", platform.GitHub)
	if getErr != nil {
		t.Fatalf("Get: %v", getErr)
	}
	if integration.SyncStatus != "error" {
		t.Fatalf("sync status = %q, want error", integration.SyncStatus)
	}
}

func TestConcurrentSyncConflicts(t *testing.T) {
	adapter := &fakeAdapter{
		name:    platform.GitHub,
		payload: githubPayload(),
		entered: make(chan struct{}),
		proceed: make(chan struct{}),
	}
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(adapter), records.NewMemoryRepo(), nil, nil)
	connectGitHub(t, svc, "user-1")

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sync(context.Background(), "user-1", platform.GitHub)
		done <- err
	}()
	<-adapter.entered

	if _, err := svc.Sync(context.Background(), "user-1", platform.GitHub); !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("got %v, want ErrSyncInProgress", err)
	}

	close(adapter.proceed)
	if err := <-done; err != nil {
		t.Fatalf("first sync: %v", err)
	}
}

func TestSyncStampsLastSync(t *testing.T) {
	adapter := &fakeAdapter{name: platform.GitHub, payload: githubPayload()}
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(adapter), records.NewMemoryRepo(), nil, nil)
	connectGitHub(t, svc, "user-1")

	before := time.Now().UTC().Add(-time.Second)
	if _, err := svc.Sync(context.Background(), "user-1", platform.GitHub); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	integration, err := svc.Repo.Get(context.Background(), "user-1", platform.GitHub)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if integration.LastSync == nil || integration.LastSync.Before(before) {
		t.Fatalf("lastSync not stamped: %v", integration.LastSync)
	}
	if integration.SyncStatus != "active" {
		t.Fatalf("sync status = %q, want active", integration.SyncStatus)
	}
}

func TestReconnectDropsCachedPayload(t *testing.T) {
	adapter := &fakeAdapter{name: platform.GitHub, payload: githubPayload()}
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(adapter), records.NewMemoryRepo(), nil, nil)
	connectGitHub(t, svc, "user-1")
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "user-1", platform.GitHub); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	if _, err := svc.Sync(ctx, "user-1", platform.GitHub); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if adapter.fetches != 1 {
		t.Fatalf("fetches = %d, want 1 (second sync should hit the cache)", adapter.fetches)
	}

	// New credentials must invalidate the cached payload.
	connectGitHub(t, svc, "user-1")
	if _, err := svc.Sync(ctx, "user-1", platform.GitHub); err != nil {
		t.Fatalf("Sync after reconnect: %v", err)
	}
	if adapter.fetches != 2 {
		t.Fatalf("fetches = %d, want 2 (reconnect should drop the cache)", adapter.fetches)
	}
}
