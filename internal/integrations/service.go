package integrations

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"resume-ecosystem-backend/internal/integrations/platform"
	"resume-ecosystem-backend/internal/records"
	"resume-ecosystem-backend/internal/shared/metrics"
	"resume-ecosystem-backend/internal/shared/telemetry"
)

// payloadCacheTTL bounds how often a platform is re-fetched for the same
// user. Repeated sync requests inside the window replay the cached payload;
// inserts stay idempotent either way.
const payloadCacheTTL = 2 * time.Minute

type Service struct {
	Repo     Repo
	Registry *platform.Registry
	Records  records.Repo
	Scorer   records.Rescorer
	Resumes  records.ResumeToucher

	cache *gocache.Cache

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(repo Repo, registry *platform.Registry, recordRepo records.Repo, scorer records.Rescorer, resumes records.ResumeToucher) *Service {
	return &Service{
		Repo:     repo,
		Registry: registry,
		Records:  recordRepo,
		Scorer:   scorer,
		Resumes:  resumes,
		cache:    gocache.New(payloadCacheTTL, 5*time.Minute),
		inFlight: make(map[string]bool),
	}
}

// Connect creates or refreshes the integration for the platform. Any
// cached payload is dropped so the next sync fetches with the new
// credentials.
func (s *Service) Connect(ctx context.Context, integration Integration) (Integration, error) {
	if !platform.Supported(integration.PlatformName) {
		return Integration{}, ErrUnsupportedPlatform
	}
	if integration.ID == "" {
		integration.ID = uuid.NewString()
	}
	s.cache.Delete(syncKey(integration.UserID, integration.PlatformName))
	return s.Repo.Upsert(ctx, integration)
}

func (s *Service) Disconnect(ctx context.Context, userID, platformName string) error {
	s.cache.Delete(syncKey(userID, platformName))
	return s.Repo.Delete(ctx, userID, platformName)
}

func (s *Service) List(ctx context.Context, userID string) ([]Integration, error) {
	return s.Repo.List(ctx, userID)
}

// Sync fetches the platform's records and inserts the ones not already
// present. Inserts are best effort: a failure on one candidate does not
// roll back the ones before it.
func (s *Service) Sync(ctx context.Context, userID, platformName string) (SyncResult, error) {
	if !platform.Supported(platformName) {
		return SyncResult{}, ErrUnsupportedPlatform
	}
	integration, err := s.Repo.Get(ctx, userID, platformName)
	if err != nil {
		return SyncResult{}, err
	}
	adapter := s.Registry.Lookup(platformName)
	if adapter == nil {
		return SyncResult{}, ErrSyncNotImplemented
	}

	lockKey := syncKey(userID, platformName)
	if !s.acquire(lockKey) {
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.release(lockKey)

	metrics.IncSyncStarted()
	started := time.Now()

	payload, err := s.fetch(ctx, adapter, integration)
	if err != nil {
		metrics.IncSyncFailed()
		if statusErr := s.Repo.SetSyncStatus(ctx, userID, platformName, "error"); statusErr != nil {
			telemetry.Warn("sync.status_update_failed", map[string]any{"user_id": userID, "platform": platformName, "error": statusErr.Error()})
		}
		return SyncResult{}, &SyncError{Platform: platformName, cause: err}
	}

	result := s.insert(ctx, userID, platformName, payload)

	now := time.Now().UTC()
	if err := s.Repo.StampLastSync(ctx, userID, platformName, now); err != nil {
		telemetry.Warn("sync.last_sync_stamp_failed", map[string]any{"user_id": userID, "platform": platformName, "error": err.Error()})
	}
	if err := s.Repo.SetSyncStatus(ctx, userID, platformName, "active"); err != nil {
		telemetry.Warn("sync.status_update_failed", map[string]any{"user_id": userID, "platform": platformName, "error": err.Error()})
	}
	if s.Resumes != nil {
		if err := s.Resumes.TouchDefault(ctx, userID); err != nil {
			telemetry.Warn("sync.resume_touch_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}
	if s.Scorer != nil {
		score, err := s.Scorer.Recompute(ctx, userID)
		if err != nil {
			telemetry.Warn("sync.rescore_failed", map[string]any{"user_id": userID, "error": err.Error()})
		} else {
			result.CredibilityScore = score
		}
	}

	metrics.IncSyncCompleted()
	metrics.ObserveSyncDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("sync.complete", map[string]any{
		"user_id":  userID,
		"platform": platformName,
		"inserted": result.InternshipsSynced + result.CoursesSynced + result.HackathonsSynced + result.ProjectsSynced + result.SkillsSynced,
		"skipped":  result.DuplicatesSkipped,
	})
	return result, nil
}

func (s *Service) fetch(ctx context.Context, adapter platform.Adapter, integration Integration) (platform.Payload, error) {
	cacheKey := syncKey(integration.UserID, integration.PlatformName)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(platform.Payload), nil
	}
	payload, err := adapter.Fetch(ctx, platform.Session{
		AccessToken:    integration.AccessToken,
		PlatformUserID: integration.PlatformUserID,
	})
	if err != nil {
		return platform.Payload{}, err
	}
	s.cache.Set(cacheKey, payload, gocache.DefaultExpiration)
	return payload, nil
}

// insert applies insert-if-absent per candidate, keyed by each record
// type's natural key.
func (s *Service) insert(ctx context.Context, userID, platformName string, payload platform.Payload) SyncResult {
	result := SyncResult{Platform: platformName}
	now := time.Now().UTC()

	for _, in := range payload.Internships {
		in.UserID = userID
		in.ID = uuid.NewString()
		in.CreatedAt = now
		if in.VerificationStatus == "" {
			in.VerificationStatus = records.StatusVerified
		}
		exists, err := s.Records.InternshipExists(ctx, userID, in.Company, in.Role)
		if err != nil {
			s.logInsertErr(userID, platformName, "internship", err)
			continue
		}
		if exists {
			result.DuplicatesSkipped++
			continue
		}
		if err := s.Records.CreateInternship(ctx, in); err != nil {
			if errors.Is(err, records.ErrDuplicate) {
				result.DuplicatesSkipped++
				continue
			}
			s.logInsertErr(userID, platformName, "internship", err)
			continue
		}
		result.InternshipsSynced++
	}

	for _, course := range payload.Courses {
		course.UserID = userID
		course.ID = uuid.NewString()
		course.CreatedAt = now
		if course.VerificationStatus == "" {
			course.VerificationStatus = records.StatusVerified
		}
		exists, err := s.Records.CourseExists(ctx, userID, course.CourseName, course.Platform)
		if err != nil {
			s.logInsertErr(userID, platformName, "course", err)
			continue
		}
		if exists {
			result.DuplicatesSkipped++
			continue
		}
		if err := s.Records.CreateCourse(ctx, course); err != nil {
			if errors.Is(err, records.ErrDuplicate) {
				result.DuplicatesSkipped++
				continue
			}
			s.logInsertErr(userID, platformName, "course", err)
			continue
		}
		result.CoursesSynced++
	}

	for _, hack := range payload.Hackathons {
		hack.UserID = userID
		hack.ID = uuid.NewString()
		hack.CreatedAt = now
		if hack.VerificationStatus == "" {
			hack.VerificationStatus = records.StatusVerified
		}
		exists, err := s.Records.HackathonExists(ctx, userID, hack.Name)
		if err != nil {
			s.logInsertErr(userID, platformName, "hackathon", err)
			continue
		}
		if exists {
			result.DuplicatesSkipped++
			continue
		}
		if err := s.Records.CreateHackathon(ctx, hack); err != nil {
			if errors.Is(err, records.ErrDuplicate) {
				result.DuplicatesSkipped++
				continue
			}
			s.logInsertErr(userID, platformName, "hackathon", err)
			continue
		}
		result.HackathonsSynced++
	}

	for _, project := range payload.Projects {
		project.UserID = userID
		project.ID = uuid.NewString()
		project.CreatedAt = now
		exists, err := s.Records.ProjectExists(ctx, userID, project.GitHubURL)
		if err != nil {
			s.logInsertErr(userID, platformName, "project", err)
			continue
		}
		if exists {
			result.DuplicatesSkipped++
			continue
		}
		if err := s.Records.CreateProject(ctx, project); err != nil {
			if errors.Is(err, records.ErrDuplicate) {
				result.DuplicatesSkipped++
				continue
			}
			s.logInsertErr(userID, platformName, "project", err)
			continue
		}
		result.ProjectsSynced++
	}

	for _, skill := range payload.Skills {
		skill.UserID = userID
		skill.ID = uuid.NewString()
		skill.CreatedAt = now
		exists, err := s.Records.SkillExists(ctx, userID, skill.SkillName)
		if err != nil {
			s.logInsertErr(userID, platformName, "skill", err)
			continue
		}
		if exists {
			result.DuplicatesSkipped++
			continue
		}
		if err := s.Records.CreateSkill(ctx, skill); err != nil {
			if errors.Is(err, records.ErrDuplicate) {
				result.DuplicatesSkipped++
				continue
			}
			s.logInsertErr(userID, platformName, "skill", err)
			continue
		}
		result.SkillsSynced++
	}

	return result
}

func (s *Service) logInsertErr(userID, platformName, kind string, err error) {
	telemetry.Warn("sync.insert_failed", map[string]any{
		"user_id":  userID,
		"platform": platformName,
		"kind":     kind,
		"error":    err.Error(),
	})
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[key] {
		return false
	}
	s.inFlight[key] = true
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

func syncKey(userID, platformName string) string {
	return userID + "|" + platformName
}
