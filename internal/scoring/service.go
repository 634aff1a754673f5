package scoring

import (
	"context"

	"resume-ecosystem-backend/internal/records"
	"resume-ecosystem-backend/internal/shared/telemetry"
)

// CountSource supplies the per-user record counts the score derives from.
type CountSource interface {
	ScoreCounts(ctx context.Context, userID string) (records.ScoreCounts, error)
}

// ScoreStore persists the computed score on the user row.
type ScoreStore interface {
	UpdateCredibilityScore(ctx context.Context, userID string, score int) error
}

type Service struct {
	Counts CountSource
	Store  ScoreStore
}

func NewService(counts CountSource, store ScoreStore) *Service {
	return &Service{Counts: counts, Store: store}
}

// Recompute recalculates and persists the user's credibility score,
// returning the new value.
func (s *Service) Recompute(ctx context.Context, userID string) (int, error) {
	counts, err := s.Counts.ScoreCounts(ctx, userID)
	if err != nil {
		return 0, err
	}
	score := Compute(counts)
	if err := s.Store.UpdateCredibilityScore(ctx, userID, score); err != nil {
		return 0, err
	}
	telemetry.Info("score.recomputed", map[string]any{"user_id": userID, "score": score})
	return score, nil
}

// Breakdown explains the score for the stats endpoint.
type Breakdown struct {
	Score               int `json:"score"`
	VerifiedInternships int `json:"verifiedInternships"`
	VerifiedCourses     int `json:"verifiedCourses"`
	VerifiedHackathons  int `json:"verifiedHackathons"`
	Projects            int `json:"projects"`
}

func (s *Service) Explain(ctx context.Context, userID string) (Breakdown, error) {
	counts, err := s.Counts.ScoreCounts(ctx, userID)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Score:               Compute(counts),
		VerifiedInternships: counts.VerifiedInternships,
		VerifiedCourses:     counts.VerifiedCourses,
		VerifiedHackathons:  counts.VerifiedHackathons,
		Projects:            counts.Projects,
	}, nil
}
