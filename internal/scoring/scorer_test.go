package scoring

import (
	"context"
	"testing"

	"resume-ecosystem-backend/internal/records"
)

func TestComputeWeightedSum(t *testing.T) {
	// 2*15 + 1*10 + 0*12 + 3*8 = 64
	counts := records.ScoreCounts{VerifiedInternships: 2, VerifiedCourses: 1, Projects: 3}
	if got := Compute(counts); got != 64 {
		t.Fatalf("Compute = %d, want 64", got)
	}
}

func TestComputeClampsAtHundred(t *testing.T) {
	counts := records.ScoreCounts{VerifiedInternships: 5, VerifiedCourses: 4, VerifiedHackathons: 3, Projects: 10}
	if got := Compute(counts); got != 100 {
		t.Fatalf("Compute = %d, want 100", got)
	}
}

func TestComputeEmptyIsZero(t *testing.T) {
	if got := Compute(records.ScoreCounts{}); got != 0 {
		t.Fatalf("Compute = %d, want 0", got)
	}
}

type fixedCounts struct {
	counts records.ScoreCounts
}

func (f fixedCounts) ScoreCounts(ctx context.Context, userID string) (records.ScoreCounts, error) {
	return f.counts, nil
}

type captureStore struct {
	userID string
	score  int
}

func (c *captureStore) UpdateCredibilityScore(ctx context.Context, userID string, score int) error {
	c.userID = userID
	c.score = score
	return nil
}

func TestRecomputePersistsScore(t *testing.T) {
	store := &captureStore{}
	svc := NewService(fixedCounts{records.ScoreCounts{VerifiedHackathons: 2, Projects: 1}}, store)

	score, err := svc.Recompute(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if score != 32 {
		t.Fatalf("score = %d, want 32", score)
	}
	if store.userID != "user-1" || store.score != 32 {
		t.Fatalf("persisted %q/%d, want user-1/32", store.userID, store.score)
	}
}
