package scoring

import "resume-ecosystem-backend/internal/records"

// Weights per verified record. Projects count regardless of verification
// because they carry their own evidence (the repository itself).
const (
	internshipWeight = 15
	courseWeight     = 10
	hackathonWeight  = 12
	projectWeight    = 8

	maxScore = 100
)

// Compute maps record counts to a 0-100 credibility score.
func Compute(counts records.ScoreCounts) int {
	score := counts.VerifiedInternships*internshipWeight +
		counts.VerifiedCourses*courseWeight +
		counts.VerifiedHackathons*hackathonWeight +
		counts.Projects*projectWeight
	if score > maxScore {
		return maxScore
	}
	return score
}
