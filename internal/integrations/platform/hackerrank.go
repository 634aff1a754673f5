package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resume-ecosystem-backend/internal/records"
)

type HackerRankAdapter struct {
	BaseURL string
	client  *http.Client
}

func NewHackerRankAdapter(baseURL string) *HackerRankAdapter {
	return &HackerRankAdapter{BaseURL: baseURL, client: newHTTPClient()}
}

func (a *HackerRankAdapter) Name() string { return HackerRank }

type hackerRankTrack struct {
	Track string  `json:"track"`
	Score float64 `json:"score"`
}

func (a *HackerRankAdapter) Fetch(ctx context.Context, session Session) (Payload, error) {
	url := fmt.Sprintf("%s/rest/hackers/%s/scores_elo", a.BaseURL, session.PlatformUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Payload{}, err
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return Payload{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("hackerrank scores: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Models []hackerRankTrack `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Payload{}, err
	}

	now := time.Now().UTC()
	var payload Payload
	for _, model := range body.Models {
		if model.Track == "" {
			continue
		}
		payload.Skills = append(payload.Skills, records.Skill{
			SkillName:        model.Track,
			Category:         "technical",
			ProficiencyLevel: proficiencyForScore(model.Score),
			VerifiedBy:       []records.Verification{{Source: "HackerRank", Date: now}},
		})
	}
	return payload, nil
}

func proficiencyForScore(score float64) string {
	switch {
	case score > 1500:
		return "expert"
	case score > 1000:
		return "advanced"
	case score > 500:
		return "intermediate"
	default:
		return "beginner"
	}
}
