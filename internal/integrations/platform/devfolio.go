package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resume-ecosystem-backend/internal/records"
)

type DevfolioAdapter struct {
	BaseURL string
	client  *http.Client
}

func NewDevfolioAdapter(baseURL string) *DevfolioAdapter {
	return &DevfolioAdapter{BaseURL: baseURL, client: newHTTPClient()}
}

func (a *DevfolioAdapter) Name() string { return Devfolio }

type devfolioHackathon struct {
	Name      string     `json:"name"`
	Organizer string     `json:"organizer"`
	Position  string     `json:"position"`
	Date      *time.Time `json:"date"`
	Project   struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Technologies []string `json:"technologies"`
		URL          string   `json:"url"`
	} `json:"project"`
}

func (a *DevfolioAdapter) Fetch(ctx context.Context, session Session) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/v1/hackathons/participated", nil)
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
		return Payload{}, fmt.Errorf("devfolio hackathons: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Hackathons []devfolioHackathon `json:"hackathons"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Payload{}, err
	}

	var payload Payload
	for _, hack := range body.Hackathons {
		payload.Hackathons = append(payload.Hackathons, records.Hackathon{
			Name:               hack.Name,
			Organizer:          hack.Organizer,
			Position:           hack.Position,
			ProjectName:        hack.Project.Name,
			ProjectDescription: hack.Project.Description,
			Technologies:       hack.Project.Technologies,
			EventDate:          hack.Date,
			ProjectURL:         hack.Project.URL,
			VerificationStatus: records.StatusVerified,
		})
	}
	return payload, nil
}
