package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resume-ecosystem-backend/internal/records"
)

type LinkedInAdapter struct {
	BaseURL string
	client  *http.Client
}

func NewLinkedInAdapter(baseURL string) *LinkedInAdapter {
	return &LinkedInAdapter{BaseURL: baseURL, client: newHTTPClient()}
}

func (a *LinkedInAdapter) Name() string { return LinkedIn }

type linkedInDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type linkedInPosition struct {
	CompanyName string `json:"companyName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TimePeriod  struct {
		StartDate *linkedInDate `json:"startDate"`
		EndDate   *linkedInDate `json:"endDate"`
	} `json:"timePeriod"`
}

func (a *LinkedInAdapter) Fetch(ctx context.Context, session Session) (Payload, error) {
	// Profile call validates the token before positions are read.
	if err := a.get(ctx, session, "/v2/me", &struct{}{}); err != nil {
		return Payload{}, err
	}

	var positions struct {
		Elements []linkedInPosition `json:"elements"`
	}
	if err := a.get(ctx, session, "/v2/positions", &positions); err != nil {
		return Payload{}, err
	}

	var payload Payload
	for _, position := range positions.Elements {
		payload.Internships = append(payload.Internships, records.Internship{
			Company:            position.CompanyName,
			Role:               position.Title,
			Description:        position.Description,
			StartDate:          monthStart(position.TimePeriod.StartDate),
			EndDate:            monthStart(position.TimePeriod.EndDate),
			PlatformName:       "LinkedIn",
			VerificationStatus: records.StatusVerified,
		})
	}
	return payload, nil
}

func (a *LinkedInAdapter) get(ctx context.Context, session Session, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("linkedin %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func monthStart(d *linkedInDate) *time.Time {
	if d == nil || d.Year == 0 {
		return nil
	}
	month := time.Month(d.Month)
	if d.Month == 0 {
		month = time.January
	}
	t := time.Date(d.Year, month, 1, 0, 0, 0, 0, time.UTC)
	return &t
}
