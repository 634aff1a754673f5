package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"resume-ecosystem-backend/internal/records"
)

// maxSyncedRepos caps how many repositories become projects per sync.
const maxSyncedRepos = 10

type GitHubAdapter struct {
	BaseURL string
}

func NewGitHubAdapter(baseURL string) *GitHubAdapter {
	return &GitHubAdapter{BaseURL: baseURL}
}

func (a *GitHubAdapter) Name() string { return GitHub }

type githubRepo struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	HTMLURL     string     `json:"html_url"`
	Homepage    string     `json:"homepage"`
	Fork        bool       `json:"fork"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (a *GitHubAdapter) Fetch(ctx context.Context, session Session) (Payload, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: session.AccessToken, TokenType: "token"})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = 15 * time.Second

	url := fmt.Sprintf("%s/users/%s/repos", a.BaseURL, session.PlatformUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Payload{}, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return Payload{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("github repos: unexpected status %d", resp.StatusCode)
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return Payload{}, err
	}

	var payload Payload
	for i, repo := range repos {
		if i == maxSyncedRepos {
			break
		}
		if repo.Fork {
			continue
		}
		description := repo.Description
		if description == "" {
			description = "GitHub repository"
		}
		var technologies []string
		if repo.Language != "" {
			technologies = []string{repo.Language}
		}
		payload.Projects = append(payload.Projects, records.Project{
			Title:        repo.Name,
			Description:  description,
			Technologies: technologies,
			GitHubURL:    repo.HTMLURL,
			LiveURL:      repo.Homepage,
			StartDate:    repo.CreatedAt,
			EndDate:      repo.UpdatedAt,
		})
	}

	// Languages across all fetched repos become verified technical skills.
	seen := make(map[string]bool)
	now := time.Now().UTC()
	for _, repo := range repos {
		if repo.Language == "" || seen[repo.Language] {
			continue
		}
		seen[repo.Language] = true
		payload.Skills = append(payload.Skills, records.Skill{
			SkillName:        repo.Language,
			Category:         "technical",
			ProficiencyLevel: "intermediate",
			VerifiedBy:       []records.Verification{{Source: "GitHub", Date: now}},
		})
	}
	return payload, nil
}
