package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resume-ecosystem-backend/internal/records"
)

type CourseraAdapter struct {
	BaseURL string
	client  *http.Client
}

func NewCourseraAdapter(baseURL string) *CourseraAdapter {
	return &CourseraAdapter{BaseURL: baseURL, client: newHTTPClient()}
}

func (a *CourseraAdapter) Name() string { return Coursera }

type courseraCourse struct {
	Name        string   `json:"name"`
	Instructors []string `json:"instructors"`
	Skills      []string `json:"skills"`
}

func (a *CourseraAdapter) Fetch(ctx context.Context, session Session) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/api/courses.v1", nil)
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
		return Payload{}, fmt.Errorf("coursera courses: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Elements []courseraCourse `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Payload{}, err
	}

	now := time.Now().UTC()
	var payload Payload
	for _, course := range body.Elements {
		payload.Courses = append(payload.Courses, records.Course{
			CourseName:         course.Name,
			Platform:           "Coursera",
			Instructor:         strings.Join(course.Instructors, ", "),
			CompletionDate:     &now,
			SkillsLearned:      course.Skills,
			VerificationStatus: records.StatusVerified,
		})
	}
	return payload, nil
}
