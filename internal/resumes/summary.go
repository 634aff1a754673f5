package resumes

import (
	"fmt"
	"strings"

	"resume-ecosystem-backend/internal/records"
)

// SummaryInput carries everything the generator reads. Internships, courses
// and hackathons are expected to be verified-only; projects and skills are
// unfiltered.
type SummaryInput struct {
	UserRole    string
	Internships []records.Internship
	Courses     []records.Course
	Hackathons  []records.Hackathon
	Projects    []records.Project
	Skills      []records.Skill
}

const maxSummarySkills = 5

// GenerateSummary builds a deterministic professional summary from the
// user's records. Same records in, same text out.
func GenerateSummary(in SummaryInput) string {
	var b strings.Builder

	role := "Professional"
	if len(in.Internships) > 0 {
		role = in.Internships[0].Role
	} else if in.UserRole == "student" {
		role = "Student"
	}
	b.WriteString(role)
	b.WriteString(" with ")

	if n := len(in.Internships); n > 0 {
		fmt.Fprintf(&b, "%d internship%s ", n, plural(n))
	}
	if n := len(in.Courses); n > 0 {
		fmt.Fprintf(&b, "and %d completed course%s ", n, plural(n))
	}

	if top := topTechnicalSkills(in.Skills); len(top) > 0 {
		fmt.Fprintf(&b, "specializing in %s. ", strings.Join(top, ", "))
	}

	if len(in.Projects) > 0 || len(in.Hackathons) > 0 {
		fmt.Fprintf(&b, "Demonstrated expertise through %d project%s", len(in.Projects), plural(len(in.Projects)))
		if n := len(in.Hackathons); n > 0 {
			fmt.Fprintf(&b, " and participation in %d hackathon%s", n, plural(n))
		}
		b.WriteString(". ")
	}

	b.WriteString("Passionate about leveraging technology to solve real-world problems and continuously learning new skills.")
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func topTechnicalSkills(skills []records.Skill) []string {
	var names []string
	for _, s := range skills {
		if s.Category != "technical" {
			continue
		}
		names = append(names, s.SkillName)
		if len(names) == maxSummarySkills {
			break
		}
	}
	return names
}
