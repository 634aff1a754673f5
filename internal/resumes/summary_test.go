package resumes

import (
	"testing"

	"resume-ecosystem-backend/internal/records"
)

func TestGenerateSummaryFullProfile(t *testing.T) {
	got := GenerateSummary(SummaryInput{
		UserRole: "student",
		Internships: []records.Internship{
			{Role: "Backend Intern"},
			{Role: "SDE Intern"},
		},
		Courses: []records.Course{{CourseName: "Go 101"}},
		Skills: []records.Skill{
			{SkillName: "Go", Category: "technical"},
			{SkillName: "Communication", Category: "soft"},
			{SkillName: "PostgreSQL", Category: "technical"},
		},
		Projects:   []records.Project{{Title: "P1"}, {Title: "P2"}},
		Hackathons: []records.Hackathon{{Name: "HackX"}},
	})
	want := "Backend Intern with 2 internships and 1 completed course " +
		"specializing in Go, PostgreSQL. " +
		"Demonstrated expertise through 2 projects and participation in 1 hackathon. " +
		"Passionate about leveraging technology to solve real-world problems and continuously learning new skills."
	if got != want {
		t.Fatalf("summary mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestGenerateSummarySingularCounts(t *testing.T) {
	got := GenerateSummary(SummaryInput{
		UserRole:    "student",
		Internships: []records.Internship{{Role: "Intern"}},
		Projects:    []records.Project{{Title: "P1"}},
	})
	want := "Intern with 1 internship " +
		"Demonstrated expertise through 1 project. " +
		"Passionate about leveraging technology to solve real-world problems and continuously learning new skills."
	if got != want {
		t.Fatalf("summary mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestGenerateSummaryRoleFallback(t *testing.T) {
	student := GenerateSummary(SummaryInput{UserRole: "student"})
	if want := "Student with Passionate about leveraging technology to solve real-world problems and continuously learning new skills."; student != want {
		t.Fatalf("student summary = %q, want %q", student, want)
	}
	pro := GenerateSummary(SummaryInput{UserRole: "recruiter"})
	if want := "Professional with Passionate about leveraging technology to solve real-world problems and continuously learning new skills."; pro != want {
		t.Fatalf("professional summary = %q, want %q", pro, want)
	}
}

func TestGenerateSummaryCapsSkillsAtFive(t *testing.T) {
	skills := []records.Skill{
		{SkillName: "Go", Category: "technical"},
		{SkillName: "Python", Category: "technical"},
		{SkillName: "SQL", Category: "technical"},
		{SkillName: "Docker", Category: "technical"},
		{SkillName: "Kubernetes", Category: "technical"},
		{SkillName: "Rust", Category: "technical"},
	}
	got := GenerateSummary(SummaryInput{UserRole: "student", Skills: skills})
	want := "Student with specializing in Go, Python, SQL, Docker, Kubernetes. " +
		"Passionate about leveraging technology to solve real-world problems and continuously learning new skills."
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestGenerateSummaryIsDeterministic(t *testing.T) {
	in := SummaryInput{
		UserRole:    "student",
		Internships: []records.Internship{{Role: "Intern"}},
		Skills:      []records.Skill{{SkillName: "Go", Category: "technical"}},
	}
	first := GenerateSummary(in)
	for i := 0; i < 10; i++ {
		if again := GenerateSummary(in); again != first {
			t.Fatalf("run %d differed: %q vs %q", i, again, first)
		}
	}
}
