package resumes

import (
	"context"
	"errors"
	"testing"

	"resume-ecosystem-backend/internal/records"
)

type stubUsers struct {
	card ContactCard
	role string
}

func (s stubUsers) ContactCard(ctx context.Context, userID string) (ContactCard, string, error) {
	return s.card, s.role, nil
}

func newTestService(recordRepo *records.MemoryRepo) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := NewService(repo, recordRepo, stubUsers{
		card: ContactCard{FullName: "Ada Lovelace", Email: "ada@example.com"},
		role: "student",
	})
	return svc, repo
}

func countDefaults(t *testing.T, svc *Service, userID string) int {
	t.Helper()
	items, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	n := 0
	for _, resume := range items {
		if resume.IsDefault {
			n++
		}
	}
	return n
}

func TestCreateFlipsDefault(t *testing.T) {
	svc, _ := newTestService(records.NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, Resume{UserID: "user-1", Title: "First", IsDefault: true, Sections: DefaultSections()})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if _, err := svc.Create(ctx, Resume{UserID: "user-1", Title: "Second", IsDefault: true, Sections: DefaultSections()}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if n := countDefaults(t, svc, "user-1"); n != 1 {
		t.Fatalf("defaults = %d, want 1", n)
	}
	reread, err := svc.Repo.Get(ctx, first.ID, "user-1")
	if err != nil {
		t.Fatalf("Get first: %v", err)
	}
	if reread.IsDefault {
		t.Fatal("first resume should have lost default")
	}
}

func TestUpdateFlipsDefault(t *testing.T) {
	svc, _ := newTestService(records.NewMemoryRepo())
	ctx := context.Background()

	def, err := svc.Create(ctx, Resume{UserID: "user-1", Title: "A", IsDefault: true, Sections: DefaultSections()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, err := svc.Create(ctx, Resume{UserID: "user-1", Title: "B", Sections: DefaultSections()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	other.IsDefault = true
	if _, err := svc.Update(ctx, other); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if n := countDefaults(t, svc, "user-1"); n != 1 {
		t.Fatalf("defaults = %d, want 1", n)
	}
	reread, err := svc.Repo.Get(ctx, def.ID, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reread.IsDefault {
		t.Fatal("old default should have been cleared")
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _ := newTestService(records.NewMemoryRepo())
	created, err := svc.Create(context.Background(), Resume{UserID: "user-1", Sections: DefaultSections()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "My Resume" || created.TemplateID != "modern" || created.Visibility != VisibilityPrivate {
		t.Fatalf("defaults not applied: %+v", created)
	}
}

func TestGetViewHonorsSectionToggles(t *testing.T) {
	recordRepo := records.NewMemoryRepo()
	ctx := context.Background()
	seedInternship := records.Internship{ID: "in-1", UserID: "user-1", Company: "Acme", Role: "Intern", VerificationStatus: records.StatusVerified}
	if err := recordRepo.CreateInternship(ctx, seedInternship); err != nil {
		t.Fatalf("seed internship: %v", err)
	}
	if err := recordRepo.CreateSkill(ctx, records.Skill{ID: "sk-1", UserID: "user-1", SkillName: "Go", Category: "technical"}); err != nil {
		t.Fatalf("seed skill: %v", err)
	}

	svc, _ := newTestService(recordRepo)
	sections := DefaultSections()
	sections.Skills = false
	created, err := svc.Create(ctx, Resume{UserID: "user-1", Sections: sections})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	view, err := svc.GetView(ctx, created.ID, "user-1")
	if err != nil {
		t.Fatalf("GetView: %v", err)
	}
	if len(view.Internships) != 1 {
		t.Fatalf("internships = %d, want 1", len(view.Internships))
	}
	if len(view.Skills) != 0 {
		t.Fatalf("skills = %d, want 0 (section disabled)", len(view.Skills))
	}
	if view.User.FullName != "Ada Lovelace" {
		t.Fatalf("user card missing: %+v", view.User)
	}
}

func TestGenerateSummaryPersists(t *testing.T) {
	recordRepo := records.NewMemoryRepo()
	ctx := context.Background()
	if err := recordRepo.CreateInternship(ctx, records.Internship{ID: "in-1", UserID: "user-1", Company: "Acme", Role: "Backend Intern", VerificationStatus: records.StatusVerified}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc, repo := newTestService(recordRepo)
	created, err := svc.Create(ctx, Resume{UserID: "user-1", Sections: DefaultSections()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	summary, err := svc.GenerateSummary(ctx, created.ID, "user-1")
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if summary == "" {
		t.Fatal("empty summary")
	}
	stored, err := repo.Get(ctx, created.ID, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Summary != summary {
		t.Fatalf("stored %q, want %q", stored.Summary, summary)
	}
}

func TestGenerateSummaryUnknownResume(t *testing.T) {
	svc, _ := newTestService(records.NewMemoryRepo())
	if _, err := svc.GenerateSummary(context.Background(), "missing", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
