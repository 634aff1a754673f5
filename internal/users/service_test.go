package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-ecosystem-backend/internal/integrations"
	"resume-ecosystem-backend/internal/records"
	"resume-ecosystem-backend/internal/resumes"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	return NewService(NewMemoryRepo(), time.Hour, records.NewMemoryRepo(), resumes.NewMemoryRepo(), integrations.NewMemoryRepo())
}

func register(t *testing.T, svc *Service, email string) User {
	t.Helper()
	user, token, verificationToken, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "secret1",
		FullName: "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" || verificationToken == "" {
		t.Fatal("expected session and verification tokens")
	}
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	user := register(t, svc, "Ada@Example.com")

	if user.Email != "ada@example.com" {
		t.Fatalf("email not lowercased: %q", user.Email)
	}
	if user.Role != RoleStudent {
		t.Fatalf("role = %q, want student", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("password stored in plain text")
	}

	logged, token, err := svc.Login(context.Background(), "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || logged.ID != user.ID {
		t.Fatalf("unexpected login result: %+v", logged)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "ada@example.com")
	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "ADA@example.com", Password: "secret1", FullName: "Other",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "ada@example.com")
	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newTestService(t)
	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "ada@example.com", Password: "abc", FullName: "Ada",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("got %v, want ErrWeakPassword", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	svc := newTestService(t)
	user := register(t, svc, "ada@example.com")
	ctx := context.Background()

	token, err := svc.ForgotPassword(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if token == "" {
		t.Fatal("expected reset token")
	}

	reset, jwt, err := svc.ResetPassword(ctx, token, "newsecret")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if jwt == "" || reset.ID != user.ID {
		t.Fatalf("unexpected reset result: %+v", reset)
	}

	if _, _, err := svc.Login(ctx, "ada@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ada@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password still accepted")
	}

	// Token is single use.
	if _, _, err := svc.ResetPassword(ctx, token, "another1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("reused token: got %v, want ErrInvalidToken", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if token != "" {
		t.Fatal("unknown email must not yield a token")
	}
}

func TestResetPasswordRejectsSamePassword(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "ada@example.com")
	token, err := svc.ForgotPassword(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if _, _, err := svc.ResetPassword(context.Background(), token, "secret1"); !errors.Is(err, ErrSamePassword) {
		t.Fatalf("got %v, want ErrSamePassword", err)
	}
}

func TestVerifyEmailFlow(t *testing.T) {
	svc := newTestService(t)
	t.Setenv("JWT_SECRET", "test-secret")
	user, _, verificationToken, err := svc.Register(context.Background(), RegisterInput{
		Email: "ada@example.com", Password: "secret1", FullName: "Ada",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.VerifyEmail(context.Background(), verificationToken); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	verified, err := svc.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !verified.IsVerified {
		t.Fatal("user not marked verified")
	}

	if _, err := svc.ResendVerification(context.Background(), user.ID); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("got %v, want ErrAlreadyVerified", err)
	}
	if err := svc.VerifyEmail(context.Background(), verificationToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("reused verification token: got %v, want ErrInvalidToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	user := register(t, svc, "ada@example.com")
	ctx := context.Background()

	if _, err := svc.ChangePassword(ctx, user.ID, "secret1", "secret1"); !errors.Is(err, ErrSamePassword) {
		t.Fatalf("got %v, want ErrSamePassword", err)
	}
	if _, err := svc.ChangePassword(ctx, user.ID, "wrong", "newsecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	token, err := svc.ChangePassword(ctx, user.ID, "secret1", "newsecret")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if token == "" {
		t.Fatal("expected fresh token")
	}
	if _, _, err := svc.Login(ctx, "ada@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	svc := newTestService(t)
	user := register(t, svc, "ada@example.com")
	ctx := context.Background()

	if err := svc.DeleteAccount(ctx, user.ID, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if err := svc.DeleteAccount(ctx, user.ID, "secret1"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := svc.GetByID(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	recordRepo := records.NewMemoryRepo()
	resumeRepo := resumes.NewMemoryRepo()
	integrationRepo := integrations.NewMemoryRepo()
	svc := NewService(NewMemoryRepo(), time.Hour, recordRepo, resumeRepo, integrationRepo)
	user := register(t, svc, "ada@example.com")
	ctx := context.Background()

	seed := []error{
		recordRepo.CreateInternship(ctx, records.Internship{ID: "in-1", UserID: user.ID, Company: "A", Role: "Intern"}),
		recordRepo.CreateCourse(ctx, records.Course{ID: "c-1", UserID: user.ID, CourseName: "Go", Platform: "coursera"}),
		recordRepo.CreateHackathon(ctx, records.Hackathon{ID: "h-1", UserID: user.ID, Name: "HackX"}),
		recordRepo.CreateProject(ctx, records.Project{ID: "p-1", UserID: user.ID, Title: "P", GitHubURL: "https://github.com/a/p"}),
		recordRepo.CreateSkill(ctx, records.Skill{ID: "s-1", UserID: user.ID, SkillName: "Go"}),
		resumeRepo.Create(ctx, resumes.Resume{ID: "r-1", UserID: user.ID, Title: "Main"}),
	}
	for _, err := range seed {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := integrationRepo.Upsert(ctx, integrations.Integration{UserID: user.ID, PlatformName: "github"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := svc.DeleteAccount(ctx, user.ID, "secret1"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	counts, err := recordRepo.ScoreCounts(ctx, user.ID)
	if err != nil {
		t.Fatalf("ScoreCounts: %v", err)
	}
	if counts != (records.ScoreCounts{}) {
		t.Fatalf("records remain after deletion: %+v", counts)
	}
	skills, err := recordRepo.ListSkills(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(skills) != 0 {
		t.Fatalf("skills after account deletion = %d, want 0", len(skills))
	}
	internships, err := recordRepo.ListInternships(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("ListInternships: %v", err)
	}
	if len(internships) != 0 {
		t.Fatalf("internships after account deletion = %d, want 0", len(internships))
	}
	resumeList, err := resumeRepo.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List resumes: %v", err)
	}
	if len(resumeList) != 0 {
		t.Fatalf("resumes after account deletion = %d, want 0", len(resumeList))
	}
	integrationList, err := integrationRepo.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List integrations: %v", err)
	}
	if len(integrationList) != 0 {
		t.Fatalf("integrations after account deletion = %d, want 0", len(integrationList))
	}
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	svc := newTestService(t)
	user := register(t, svc, "ada@example.com")
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("got %v, want ErrEmptyPatch", err)
	}

	bio := "Engines and algorithms."
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("bio = %q", updated.Bio)
	}
	if updated.FullName != "Ada Lovelace" {
		t.Fatalf("untouched field changed: %q", updated.FullName)
	}
}

func TestStatsAggregates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	recordRepo := records.NewMemoryRepo()
	resumeRepo := resumes.NewMemoryRepo()
	svc := NewService(NewMemoryRepo(), time.Hour, recordRepo, resumeRepo, integrations.NewMemoryRepo())
	user := register(t, svc, "ada@example.com")
	ctx := context.Background()

	seed := []error{
		recordRepo.CreateInternship(ctx, records.Internship{ID: "in-1", UserID: user.ID, Company: "A", Role: "Intern", VerificationStatus: records.StatusVerified}),
		recordRepo.CreateInternship(ctx, records.Internship{ID: "in-2", UserID: user.ID, Company: "B", Role: "Intern", VerificationStatus: records.StatusPending}),
		recordRepo.CreateCourse(ctx, records.Course{ID: "c-1", UserID: user.ID, CourseName: "Go", Platform: "coursera", VerificationStatus: records.StatusVerified}),
		recordRepo.CreateHackathon(ctx, records.Hackathon{ID: "h-1", UserID: user.ID, Name: "HackX", VerificationStatus: records.StatusPending}),
		recordRepo.CreateProject(ctx, records.Project{ID: "p-1", UserID: user.ID, Title: "P"}),
		resumeRepo.Create(ctx, resumes.Resume{ID: "r-1", UserID: user.ID, Title: "Main"}),
	}
	for _, err := range seed {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Resumes != 1 || stats.Internships != 2 || stats.Courses != 1 || stats.Hackathons != 1 || stats.Projects != 1 {
		t.Fatalf("counts: %+v", stats)
	}
	if stats.VerifiedInternships != 1 || stats.VerifiedCourses != 1 {
		t.Fatalf("verified counts: %+v", stats)
	}
	// 2 verified of 4 verifiable records.
	if stats.VerificationPercentage != 50 {
		t.Fatalf("percentage = %d, want 50", stats.VerificationPercentage)
	}
}
