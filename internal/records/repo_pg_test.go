package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateCourseMarshalsSkillsAsJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	completed := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	course := Course{
		ID:                 "course-1",
		UserID:             "user-1",
		CourseName:         "Go Fundamentals",
		Platform:           "coursera",
		CompletionDate:     &completed,
		SkillsLearned:      []string{"Go", "Testing"},
		VerificationStatus: StatusVerified,
	}

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(
			course.ID,
			course.UserID,
			course.CourseName,
			course.Platform,
			nil, // instructor
			course.CompletionDate,
			[]byte(`["Go","Testing"]`),
			string(StatusVerified),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListInternshipsAppliesStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "company", "role", "description", "start_date", "end_date",
		"is_currently_working", "location", "platform_name", "verification_status", "created_at",
	}).AddRow("in-1", "user-1", "Acme", "Intern", nil, nil, nil, false, nil, "linkedin", "verified", now)

	mock.ExpectQuery("SELECT (.+) FROM internships").
		WithArgs("user-1", "verified").
		WillReturnRows(rows)

	items, err := repo.ListInternships(context.Background(), "user-1", StatusVerified)
	if err != nil {
		t.Fatalf("ListInternships: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].PlatformName != "linkedin" || items[0].VerificationStatus != StatusVerified {
		t.Fatalf("unexpected row: %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetInternshipMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM internships").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetInternship(context.Background(), "missing", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPGRepoDeleteWithoutMatchIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM projects").
		WithArgs("p-1", "user-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteProject(context.Background(), "p-1", "user-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPGRepoCreateInternshipUniqueViolationIsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	// The natural-key index folds case, so "ACME"/"Intern" collides with
	// an existing "acme"/"intern" row.
	mock.ExpectExec("INSERT INTO internships").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "internships_natural_key"})

	err = repo.CreateInternship(context.Background(), Internship{
		ID: "in-2", UserID: "user-1", Company: "ACME", Role: "Intern",
		VerificationStatus: StatusPending,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}
}

func TestPGRepoDeleteByUserPurgesAllTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	for _, table := range []string{"internships", "courses", "hackathons", "projects", "skills"} {
		mock.ExpectExec("DELETE FROM " + table).
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
	}

	if err := repo.DeleteByUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoScoreCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"c1", "c2", "c3", "c4"}).AddRow(2, 1, 0, 3))

	counts, err := repo.ScoreCounts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ScoreCounts: %v", err)
	}
	want := ScoreCounts{VerifiedInternships: 2, VerifiedCourses: 1, VerifiedHackathons: 0, Projects: 3}
	if counts != want {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
}
