package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ecosystem-backend/internal/records"
	"resume-ecosystem-backend/internal/resumes"
	"resume-ecosystem-backend/internal/shared/auth"
	"resume-ecosystem-backend/internal/shared/telemetry"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so responses do not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSamePassword       = errors.New("new password must differ from the current one")
	ErrWeakPassword       = errors.New("password too short")
	ErrAlreadyVerified    = errors.New("email already verified")
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 30 * time.Minute
)

// RecordSource supplies the record counts behind the stats endpoint and
// the per-user purge used by account deletion.
type RecordSource interface {
	ListInternships(ctx context.Context, userID string, status records.VerificationStatus) ([]records.Internship, error)
	ListCourses(ctx context.Context, userID string, status records.VerificationStatus) ([]records.Course, error)
	ListHackathons(ctx context.Context, userID string, status records.VerificationStatus) ([]records.Hackathon, error)
	ListProjects(ctx context.Context, userID string) ([]records.Project, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// ResumeSource counts the user's resumes for stats and purges them on
// account deletion.
type ResumeSource interface {
	List(ctx context.Context, userID string) ([]resumes.Resume, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// IntegrationSource purges the user's platform integrations on account
// deletion.
type IntegrationSource interface {
	DeleteByUser(ctx context.Context, userID string) error
}

type Service struct {
	Repo         Repo
	JWTTTL       time.Duration
	Records      RecordSource
	Resumes      ResumeSource
	Integrations IntegrationSource
}

func NewService(repo Repo, jwtTTL time.Duration, recordSource RecordSource, resumeSource ResumeSource, integrationSource IntegrationSource) *Service {
	return &Service{
		Repo:         repo,
		JWTTTL:       jwtTTL,
		Records:      recordSource,
		Resumes:      resumeSource,
		Integrations: integrationSource,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     string
}

// Register creates the account and returns the user, a signed session
// token and the plain email-verification token. Only the verification
// token's hash is stored.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, string, error) {
	if len(in.Password) < auth.MinPasswordLength {
		return User{}, "", "", ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = RoleStudent
	}
	if !ValidRole(role) {
		return User{}, "", "", errors.New("invalid role")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, "", "", err
	}
	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", "", err
	}

	verificationToken, err := s.issueVerificationToken(ctx, user.ID)
	if err != nil {
		return User{}, "", "", err
	}

	token, err := auth.SignJWT(user.ID, user.Email, user.Role, s.JWTTTL)
	if err != nil {
		return User{}, "", "", err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return user, token, verificationToken, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return User{}, "", ErrInvalidCredentials
	}
	token, err := auth.SignJWT(user.ID, user.Email, user.Role, s.JWTTTL)
	if err != nil {
		return User{}, "", err
	}
	telemetry.Info("user.logged_in", map[string]any{"user_id": user.ID})
	return user, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

type ProfilePatch struct {
	FullName     *string
	Phone        *string
	Bio          *string
	Location     *string
	LinkedInURL  *string
	GitHubURL    *string
	PortfolioURL *string
	PictureURL   *string
}

func (p ProfilePatch) empty() bool {
	return p.FullName == nil && p.Phone == nil && p.Bio == nil && p.Location == nil &&
		p.LinkedInURL == nil && p.GitHubURL == nil && p.PortfolioURL == nil && p.PictureURL == nil
}

var ErrEmptyPatch = errors.New("no fields provided for update")

func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (User, error) {
	if patch.empty() {
		return User{}, ErrEmptyPatch
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	applyString(&user.FullName, patch.FullName)
	applyString(&user.Phone, patch.Phone)
	applyString(&user.Bio, patch.Bio)
	applyString(&user.Location, patch.Location)
	applyString(&user.LinkedInURL, patch.LinkedInURL)
	applyString(&user.GitHubURL, patch.GitHubURL)
	applyString(&user.PortfolioURL, patch.PortfolioURL)
	applyString(&user.PictureURL, patch.PictureURL)
	if err := s.Repo.UpdateProfile(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func applyString(dest *string, value *string) {
	if value != nil {
		*dest = *value
	}
}

func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	if currentPassword == newPassword {
		return "", ErrSamePassword
	}
	if len(newPassword) < auth.MinPasswordLength {
		return "", ErrWeakPassword
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return "", ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		return "", err
	}
	return auth.SignJWT(user.ID, user.Email, user.Role, s.JWTTTL)
}

// ForgotPassword issues a reset token. An unknown email returns an empty
// token and no error so callers cannot probe for registered addresses.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	token, hash, err := newToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, user.ID, hash, expires); err != nil {
		return "", err
	}
	telemetry.Info("user.reset_token_issued", map[string]any{"user_id": user.ID})
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) (User, string, error) {
	if len(newPassword) < auth.MinPasswordLength {
		return User{}, "", ErrWeakPassword
	}
	user, err := s.Repo.GetByResetToken(ctx, hashToken(resetToken))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidToken
		}
		return User{}, "", err
	}
	if auth.CheckPassword(user.PasswordHash, newPassword) {
		return User{}, "", ErrSamePassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return User{}, "", err
	}
	if err := s.Repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return User{}, "", err
	}
	if err := s.Repo.ClearResetToken(ctx, user.ID); err != nil {
		return User{}, "", err
	}
	token, err := auth.SignJWT(user.ID, user.Email, user.Role, s.JWTTTL)
	if err != nil {
		return User{}, "", err
	}
	telemetry.Info("user.password_reset", map[string]any{"user_id": user.ID})
	return user, token, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.Repo.GetByVerificationToken(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if err := s.Repo.MarkVerified(ctx, user.ID); err != nil {
		return err
	}
	telemetry.Info("user.email_verified", map[string]any{"user_id": user.ID})
	return nil
}

func (s *Service) ResendVerification(ctx context.Context, userID string) (string, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.IsVerified {
		return "", ErrAlreadyVerified
	}
	return s.issueVerificationToken(ctx, userID)
}

// DeleteAccount removes the user and everything they own. The child
// purges run before the user row goes so the cascade holds on stores
// without foreign keys; on Postgres the FKs make them redundant.
func (s *Service) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	if err := s.Records.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Resumes.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Integrations.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	telemetry.Info("user.account_deleted", map[string]any{"user_id": userID})
	return nil
}

func (s *Service) UpdateRole(ctx context.Context, userID, role string) (User, error) {
	if !ValidRole(role) {
		return User{}, errors.New("invalid role")
	}
	if err := s.Repo.UpdateRole(ctx, userID, role); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) (UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return UserPage{}, err
	}
	list, err := s.Repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return UserPage{}, err
	}
	pages := (total + limit - 1) / limit
	return UserPage{Users: list, Total: total, Page: page, Pages: pages}, nil
}

// Stats aggregates counts across the user's records and resumes.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	resumeList, err := s.Resumes.List(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	internships, err := s.Records.ListInternships(ctx, userID, "")
	if err != nil {
		return Stats{}, err
	}
	courses, err := s.Records.ListCourses(ctx, userID, "")
	if err != nil {
		return Stats{}, err
	}
	hackathons, err := s.Records.ListHackathons(ctx, userID, "")
	if err != nil {
		return Stats{}, err
	}
	projects, err := s.Records.ListProjects(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	verifiedInternships := 0
	for _, in := range internships {
		if in.VerificationStatus == records.StatusVerified {
			verifiedInternships++
		}
	}
	verifiedCourses := 0
	for _, course := range courses {
		if course.VerificationStatus == records.StatusVerified {
			verifiedCourses++
		}
	}

	totalVerifiable := len(internships) + len(courses) + len(hackathons)
	percentage := 0
	if totalVerifiable > 0 {
		percentage = int(float64(verifiedInternships+verifiedCourses)/float64(totalVerifiable)*100 + 0.5)
	}

	return Stats{
		Resumes:                len(resumeList),
		Internships:            len(internships),
		Projects:               len(projects),
		Courses:                len(courses),
		Hackathons:             len(hackathons),
		VerifiedInternships:    verifiedInternships,
		VerifiedCourses:        verifiedCourses,
		VerificationPercentage: percentage,
		CredibilityScore:       user.CredibilityScore,
		AccountAgeDays:         int(time.Since(user.CreatedAt).Hours() / 24),
	}, nil
}

// ContactCard adapts the account to the resume view header. The second
// return value is the account role, used by the summary generator.
func (s *Service) ContactCard(ctx context.Context, userID string) (resumes.ContactCard, string, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return resumes.ContactCard{}, "", err
	}
	return resumes.ContactCard{
		FullName:     user.FullName,
		Email:        user.Email,
		Phone:        user.Phone,
		Location:     user.Location,
		LinkedInURL:  user.LinkedInURL,
		GitHubURL:    user.GitHubURL,
		PortfolioURL: user.PortfolioURL,
		Bio:          user.Bio,
	}, user.Role, nil
}

func (s *Service) issueVerificationToken(ctx context.Context, userID string) (string, error) {
	token, hash, err := newToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(verificationTokenTTL)
	if err := s.Repo.SetVerificationToken(ctx, userID, hash, expires); err != nil {
		return "", err
	}
	return token, nil
}

// newToken returns a random token and its sha256 hex digest. Only the
// digest is ever persisted.
func newToken() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	token := hex.EncodeToString(raw)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
