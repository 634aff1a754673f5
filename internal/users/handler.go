package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-ecosystem-backend/internal/shared/server/middleware"
	"resume-ecosystem-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
	Env string
}

func NewHandler(svc *Service, env string) *Handler {
	return &Handler{Svc: svc, Env: env}
}

// devMode gates token echoing in responses; emails are not sent yet, so
// dev and local environments return the tokens directly.
func (h *Handler) devMode() bool {
	return h.Env == "dev" || h.Env == "local"
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.GET("/me", h.me)
	auth.PUT("/profile", h.updateProfile)
	auth.PUT("/change-password", h.changePassword)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.PUT("/reset-password/:token", h.resetPassword)
	auth.GET("/verify-email/:token", h.verifyEmail)
	auth.POST("/resend-verification", h.resendVerification)
	auth.POST("/logout", h.logout)
	auth.DELETE("/account", h.deleteAccount)
	auth.GET("/stats", h.stats)

	admin := auth.Group("/users", middleware.RequireRole(RoleAdmin))
	admin.GET("", h.listUsers)
	admin.PUT("/:id/role", h.updateUserRole)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email, password and fullName are required", nil)
		return
	}
	user, token, verificationToken, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusBadRequest, "duplicate_email", "user with this email already exists", nil)
		case errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", "password must be at least 6 characters", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "registration failed", nil)
		}
		return
	}
	body := gin.H{"token": token, "user": user}
	if h.devMode() {
		body["verificationToken"] = verificationToken
	}
	respond.JSON(c, http.StatusCreated, body)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and password are required", nil)
		return
	}
	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, user)
}

type profileRequest struct {
	FullName     *string `json:"fullName"`
	Phone        *string `json:"phone"`
	Bio          *string `json:"bio"`
	Location     *string `json:"location"`
	LinkedInURL  *string `json:"linkedinUrl"`
	GitHubURL    *string `json:"githubUrl"`
	PortfolioURL *string `json:"portfolioUrl"`
	PictureURL   *string `json:"pictureUrl"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed body", nil)
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), ProfilePatch{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Bio:          req.Bio,
		Location:     req.Location,
		LinkedInURL:  req.LinkedInURL,
		GitHubURL:    req.GitHubURL,
		PortfolioURL: req.PortfolioURL,
		PictureURL:   req.PictureURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPatch):
			respond.Error(c, http.StatusBadRequest, "empty_patch", "no fields provided for update", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "profile update failed", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "currentPassword and newPassword are required", nil)
		return
	}
	token, err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserIDFromContext(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrSamePassword):
			respond.Error(c, http.StatusBadRequest, "same_password", "new password must differ from current password", nil)
		case errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", "password must be at least 6 characters", nil)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "password change failed", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"token": token, "message": "password changed"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email is required", nil)
		return
	}
	token, err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue reset token", nil)
		return
	}
	body := gin.H{"message": "if an account exists with this email, a password reset link has been sent"}
	if h.devMode() && token != "" {
		body["resetToken"] = token
	}
	respond.JSON(c, http.StatusOK, body)
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "password is required", nil)
		return
	}
	user, token, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", "password must be at least 6 characters", nil)
		case errors.Is(err, ErrSamePassword):
			respond.Error(c, http.StatusBadRequest, "same_password", "new password must differ from the old password", nil)
		case errors.Is(err, ErrInvalidToken):
			respond.Error(c, http.StatusBadRequest, "invalid_token", "invalid or expired reset token", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "password reset failed", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) verifyEmail(c *gin.Context) {
	if err := h.Svc.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			respond.Error(c, http.StatusBadRequest, "invalid_token", "invalid or expired verification token", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "verification failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "email verified successfully"})
}

func (h *Handler) resendVerification(c *gin.Context) {
	token, err := h.Svc.ResendVerification(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrAlreadyVerified) {
			respond.Error(c, http.StatusBadRequest, "already_verified", "email is already verified", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue verification token", nil)
		return
	}
	body := gin.H{"message": "verification email sent"}
	if h.devMode() {
		body["verificationToken"] = token
	}
	respond.JSON(c, http.StatusOK, body)
}

// logout exists for client symmetry; tokens are stateless so there is
// nothing to revoke server side.
func (h *Handler) logout(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

type deleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) deleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "password is required to delete the account", nil)
		return
	}
	err := h.Svc.DeleteAccount(c.Request.Context(), middleware.UserIDFromContext(c), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "incorrect password", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "account deletion failed", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "account and all associated data deleted"})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load stats", nil)
		return
	}
	respond.JSON(c, http.StatusOK, stats)
}

func (h *Handler) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := h.Svc.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) updateUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "role is required", nil)
		return
	}
	if !ValidRole(req.Role) {
		respond.Error(c, http.StatusBadRequest, "invalid_role", "role must be student, professional or admin", nil)
		return
	}
	user, err := h.Svc.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "role update failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, user)
}
