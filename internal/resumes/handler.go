package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ecosystem-backend/internal/shared/server/middleware"
	"resume-ecosystem-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
	rg.POST("/resumes/:id/generate-summary", h.generateSummary)
}

type resumeRequest struct {
	Title          string          `json:"title"`
	IsDefault      bool            `json:"isDefault"`
	TemplateID     string          `json:"templateId"`
	Visibility     string          `json:"visibility"`
	Sections       *Sections       `json:"sections"`
	CustomSections []CustomSection `json:"customSections"`
}

func writeResumeErr(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "operation failed", nil)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeResumeErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"resumes": items, "count": len(items)})
}

func (h *Handler) create(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed body", nil)
		return
	}
	if req.Visibility != "" && !ValidVisibility(req.Visibility) {
		respond.Error(c, http.StatusBadRequest, "invalid_visibility", "visibility must be private, public or shared", nil)
		return
	}
	sections := DefaultSections()
	if req.Sections != nil {
		sections = *req.Sections
	}
	created, err := h.Svc.Create(c.Request.Context(), Resume{
		UserID:         middleware.UserIDFromContext(c),
		Title:          req.Title,
		IsDefault:      req.IsDefault,
		TemplateID:     req.TemplateID,
		Visibility:     req.Visibility,
		Sections:       sections,
		CustomSections: req.CustomSections,
	})
	if err != nil {
		writeResumeErr(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) get(c *gin.Context) {
	view, err := h.Svc.GetView(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	if err != nil {
		writeResumeErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, view)
}

func (h *Handler) update(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed body", nil)
		return
	}
	if req.Visibility != "" && !ValidVisibility(req.Visibility) {
		respond.Error(c, http.StatusBadRequest, "invalid_visibility", "visibility must be private, public or shared", nil)
		return
	}
	sections := DefaultSections()
	if req.Sections != nil {
		sections = *req.Sections
	}
	updated, err := h.Svc.Update(c.Request.Context(), Resume{
		ID:             c.Param("id"),
		UserID:         middleware.UserIDFromContext(c),
		Title:          req.Title,
		IsDefault:      req.IsDefault,
		TemplateID:     req.TemplateID,
		Visibility:     req.Visibility,
		Sections:       sections,
		CustomSections: req.CustomSections,
	})
	if err != nil {
		writeResumeErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c)); err != nil {
		writeResumeErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "resume deleted"})
}

func (h *Handler) generateSummary(c *gin.Context) {
	summary, err := h.Svc.GenerateSummary(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	if err != nil {
		writeResumeErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": summary})
}
