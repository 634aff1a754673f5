package records

import (
	"errors"
	"net/http"
	"time"

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
	rg.GET("/internships", h.listInternships)
	rg.POST("/internships", h.createInternship)
	rg.PUT("/internships/:id", h.updateInternship)
	rg.DELETE("/internships/:id", h.deleteInternship)

	rg.GET("/courses", h.listCourses)
	rg.POST("/courses", h.createCourse)
	rg.PUT("/courses/:id", h.updateCourse)
	rg.DELETE("/courses/:id", h.deleteCourse)

	rg.GET("/hackathons", h.listHackathons)
	rg.POST("/hackathons", h.createHackathon)
	rg.PUT("/hackathons/:id", h.updateHackathon)
	rg.DELETE("/hackathons/:id", h.deleteHackathon)

	rg.GET("/projects", h.listProjects)
	rg.POST("/projects", h.createProject)
	rg.PUT("/projects/:id", h.updateProject)
	rg.DELETE("/projects/:id", h.deleteProject)

	rg.GET("/skills", h.listSkills)
	rg.POST("/skills", h.createSkill)
	rg.PUT("/skills/:id", h.updateSkill)
	rg.DELETE("/skills/:id", h.deleteSkill)
}

// statusFilter validates the optional ?status= query param.
func statusFilter(c *gin.Context) (VerificationStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status := VerificationStatus(raw)
	if !ValidStatus(status) {
		respond.Error(c, http.StatusBadRequest, "invalid_status", "status must be pending, verified or rejected", nil)
		return "", false
	}
	return status, true
}

func writeRecordErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "duplicate", "record already exists", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "operation failed", nil)
	}
}

type internshipRequest struct {
	Company            string     `json:"company" binding:"required"`
	Role               string     `json:"role" binding:"required"`
	Description        string     `json:"description"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	IsCurrentlyWorking bool       `json:"isCurrentlyWorking"`
	Location           string     `json:"location"`
}

func (h *Handler) listInternships(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}
	items, err := h.Svc.ListInternships(c.Request.Context(), middleware.UserIDFromContext(c), status)
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"internships": items, "count": len(items)})
}

func (h *Handler) createInternship(c *gin.Context) {
	var req internshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "company and role are required", nil)
		return
	}
	created, err := h.Svc.CreateInternship(c.Request.Context(), Internship{
		UserID:             middleware.UserIDFromContext(c),
		Company:            req.Company,
		Role:               req.Role,
		Description:        req.Description,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsCurrentlyWorking: req.IsCurrentlyWorking,
		Location:           req.Location,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) updateInternship(c *gin.Context) {
	var req internshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "company and role are required", nil)
		return
	}
	updated, err := h.Svc.UpdateInternship(c.Request.Context(), Internship{
		ID:                 c.Param("id"),
		UserID:             middleware.UserIDFromContext(c),
		Company:            req.Company,
		Role:               req.Role,
		Description:        req.Description,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsCurrentlyWorking: req.IsCurrentlyWorking,
		Location:           req.Location,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) deleteInternship(c *gin.Context) {
	if err := h.Svc.DeleteInternship(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c)); err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "internship deleted"})
}

type courseRequest struct {
	CourseName     string     `json:"courseName" binding:"required"`
	Platform       string     `json:"platform" binding:"required"`
	Instructor     string     `json:"instructor"`
	CompletionDate *time.Time `json:"completionDate"`
	SkillsLearned  []string   `json:"skillsLearned"`
}

func (h *Handler) listCourses(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}
	items, err := h.Svc.ListCourses(c.Request.Context(), middleware.UserIDFromContext(c), status)
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"courses": items, "count": len(items)})
}

func (h *Handler) createCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "courseName and platform are required", nil)
		return
	}
	created, err := h.Svc.CreateCourse(c.Request.Context(), Course{
		UserID:         middleware.UserIDFromContext(c),
		CourseName:     req.CourseName,
		Platform:       req.Platform,
		Instructor:     req.Instructor,
		CompletionDate: req.CompletionDate,
		SkillsLearned:  req.SkillsLearned,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) updateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "courseName and platform are required", nil)
		return
	}
	updated, err := h.Svc.UpdateCourse(c.Request.Context(), Course{
		ID:             c.Param("id"),
		UserID:         middleware.UserIDFromContext(c),
		CourseName:     req.CourseName,
		Platform:       req.Platform,
		Instructor:     req.Instructor,
		CompletionDate: req.CompletionDate,
		SkillsLearned:  req.SkillsLearned,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) deleteCourse(c *gin.Context) {
	if err := h.Svc.DeleteCourse(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c)); err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "course deleted"})
}

type hackathonRequest struct {
	Name               string     `json:"name" binding:"required"`
	Organizer          string     `json:"organizer"`
	Position           string     `json:"position"`
	ProjectName        string     `json:"projectName"`
	ProjectDescription string     `json:"projectDescription"`
	Technologies       []string   `json:"technologies"`
	EventDate          *time.Time `json:"eventDate"`
	ProjectURL         string     `json:"projectUrl"`
}

func (h *Handler) listHackathons(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}
	items, err := h.Svc.ListHackathons(c.Request.Context(), middleware.UserIDFromContext(c), status)
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"hackathons": items, "count": len(items)})
}

func (h *Handler) createHackathon(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "name is required", nil)
		return
	}
	created, err := h.Svc.CreateHackathon(c.Request.Context(), Hackathon{
		UserID:             middleware.UserIDFromContext(c),
		Name:               req.Name,
		Organizer:          req.Organizer,
		Position:           req.Position,
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		Technologies:       req.Technologies,
		EventDate:          req.EventDate,
		ProjectURL:         req.ProjectURL,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) updateHackathon(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "name is required", nil)
		return
	}
	updated, err := h.Svc.UpdateHackathon(c.Request.Context(), Hackathon{
		ID:                 c.Param("id"),
		UserID:             middleware.UserIDFromContext(c),
		Name:               req.Name,
		Organizer:          req.Organizer,
		Position:           req.Position,
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		Technologies:       req.Technologies,
		EventDate:          req.EventDate,
		ProjectURL:         req.ProjectURL,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) deleteHackathon(c *gin.Context) {
	if err := h.Svc.DeleteHackathon(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c)); err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "hackathon deleted"})
}

type projectRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Technologies []string   `json:"technologies"`
	GitHubURL    string     `json:"githubUrl"`
	LiveURL      string     `json:"liveUrl"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.Svc.ListProjects(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"projects": items, "count": len(items)})
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "title is required", nil)
		return
	}
	created, err := h.Svc.CreateProject(c.Request.Context(), Project{
		UserID:       middleware.UserIDFromContext(c),
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		GitHubURL:    req.GitHubURL,
		LiveURL:      req.LiveURL,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) updateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "title is required", nil)
		return
	}
	updated, err := h.Svc.UpdateProject(c.Request.Context(), Project{
		ID:           c.Param("id"),
		UserID:       middleware.UserIDFromContext(c),
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		GitHubURL:    req.GitHubURL,
		LiveURL:      req.LiveURL,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.Svc.DeleteProject(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c)); err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "project deleted"})
}

type skillRequest struct {
	SkillName        string `json:"skillName" binding:"required"`
	Category         string `json:"category"`
	ProficiencyLevel string `json:"proficiencyLevel"`
}

func (h *Handler) listSkills(c *gin.Context) {
	items, err := h.Svc.ListSkills(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"skills": items, "count": len(items)})
}

func (h *Handler) createSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "skillName is required", nil)
		return
	}
	created, err := h.Svc.CreateSkill(c.Request.Context(), Skill{
		UserID:           middleware.UserIDFromContext(c),
		SkillName:        req.SkillName,
		Category:         req.Category,
		ProficiencyLevel: req.ProficiencyLevel,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) updateSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "skillName is required", nil)
		return
	}
	updated, err := h.Svc.UpdateSkill(c.Request.Context(), Skill{
		ID:               c.Param("id"),
		UserID:           middleware.UserIDFromContext(c),
		SkillName:        req.SkillName,
		Category:         req.Category,
		ProficiencyLevel: req.ProficiencyLevel,
	})
	if err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) deleteSkill(c *gin.Context) {
	if err := h.Svc.DeleteSkill(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c)); err != nil {
		writeRecordErr(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "skill deleted"})
}
