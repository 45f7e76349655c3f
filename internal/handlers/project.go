package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/httpx"
	"github.com/collabdesk/billing-api/internal/models"
	"github.com/collabdesk/billing-api/validation"
)

type ProjectHandler struct {
	DB *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler { return &ProjectHandler{DB: db} }

// Create: POST /projects. Inserts the project and its owner membership in one
// transaction so a failed member insert never leaves a memberless project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		CreatedBy string `json:"createdBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("createdBy", req.CreatedBy, v)
	if !v.Empty() {
		httpx.FailDetails(w, http.StatusBadRequest, "Missing required fields", v)
		return
	}

	project := models.Project{Name: req.Name, CreatedBy: req.CreatedBy}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID:   project.ID,
			UserID:      req.CreatedBy,
			HasJoined:   true,
			ProjectRole: models.RoleOwner,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		project.Members = []models.ProjectMember{member}
		return nil
	})
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error creating project")
		return
	}
	httpx.OK(w, http.StatusCreated, project)
}

// ListByCreator: GET /projects?clerkid=...
func (h *ProjectHandler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	clerkID := r.URL.Query().Get("clerkid")
	if clerkID == "" {
		httpx.Fail(w, http.StatusBadRequest, "Missing clerkid param")
		return
	}
	var projects []models.Project
	if err := h.DB.Where("created_by = ?", clerkID).Order("id asc").Find(&projects).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	if len(projects) == 0 {
		httpx.Fail(w, http.StatusNotFound, "No projects found")
		return
	}
	httpx.OK(w, http.StatusOK, projects)
}

// Members: GET /projects/members?projectid=...
func (h *ProjectHandler) Members(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryUint(r, "projectid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Invalid or missing projectid param")
		return
	}
	var project models.Project
	if err := h.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Project not found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	var members []models.ProjectMember
	if err := h.DB.Where("project_id = ?", projectID).Order("id asc").Find(&members).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	project.Members = members
	httpx.OK(w, http.StatusOK, project)
}

// Remove: DELETE /projects?projectid=... Members and the project row go in
// one transaction; a missing project rolls the member delete back.
func (h *ProjectHandler) Remove(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryUint(r, "projectid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Missing or invalid projectid param")
		return
	}
	var project models.Project
	var members []models.ProjectMember
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Order("id asc").Find(&members).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.First(&project, projectID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, projectID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Project not found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"project": project, "members": members})
}
