package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/httpx"
	"github.com/collabdesk/billing-api/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler { return &UserHandler{DB: db} }

type userCreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	ClerkID string `json:"clerkid" validate:"required"`
}

// Create: POST /users. Mirrors an identity-provider user record; an existing
// record for the clerk id is updated in place.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.FailDetails(w, http.StatusUnprocessableEntity, "Validation failed", schemaViolations(err))
		return
	}
	var user models.UserInformation
	err := h.DB.Where("clerkid = ?", req.ClerkID).First(&user).Error
	switch {
	case err == nil:
		user.Name = req.Name
		user.Email = req.Email
		if err := h.DB.Save(&user).Error; err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error updating user")
			return
		}
		httpx.OK(w, http.StatusOK, user)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.UserInformation{Name: req.Name, Email: req.Email, ClerkID: req.ClerkID}
		if err := h.DB.Create(&user).Error; err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "Error creating user")
			return
		}
		httpx.OK(w, http.StatusCreated, user)
	default:
		httpx.FailErr(w, http.StatusInternalServerError, err)
	}
}

// Get: GET /users?clerkid=...
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	clerkID := r.URL.Query().Get("clerkid")
	if clerkID == "" {
		httpx.Fail(w, http.StatusBadRequest, "Missing clerkid param")
		return
	}
	var user models.UserInformation
	if err := h.DB.Where("clerkid = ?", clerkID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "User not found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	httpx.OK(w, http.StatusOK, user)
}
