package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/httpx"
	"github.com/collabdesk/billing-api/internal/models"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

type clientCreateRequest struct {
	ClientID       int    `json:"clientId" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	ClerkID        string `json:"clerkid" validate:"required"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	VATNumber      string `json:"vatNumber"`
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.FailDetails(w, http.StatusUnprocessableEntity, "Validation failed", schemaViolations(err))
		return
	}
	client := models.ClientInformation{
		ClientID:       req.ClientID,
		Name:           req.Name,
		Email:          req.Email,
		ClerkID:        req.ClerkID,
		Phone:          req.Phone,
		Address:        req.Address,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		VATNumber:      req.VATNumber,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error creating client")
		return
	}
	httpx.OK(w, http.StatusCreated, client)
}

// List: GET /clients?clerkid=...
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clerkID := r.URL.Query().Get("clerkid")
	if clerkID == "" {
		httpx.Fail(w, http.StatusBadRequest, "Missing clerkid param")
		return
	}
	var clients []models.ClientInformation
	if err := h.DB.Where("clerkid = ?", clerkID).Order("id asc").Find(&clients).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	if len(clients) == 0 {
		httpx.Fail(w, http.StatusNotFound, "No clients found")
		return
	}
	httpx.OK(w, http.StatusOK, clients)
}
