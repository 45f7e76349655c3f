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

// ServiceHandler manages invoice elements, the billable line-item templates.
type ServiceHandler struct {
	DB *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler { return &ServiceHandler{DB: db} }

// Create: POST /services. The referenced client must exist. A zero price is
// rejected the same as a missing one.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID uint     `json:"projectId"`
		Name      string   `json:"name"`
		ClientID  string   `json:"clientid"`
		IsHourly  *bool    `json:"isHourly"`
		Price     *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	v := validation.Violations{}
	validation.RequiredID("projectId", req.ProjectID, v)
	validation.Required("name", req.Name, v)
	validation.Required("clientid", req.ClientID, v)
	if req.IsHourly == nil {
		v["isHourly"] = "required"
	}
	validation.PositiveAmount("price", req.Price, v)
	if !v.Empty() {
		httpx.FailDetails(w, http.StatusBadRequest, "Missing required fields", v)
		return
	}

	if _, err := clientByExternalID(h.DB, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Client not found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}

	svc := models.InvoiceElement{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		ClientID:  req.ClientID,
		IsHourly:  *req.IsHourly,
		Price:     models.MoneyFromFloat(*req.Price),
	}
	if err := h.DB.Create(&svc).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error creating services")
		return
	}
	httpx.OK(w, http.StatusCreated, svc)
}

// Edit: PATCH /services?serviceid=... Only supplied fields are overwritten.
func (h *ServiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := queryUint(r, "serviceid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Invalid or missing serviceid param")
		return
	}
	var req struct {
		Name     *string  `json:"name"`
		ClientID *string  `json:"clientId"`
		IsHourly *bool    `json:"isHourly"`
		Price    *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "No fields provided for update")
		return
	}
	if req.Name == nil && req.ClientID == nil && req.IsHourly == nil && req.Price == nil {
		httpx.Fail(w, http.StatusBadRequest, "No fields provided for update")
		return
	}
	if req.ClientID != nil {
		if _, err := clientByExternalID(h.DB, *req.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Client not found")
				return
			}
			httpx.FailErr(w, http.StatusInternalServerError, err)
			return
		}
	}

	var svc models.InvoiceElement
	if err := h.DB.First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Invoice element not found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.ClientID != nil {
		svc.ClientID = *req.ClientID
	}
	if req.IsHourly != nil {
		svc.IsHourly = *req.IsHourly
	}
	if req.Price != nil {
		svc.Price = models.MoneyFromFloat(*req.Price)
	}
	if err := h.DB.Save(&svc).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	httpx.OK(w, http.StatusOK, svc)
}

// List: GET /services?clientid=... or ?projectid=...
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var services []models.InvoiceElement
	if clientID := r.URL.Query().Get("clientid"); clientID != "" {
		if err := h.DB.Where("client_id = ?", clientID).Order("id asc").Find(&services).Error; err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, err)
			return
		}
	} else if projectID, ok := queryUint(r, "projectid"); ok {
		if err := h.DB.Where("project_id = ?", projectID).Order("id asc").Find(&services).Error; err != nil {
			httpx.FailErr(w, http.StatusInternalServerError, err)
			return
		}
	} else {
		httpx.Fail(w, http.StatusBadRequest, "Missing clientid or projectid param")
		return
	}
	if len(services) == 0 {
		httpx.Fail(w, http.StatusNotFound, "No services found")
		return
	}
	httpx.OK(w, http.StatusOK, services)
}

// Remove: DELETE /services?serviceid=...
func (h *ServiceHandler) Remove(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := queryUint(r, "serviceid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Invalid or missing serviceid param")
		return
	}
	var svc models.InvoiceElement
	if err := h.DB.First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Service not found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	if err := h.DB.Delete(&models.InvoiceElement{}, serviceID).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	httpx.OK(w, http.StatusOK, svc)
}
