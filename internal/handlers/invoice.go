package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/httpx"
	"github.com/collabdesk/billing-api/internal/models"
)

type InvoiceHandler struct {
	DB *gorm.DB
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler { return &InvoiceHandler{DB: db} }

type invoiceItemRequest struct {
	InvoiceElementID uint `json:"invoiceElementsId" validate:"required"`
	Quantity         int  `json:"quantity" validate:"required,gt=0"`
}

type invoiceCreateRequest struct {
	ProjectID     uint                 `json:"projectId" validate:"required"`
	ClientID      string               `json:"clientId" validate:"required"`
	Total         float64              `json:"total" validate:"required,gt=0"`
	InvoiceStatus string               `json:"invoiceStatus"`
	Items         []invoiceItemRequest `json:"items" validate:"dive"`
}

// Create: POST /invoice. Invoice and its items are written in one transaction.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.FailDetails(w, http.StatusUnprocessableEntity, "Validation failed", schemaViolations(err))
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

	status := req.InvoiceStatus
	if status == "" {
		status = "created"
	}
	invoice := models.Invoice{
		ProjectID:     req.ProjectID,
		ClientID:      req.ClientID,
		Total:         models.MoneyFromFloat(req.Total),
		InvoiceStatus: status,
		PayedAmount:   models.MoneyFromFloat(0),
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		items := make([]models.InvoiceItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, models.InvoiceItem{
				InvoiceID:        invoice.ID,
				InvoiceElementID: it.InvoiceElementID,
				Quantity:         it.Quantity,
			})
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		invoice.Items = items
		return nil
	})
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error creating invoice")
		return
	}
	httpx.OK(w, http.StatusCreated, invoice)
}

// View: GET /invoice/view?invoiceid=... Returns the invoice with its ordered
// item list (possibly empty).
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := queryUint(r, "invoiceid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Invalid or missing invoiceid param")
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "No invoice found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	items := []models.InvoiceItem{}
	if err := h.DB.Where("invoice_id = ?", invoice.ID).Order("id asc").Find(&items).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	invoice.Items = items
	httpx.OK(w, http.StatusOK, invoice)
}

// Remove: DELETE /invoice?invoiceid=... Paid invoices are protected. The item
// delete and the invoice delete share a transaction.
func (h *InvoiceHandler) Remove(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := queryUint(r, "invoiceid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Invalid or missing invoiceid param")
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "No invoice found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	if invoice.InvoiceStatus == models.StatusPaid {
		httpx.Fail(w, http.StatusForbidden, "Invoice is already paid so delete is not allowed")
		return
	}
	items := []models.InvoiceItem{}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Order("id asc").Find(&items).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, invoice.ID).Error
	})
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error deleting invoice")
		return
	}
	invoice.Items = items
	httpx.OK(w, http.StatusOK, invoice)
}

// PaymentHistory: GET /invoice/payment-history?invoiceid=... Lists the ordered
// allocations applied to the invoice; an invoice with no payments yields an
// empty list, not a 404.
func (h *InvoiceHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := queryUint(r, "invoiceid")
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "Invalid or missing invoiceid param")
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "No invoice found")
			return
		}
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	allocations := []models.PaymentAllocation{}
	if err := h.DB.Where("invoice_id = ?", invoice.ID).Order("id asc").Find(&allocations).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	httpx.OK(w, http.StatusOK, allocations)
}
