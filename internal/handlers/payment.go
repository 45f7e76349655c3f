package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/httpx"
	"github.com/collabdesk/billing-api/internal/models"
)

type PaymentHandler struct {
	DB *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler { return &PaymentHandler{DB: db} }

type allocationRequest struct {
	InvoiceID *uint   `json:"invoiceId"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

type paymentCreateRequest struct {
	ClientID    string              `json:"clientId" validate:"required"`
	Amount      float64             `json:"amount" validate:"required,gt=0"`
	Allocations []allocationRequest `json:"allocations" validate:"dive"`
}

// Create: POST /payments. Records a payment and optionally splits it across
// invoices; an allocation without an invoice id is unapplied credit. The sum
// of allocations is not reconciled against the payment amount here.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req paymentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.FailDetails(w, http.StatusUnprocessableEntity, "Validation failed", schemaViolations(err))
		return
	}
	for _, a := range req.Allocations {
		if a.InvoiceID == nil {
			continue
		}
		var invoice models.Invoice
		if err := h.DB.First(&invoice, *a.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Fail(w, http.StatusNotFound, "No invoice found")
				return
			}
			httpx.FailErr(w, http.StatusInternalServerError, err)
			return
		}
	}

	payment := models.Payment{
		ClientID: req.ClientID,
		Amount:   models.MoneyFromFloat(req.Amount),
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		allocations := make([]models.PaymentAllocation, 0, len(req.Allocations))
		for _, a := range req.Allocations {
			allocations = append(allocations, models.PaymentAllocation{
				PaymentID: payment.ID,
				InvoiceID: a.InvoiceID,
				Amount:    models.MoneyFromFloat(a.Amount),
			})
		}
		if len(allocations) > 0 {
			if err := tx.Create(&allocations).Error; err != nil {
				return err
			}
		}
		payment.Allocations = allocations
		return nil
	})
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error creating payment")
		return
	}
	httpx.OK(w, http.StatusCreated, payment)
}

// List: GET /payments?clientid=... Payments come back with their allocations.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientid")
	if clientID == "" {
		httpx.Fail(w, http.StatusBadRequest, "Missing clientid param")
		return
	}
	var payments []models.Payment
	if err := h.DB.Where("client_id = ?", clientID).Preload("Allocations").Order("id asc").Find(&payments).Error; err != nil {
		httpx.FailErr(w, http.StatusInternalServerError, err)
		return
	}
	if len(payments) == 0 {
		httpx.Fail(w, http.StatusNotFound, "No payments found")
		return
	}
	httpx.OK(w, http.StatusOK, payments)
}
