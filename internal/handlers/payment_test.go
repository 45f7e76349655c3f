package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/collabdesk/billing-api/internal/models"
)

func TestPaymentCreateSplitAcrossInvoices(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPaymentHandler(conn)
	seedInvoice(t, conn, "created", 0)
	seedInvoice(t, conn, "created", 0)

	body := `{"clientId":"42","amount":500,"allocations":[{"invoiceId":1,"amount":300},{"invoiceId":2,"amount":200}]}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var payment models.Payment
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &payment); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payment.Amount.StringFixed(2) != "500.00" || len(payment.Allocations) != 2 {
		t.Fatalf("unexpected payment: %+v", payment)
	}
}

func TestPaymentCreateUnallocatedCredit(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPaymentHandler(conn)

	body := `{"clientId":"42","amount":100,"allocations":[{"amount":100}]}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var payment models.Payment
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &payment); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payment.Allocations) != 1 || payment.Allocations[0].InvoiceID != nil {
		t.Fatalf("expected one credit allocation, got %+v", payment.Allocations)
	}
}

func TestPaymentCreateUnknownInvoice(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPaymentHandler(conn)

	body := `{"clientId":"42","amount":100,"allocations":[{"invoiceId":9,"amount":100}]}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	var count int64
	conn.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Fatalf("no payment should have been inserted")
	}
}

func TestPaymentCreateSchemaValidation(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPaymentHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"clientId":"42","amount":0}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
}

func TestPaymentList(t *testing.T) {
	conn := setupTestDB(t)
	h := NewPaymentHandler(conn)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/payments", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/payments?clientid=42", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}

	payment := models.Payment{ClientID: "42", Amount: models.MoneyFromFloat(75.5)}
	if err := conn.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	alloc := models.PaymentAllocation{PaymentID: payment.ID, Amount: models.MoneyFromFloat(75.5)}
	if err := conn.Create(&alloc).Error; err != nil {
		t.Fatalf("seed allocation: %v", err)
	}

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/payments?clientid=42", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var payments []models.Payment
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &payments); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payments) != 1 || len(payments[0].Allocations) != 1 {
		t.Fatalf("unexpected payments: %+v", payments)
	}
	if payments[0].Amount.StringFixed(2) != "75.50" {
		t.Fatalf("unexpected amount: %s", payments[0].Amount.StringFixed(2))
	}
}
