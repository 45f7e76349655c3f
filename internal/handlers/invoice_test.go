package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/internal/models"
)

func seedInvoice(t *testing.T, conn *gorm.DB, status string, itemCount int) models.Invoice {
	t.Helper()
	inv := models.Invoice{
		ProjectID:     1,
		ClientID:      "42",
		Total:         models.MoneyFromFloat(1000),
		InvoiceStatus: status,
		PayedAmount:   models.MoneyFromFloat(0),
	}
	if err := conn.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	for i := 0; i < itemCount; i++ {
		item := models.InvoiceItem{InvoiceID: inv.ID, InvoiceElementID: uint(i + 1), Quantity: i + 1}
		if err := conn.Create(&item).Error; err != nil {
			t.Fatalf("seed item: %v", err)
		}
	}
	return inv
}

func TestInvoiceCreateWithItems(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	seedClient(t, conn, 42, "user_1")

	body := `{"projectId":1,"clientId":"42","total":1500,"items":[{"invoiceElementsId":1,"quantity":3},{"invoiceElementsId":2,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoice", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var inv models.Invoice
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.InvoiceStatus != "created" || len(inv.Items) != 2 {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if inv.Total.StringFixed(2) != "1500.00" || inv.PayedAmount.StringFixed(2) != "0.00" {
		t.Fatalf("unexpected amounts: %s / %s", inv.Total.StringFixed(2), inv.PayedAmount.StringFixed(2))
	}
}

func TestInvoiceCreateSchemaValidation(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	seedClient(t, conn, 42, "user_1")

	req := httptest.NewRequest(http.MethodPost, "/invoice", strings.NewReader(`{"projectId":1,"clientId":"42","total":0}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestInvoiceCreateUnknownClient(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)

	req := httptest.NewRequest(http.MethodPost, "/invoice", strings.NewReader(`{"projectId":1,"clientId":"42","total":10}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestInvoiceViewReturnsItemList(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	inv := seedInvoice(t, conn, "created", 2)

	w := httptest.NewRecorder()
	h.View(w, httptest.NewRequest(http.MethodGet, "/invoice/view?invoiceid=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var got models.Invoice
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != inv.ID || len(got.Items) != 2 {
		t.Fatalf("unexpected invoice payload: %+v", got)
	}
	if got.Items[0].ID >= got.Items[1].ID {
		t.Fatalf("items must be ordered by id ascending")
	}
}

func TestInvoiceViewEmptyItems(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	seedInvoice(t, conn, "created", 0)

	w := httptest.NewRecorder()
	h.View(w, httptest.NewRequest(http.MethodGet, "/invoice/view?invoiceid=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	// items must be a real (empty) list, not null or a wrapped single element
	var raw struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.Items == nil || len(raw.Items) != 0 {
		t.Fatalf("expected empty items list, got %v", raw.Items)
	}
}

func TestInvoiceViewValidation(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)

	w := httptest.NewRecorder()
	h.View(w, httptest.NewRequest(http.MethodGet, "/invoice/view", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.View(w, httptest.NewRequest(http.MethodGet, "/invoice/view?invoiceid=5", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestPaidInvoiceRemoveRejected(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	inv := seedInvoice(t, conn, models.StatusPaid, 1)

	w := httptest.NewRecorder()
	h.Remove(w, httptest.NewRequest(http.MethodDelete, "/invoice?invoiceid=1", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error != "Invoice is already paid so delete is not allowed" {
		t.Fatalf("unexpected error: %q", env.Error)
	}

	// invoice and its items stay intact
	var invCount, itemCount int64
	conn.Model(&models.Invoice{}).Where("id = ?", inv.ID).Count(&invCount)
	conn.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&itemCount)
	if invCount != 1 || itemCount != 1 {
		t.Fatalf("paid invoice must survive delete: %d/%d", invCount, itemCount)
	}
}

func TestInvoiceRemoveDeletesItems(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	inv := seedInvoice(t, conn, "created", 3)

	w := httptest.NewRecorder()
	h.Remove(w, httptest.NewRequest(http.MethodDelete, "/invoice?invoiceid=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var got models.Invoice
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 deleted items back, got %d", len(got.Items))
	}

	var invCount, itemCount int64
	conn.Model(&models.Invoice{}).Where("id = ?", inv.ID).Count(&invCount)
	conn.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&itemCount)
	if invCount != 0 || itemCount != 0 {
		t.Fatalf("invoice and items should be gone: %d/%d", invCount, itemCount)
	}
}

func TestInvoicePaymentHistory(t *testing.T) {
	conn := setupTestDB(t)
	h := NewInvoiceHandler(conn)
	inv := seedInvoice(t, conn, "created", 0)

	w := httptest.NewRecorder()
	h.PaymentHistory(w, httptest.NewRequest(http.MethodGet, "/invoice/payment-history?invoiceid=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var allocations []models.PaymentAllocation
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &allocations); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(allocations) != 0 {
		t.Fatalf("fresh invoice should have no allocations")
	}

	payment := models.Payment{ClientID: "42", Amount: models.MoneyFromFloat(250)}
	if err := conn.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	alloc := models.PaymentAllocation{PaymentID: payment.ID, InvoiceID: &inv.ID, Amount: models.MoneyFromFloat(250)}
	if err := conn.Create(&alloc).Error; err != nil {
		t.Fatalf("seed allocation: %v", err)
	}

	w = httptest.NewRecorder()
	h.PaymentHistory(w, httptest.NewRequest(http.MethodGet, "/invoice/payment-history?invoiceid=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &allocations); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(allocations) != 1 || allocations[0].Amount.StringFixed(2) != "250.00" {
		t.Fatalf("unexpected history: %+v", allocations)
	}

	w = httptest.NewRecorder()
	h.PaymentHistory(w, httptest.NewRequest(http.MethodGet, "/invoice/payment-history?invoiceid=9", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
