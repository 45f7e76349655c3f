package models

import "time"

// Payment is money received from a client. It may be split across invoices via
// allocations; an allocation without an invoice id is unapplied credit.
type Payment struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	ClientID    string              `gorm:"size:256;not null;index" json:"clientId"`
	Amount      Money               `json:"amount"`
	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentID" json:"allocations,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type PaymentAllocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"not null;index" json:"paymentId"`
	InvoiceID *uint     `gorm:"index" json:"invoiceId"`
	Amount    Money     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}
