package models

import "time"

// Invoice statuses are free text in the store; "paid" is the only value the
// API acts on (paid invoices cannot be deleted).
const StatusPaid = "paid"

type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ProjectID     uint          `gorm:"not null;index:invoice_project_client_idx" json:"projectId"`
	ClientID      string        `gorm:"size:256;not null;index:invoice_project_client_idx" json:"clientId"`
	Total         Money         `json:"total"`
	InvoiceStatus string        `gorm:"size:256;not null" json:"invoiceStatus"`
	PayedAmount   Money         `json:"payedAmount"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type InvoiceItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	InvoiceID        uint      `gorm:"not null;index" json:"invoiceId"`
	InvoiceElementID uint      `gorm:"not null;column:invoice_elementsid" json:"invoiceElementsId"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	CreatedAt        time.Time `json:"createdAt"`
}
