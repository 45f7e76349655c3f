package models

import "time"

// InvoiceElement is a billable line-item template ("service"): hourly or
// fixed-price work attached to a project for a given client.
type InvoiceElement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index:invoice_element_project_name_idx" json:"projectId"`
	Name      string    `gorm:"size:256;not null;index:invoice_element_project_name_idx" json:"name"`
	ClientID  string    `gorm:"size:256;not null;index" json:"clientId"`
	IsHourly  bool      `gorm:"not null" json:"isHourly"`
	Price     Money     `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
