package models

import "time"

// ClientInformation holds the billing contact for an external client. ClientID
// is the id services, invoices and payments reference (as text on their side,
// a historical schema quirk kept for column compatibility).
type ClientInformation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClientID       int       `gorm:"not null;index" json:"clientId"`
	Name           string    `gorm:"size:256;not null" json:"name"`
	Email          string    `gorm:"size:256;not null" json:"email"`
	ClerkID        string    `gorm:"size:256;not null;column:clerkid;index" json:"clerkid"`
	Phone          string    `gorm:"size:256" json:"phone,omitempty"`
	Address        string    `gorm:"size:256" json:"address,omitempty"`
	CompanyName    string    `gorm:"size:256" json:"companyName,omitempty"`
	CompanyAddress string    `gorm:"size:256" json:"companyAddress,omitempty"`
	VATNumber      string    `gorm:"size:256" json:"vatNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (ClientInformation) TableName() string { return "client_information" }
