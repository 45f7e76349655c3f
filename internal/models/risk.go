package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskAssessment is written by an out-of-band scoring job; the API only
// migrates the table.
type RiskAssessment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ClientID     int             `gorm:"not null" json:"clientId"`
	InvoiceID    *uint           `json:"invoiceId"`
	Score        decimal.Decimal `gorm:"type:numeric(5,2)" json:"score"`
	CalculatedAt time.Time       `json:"calculatedAt"`
}
