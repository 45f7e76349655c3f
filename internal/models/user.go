package models

import "time"

// UserInformation mirrors the identity provider's user record so other rows
// can be joined to a display name without calling out.
type UserInformation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Email     string    `gorm:"size:256;not null" json:"email"`
	ClerkID   string    `gorm:"size:256;not null;column:clerkid;index" json:"clerkid"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserInformation) TableName() string { return "user_information" }
