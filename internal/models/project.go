package models

import "time"

// Project is the collaboration unit everything else hangs off. CreatedBy is
// the external identity-provider user id (clerk id), not a local FK.
type Project struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:256;index:project_name_idx" json:"name"`
	CreatedBy string          `gorm:"size:256" json:"createdBy"`
	Members   []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ProjectMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index:project_member_project_user_idx" json:"projectId"`
	UserID      string    `gorm:"size:256;not null;index:project_member_project_user_idx" json:"userId"`
	HasJoined   bool      `gorm:"default:false" json:"hasJoined"`
	ProjectRole string    `gorm:"size:256;not null" json:"projectRole"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoleOwner is assigned to the creating member on project creation.
const RoleOwner = "owner"
