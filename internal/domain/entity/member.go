package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member roles
const (
	MemberRoleOwner  = "owner"
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

// Member and professional statuses
const (
	StatusActive   = "active"
	StatusInvited  = "invited"
	StatusInactive = "inactive"
)

// Member links an authenticated user to an organization
type Member struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID          *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Email           string     `gorm:"type:varchar(255);not null" json:"email"`
	Role            string     `gorm:"type:varchar(32);not null" json:"role"`
	Status          string     `gorm:"type:varchar(32);not null" json:"status"`
	InviteTokenHash *string    `gorm:"type:varchar(255)" json:"-"`
	InvitedAt       *time.Time `json:"invited_at,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// IsAdmin reports whether the member may manage the organization
func (m *Member) IsAdmin() bool {
	return m.Role == MemberRoleOwner || m.Role == MemberRoleAdmin
}

func (m *Member) IsOwner() bool {
	return m.Role == MemberRoleOwner
}
