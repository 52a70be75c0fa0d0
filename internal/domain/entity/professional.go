package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAppointmentDuration is the session length in minutes used when a
// professional has not configured one.
const DefaultAppointmentDuration = 50

const (
	RoleTypeClinical       = "clinical"
	RoleTypeAdministrative = "administrative"
)

// Professional is a clinician or staff member of an organization
type Professional struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID              *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name                string     `gorm:"type:varchar(255);not null" json:"name"`
	Email               string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	RoleType            string     `gorm:"type:varchar(32);not null" json:"role_type"`
	Color               string     `gorm:"type:varchar(16)" json:"color,omitempty"`
	AppointmentDuration int        `gorm:"not null" json:"appointment_duration"`
	Status              string     `gorm:"type:varchar(32);not null" json:"status"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Professional) TableName() string {
	return "professionals"
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.AppointmentDuration <= 0 {
		p.AppointmentDuration = DefaultAppointmentDuration
	}
	if p.RoleType == "" {
		p.RoleType = RoleTypeClinical
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return nil
}

func (p *Professional) IsClinical() bool {
	return p.RoleType == RoleTypeClinical
}
