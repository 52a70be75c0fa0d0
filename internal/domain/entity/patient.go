package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient holds the clinical registry data of a patient
type Patient struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Email           string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone           string     `gorm:"type:varchar(50)" json:"phone,omitempty"`
	BirthDate       *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Temperature     string     `gorm:"type:varchar(32)" json:"temperature,omitempty"`
	Temperament     string     `gorm:"type:varchar(64)" json:"temperament,omitempty"`
	Motivation      string     `gorm:"type:text" json:"motivation,omitempty"`
	ConscienceLevel string     `gorm:"type:varchar(64)" json:"conscience_level,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
