package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockedDay marks an inclusive range of days a professional is unavailable
type BlockedDay struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null" json:"professional_id"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	Reason         string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BlockedDay) TableName() string {
	return "blocked_days"
}

func (b *BlockedDay) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Covers reports whether the wall-clock day of t falls inside the range
func (b *BlockedDay) Covers(t time.Time) bool {
	day := t.Format(DateLayout)
	return day >= b.StartDate.Format(DateLayout) && day <= b.EndDate.Format(DateLayout)
}

// BlockedDayFilter selects blocked days overlapping [StartDate, EndDate]
type BlockedDayFilter struct {
	ProfessionalID *uuid.UUID
	StartDate      string
	EndDate        string
}
