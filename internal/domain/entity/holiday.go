package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HolidayTypeNational = "national"
	HolidayTypeLocal    = "local"
)

// Holiday is an organization's copy of a calendar holiday or a custom one
type Holiday struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Type           string    `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Type == "" {
		h.Type = HolidayTypeNational
	}
	return nil
}

// HolidayCalendarEntry is a row of the global seed calendar copied into new organizations
type HolidayCalendarEntry struct {
	Date time.Time `gorm:"type:date;primaryKey" json:"date"`
	Name string    `gorm:"type:varchar(255);not null" json:"name"`
	Type string    `gorm:"type:varchar(16);primaryKey" json:"type"`
}

func (HolidayCalendarEntry) TableName() string {
	return "holiday_calendar"
}
