package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wall-clock layouts used by the agenda. Appointment times carry no time zone:
// they are parsed and formatted in UTC so the stored value is exactly what the
// user typed.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "agendado"
	AppointmentConfirmed  AppointmentStatus = "confirmado"
	AppointmentWaiting    AppointmentStatus = "aguardando"
	AppointmentInProgress AppointmentStatus = "em_atendimento"
	AppointmentFinished   AppointmentStatus = "finalizado"
	AppointmentNoShow     AppointmentStatus = "faltou"
	AppointmentCancelled  AppointmentStatus = "cancelado"
)

// AppointmentStatuses lists every accepted status value
var AppointmentStatuses = []AppointmentStatus{
	AppointmentScheduled,
	AppointmentConfirmed,
	AppointmentWaiting,
	AppointmentInProgress,
	AppointmentFinished,
	AppointmentNoShow,
	AppointmentCancelled,
}

// InactiveAppointmentStatuses never count as a conflict for blocked days
var InactiveAppointmentStatuses = []AppointmentStatus{AppointmentCancelled, AppointmentNoShow}

func (s AppointmentStatus) IsValid() bool {
	for _, v := range AppointmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsActive reports whether the appointment still occupies the professional
func (s AppointmentStatus) IsActive() bool {
	for _, v := range InactiveAppointmentStatuses {
		if s == v {
			return false
		}
	}
	return true
}

// Appointment is a patient session with a professional
type Appointment struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID           `gorm:"type:uuid;not null;index" json:"organization_id"`
	PatientID      uuid.UUID           `gorm:"type:uuid;not null" json:"patient_id"`
	ProfessionalID *uuid.UUID          `gorm:"type:uuid" json:"professional_id,omitempty"`
	StartTime      time.Time           `gorm:"type:timestamp without time zone;not null" json:"start_time"`
	EndTime        time.Time           `gorm:"type:timestamp without time zone;not null" json:"end_time"`
	Duration       int                 `gorm:"not null" json:"duration"`
	Status         AppointmentStatus   `gorm:"type:varchar(32);not null" json:"status"`
	Price          decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price"`
	Notes          string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      *Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional *Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AppointmentScheduled
	}
	return nil
}

// Schedule sets start and end from a wall-clock date, time and duration in minutes
func (a *Appointment) Schedule(date, clock string, duration int) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", duration)
	}
	start, err := ParseWallClock(date, clock)
	if err != nil {
		return err
	}
	a.StartTime = start
	a.Duration = duration
	a.EndTime = start.Add(time.Duration(duration) * time.Minute)
	return nil
}

// Date returns the wall-clock day of the appointment
func (a *Appointment) Date() string {
	return a.StartTime.Format(DateLayout)
}

// Clock returns the wall-clock start time of the appointment
func (a *Appointment) Clock() string {
	return a.StartTime.Format(ClockLayout)
}

func (a *Appointment) EndClock() string {
	return a.EndTime.Format(ClockLayout)
}

// ParseWallClock combines a YYYY-MM-DD date and HH:MM time without any zone conversion
func ParseWallClock(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD calendar day
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	ProfessionalID *uuid.UUID
	PatientID      *uuid.UUID
	Status         AppointmentStatus
	StartDate      string // Format: YYYY-MM-DD, inclusive
	EndDate        string // Format: YYYY-MM-DD, inclusive
}
