package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConversationTypeDirect = "direct"
	ConversationTypeGroup  = "group"
)

// Conversation is a chat thread between professionals of one organization
type Conversation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Type           string     `gorm:"type:varchar(16);not null" json:"type"`
	Name           string     `gorm:"type:varchar(255)" json:"name,omitempty"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Members []ConversationMember `gorm:"foreignKey:ConversationID" json:"members,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasMember reports whether the professional belongs to the conversation
func (c *Conversation) HasMember(professionalID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.ProfessionalID == professionalID {
			return true
		}
	}
	return false
}

// MemberIDs returns the professional ids of every member
func (c *Conversation) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Members))
	for _, m := range c.Members {
		ids = append(ids, m.ProfessionalID)
	}
	return ids
}

type ConversationMember struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;primaryKey" json:"professional_id"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	Professional *Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (ConversationMember) TableName() string {
	return "conversation_members"
}
