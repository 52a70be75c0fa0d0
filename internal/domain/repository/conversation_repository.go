package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, db *gorm.DB, conversation *entity.Conversation) error
	FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Conversation, error)
	FindByMember(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID) ([]entity.Conversation, error)
	FindDirect(ctx context.Context, db *gorm.DB, organizationID, a, b uuid.UUID) (*entity.Conversation, error)
	Touch(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, db *gorm.DB, message *entity.Message) error
	FindByConversation(ctx context.Context, db *gorm.DB, organizationID, conversationID uuid.UUID, limit int, before *time.Time) ([]entity.Message, error)
	MarkRead(ctx context.Context, db *gorm.DB, organizationID, conversationID, readerID uuid.UUID) (int64, error)
}
