package repository

import (
	"context"
	"errors"
	"time"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type conversationRepository struct{}

func NewConversationRepository() domainRepo.ConversationRepository {
	return &conversationRepository{}
}

func (r *conversationRepository) Create(ctx context.Context, db *gorm.DB, conversation *entity.Conversation) error {
	return db.WithContext(ctx).Omit("Members.Professional").Create(conversation).Error
}

func (r *conversationRepository) FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := db.WithContext(ctx).
		Preload("Members").Preload("Members.Professional").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByMember(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID) ([]entity.Conversation, error) {
	var conversations []entity.Conversation
	err := db.WithContext(ctx).
		Joins("JOIN conversation_members cm ON cm.conversation_id = conversations.id").
		Where("conversations.organization_id = ? AND cm.professional_id = ?", organizationID, professionalID).
		Preload("Members").Preload("Members.Professional").
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// FindDirect returns the direct conversation whose only members are a and b
func (r *conversationRepository) FindDirect(ctx context.Context, db *gorm.DB, organizationID, a, b uuid.UUID) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := db.WithContext(ctx).
		Where("organization_id = ? AND type = ?", organizationID, entity.ConversationTypeDirect).
		Where("EXISTS (SELECT 1 FROM conversation_members cm WHERE cm.conversation_id = conversations.id AND cm.professional_id = ?)", a).
		Where("EXISTS (SELECT 1 FROM conversation_members cm WHERE cm.conversation_id = conversations.id AND cm.professional_id = ?)", b).
		Where("(SELECT COUNT(*) FROM conversation_members cm WHERE cm.conversation_id = conversations.id) = 2").
		Preload("Members").
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) Touch(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error {
	return db.WithContext(ctx).Model(&entity.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at).Error
}

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, db *gorm.DB, message *entity.Message) error {
	return db.WithContext(ctx).Create(message).Error
}

// FindByConversation returns the latest messages before the cursor in chronological order
func (r *messageRepository) FindByConversation(ctx context.Context, db *gorm.DB, organizationID, conversationID uuid.UUID, limit int, before *time.Time) ([]entity.Message, error) {
	var messages []entity.Message
	query := db.WithContext(ctx).
		Where("organization_id = ? AND conversation_id = ?", organizationID, conversationID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, db *gorm.DB, organizationID, conversationID, readerID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Message{}).
		Where("organization_id = ? AND conversation_id = ?", organizationID, conversationID).
		Where("sender_id <> ? AND read = ?", readerID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}
