package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/tenancy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNoProfessionalLink   = errors.New("user has no professional profile in this organization")
	ErrInvalidConversation  = errors.New("a direct conversation needs exactly one other professional")
	ErrEmptyMessage         = errors.New("message content is required")
)

type ConversationUsecase interface {
	ListConversations(ctx context.Context, scope tenancy.Scope) (*dto.ListResponse[dto.ConversationResponse], error)
	CreateConversation(ctx context.Context, scope tenancy.Scope, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	ListMessages(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID, query *dto.MessageQuery) (*dto.ListResponse[dto.MessageResponse], error)
	// SendMessage stores the message and queues receive_message for every member
	// room in the same transaction.
	SendMessage(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkRead(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID) (*dto.MarkReadResponse, error)
}

type conversationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	professionalRepo repository.ProfessionalRepository
	outbox           service.EventOutbox
}

func NewConversationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	professionalRepo repository.ProfessionalRepository,
	outbox service.EventOutbox,
) ConversationUsecase {
	return &conversationUsecase{
		db:               db,
		log:              log,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		professionalRepo: professionalRepo,
		outbox:           outbox,
	}
}

func (u *conversationUsecase) ListConversations(ctx context.Context, scope tenancy.Scope) (*dto.ListResponse[dto.ConversationResponse], error) {
	self, err := u.currentProfessional(ctx, u.db, scope)
	if err != nil {
		return nil, err
	}

	conversations, err := u.conversationRepo.FindByMember(ctx, u.db, scope.OrganizationID, self.ID)
	if err != nil {
		u.log.Warnf("Failed to find conversations: %+v", err)
		return nil, err
	}
	return dto.NewListResponse(converter.ConversationsToResponses(conversations)), nil
}

func (u *conversationUsecase) CreateConversation(ctx context.Context, scope tenancy.Scope, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	self, err := u.currentProfessional(ctx, tx, scope)
	if err != nil {
		return nil, err
	}

	memberIDs := []uuid.UUID{self.ID}
	seen := map[uuid.UUID]bool{self.ID: true}
	for _, raw := range req.ProfessionalIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidID
		}
		if !seen[id] {
			seen[id] = true
			memberIDs = append(memberIDs, id)
		}
	}

	if req.Type == entity.ConversationTypeDirect && len(memberIDs) != 2 {
		return nil, ErrInvalidConversation
	}

	professionals, err := u.professionalRepo.FindByIDs(ctx, tx, scope.OrganizationID, memberIDs)
	if err != nil {
		u.log.Warnf("Failed to find professionals: %+v", err)
		return nil, err
	}
	if len(professionals) != len(memberIDs) {
		return nil, ErrProfessionalNotFound
	}

	if req.Type == entity.ConversationTypeDirect {
		existing, err := u.conversationRepo.FindDirect(ctx, tx, scope.OrganizationID, memberIDs[0], memberIDs[1])
		if err != nil {
			u.log.Warnf("Failed to find direct conversation: %+v", err)
			return nil, err
		}
		if existing != nil {
			return u.loadConversation(ctx, tx, scope.OrganizationID, existing.ID)
		}
	}

	conversation := &entity.Conversation{
		OrganizationID: scope.OrganizationID,
		Type:           req.Type,
		CreatedBy:      &self.ID,
	}
	if req.Type == entity.ConversationTypeGroup {
		conversation.Name = req.Name
	}
	for _, id := range memberIDs {
		conversation.Members = append(conversation.Members, entity.ConversationMember{ProfessionalID: id})
	}

	if err := u.conversationRepo.Create(ctx, tx, conversation); err != nil {
		u.log.Warnf("Failed to create conversation: %+v", err)
		return nil, err
	}

	response, err := u.loadConversation(ctx, tx, scope.OrganizationID, conversation.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return response, nil
}

func (u *conversationUsecase) ListMessages(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID, query *dto.MessageQuery) (*dto.ListResponse[dto.MessageResponse], error) {
	if _, _, err := u.memberConversation(ctx, u.db, scope, conversationID); err != nil {
		return nil, err
	}

	limit := defaultMessageLimit
	var before *time.Time
	if query != nil {
		if query.Limit > 0 {
			limit = query.Limit
		}
		before = query.Before
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	messages, err := u.messageRepo.FindByConversation(ctx, u.db, scope.OrganizationID, conversationID, limit, before)
	if err != nil {
		u.log.Warnf("Failed to find messages: %+v", err)
		return nil, err
	}
	return dto.NewListResponse(converter.MessagesToResponses(messages)), nil
}

func (u *conversationUsecase) SendMessage(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.Content == "" {
		return nil, ErrEmptyMessage
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	conversation, self, err := u.memberConversation(ctx, tx, scope, conversationID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		OrganizationID: scope.OrganizationID,
		ConversationID: conversation.ID,
		SenderID:       self.ID,
		Content:        req.Content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.messageRepo.Create(ctx, tx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	if err := u.conversationRepo.Touch(ctx, tx, conversation.ID, message.CreatedAt); err != nil {
		u.log.Warnf("Failed to touch conversation: %+v", err)
		return nil, err
	}

	payload := converter.MessageToPayload(message, req.TempID)
	if err := u.outbox.Enqueue(ctx, tx, scope.OrganizationID, event.ReceiveMessage, memberRooms(conversation), payload); err != nil {
		u.log.Warnf("Failed to enqueue message event: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.outbox.Notify()

	return converter.MessageToResponse(message, req.TempID), nil
}

func (u *conversationUsecase) MarkRead(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID) (*dto.MarkReadResponse, error) {
	_, self, err := u.memberConversation(ctx, u.db, scope, conversationID)
	if err != nil {
		return nil, err
	}

	updated, err := u.messageRepo.MarkRead(ctx, u.db, scope.OrganizationID, conversationID, self.ID)
	if err != nil {
		u.log.Warnf("Failed to mark messages as read: %+v", err)
		return nil, err
	}
	return &dto.MarkReadResponse{Updated: updated}, nil
}

func (u *conversationUsecase) currentProfessional(ctx context.Context, db *gorm.DB, scope tenancy.Scope) (*entity.Professional, error) {
	professional, err := u.professionalRepo.FindByUserID(ctx, db, scope.OrganizationID, scope.UserID)
	if err != nil {
		u.log.Warnf("Failed to find professional by user: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrNoProfessionalLink
	}
	return professional, nil
}

// memberConversation loads the conversation and hides it from non-members
func (u *conversationUsecase) memberConversation(ctx context.Context, db *gorm.DB, scope tenancy.Scope, conversationID uuid.UUID) (*entity.Conversation, *entity.Professional, error) {
	self, err := u.currentProfessional(ctx, db, scope)
	if err != nil {
		return nil, nil, err
	}

	conversation, err := u.conversationRepo.FindByID(ctx, db, scope.OrganizationID, conversationID)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, nil, err
	}
	if conversation == nil || !conversation.HasMember(self.ID) {
		return nil, nil, ErrConversationNotFound
	}
	return conversation, self, nil
}

func (u *conversationUsecase) loadConversation(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*dto.ConversationResponse, error) {
	conversation, err := u.conversationRepo.FindByID(ctx, db, organizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	return converter.ConversationToResponse(conversation), nil
}

// memberRooms lists the socket rooms of every member with a linked user, sender included
func memberRooms(conversation *entity.Conversation) []string {
	rooms := make([]string, 0, len(conversation.Members))
	for _, m := range conversation.Members {
		if m.Professional != nil && m.Professional.UserID != nil {
			rooms = append(rooms, event.RoomForUser(*m.Professional.UserID))
		}
	}
	return rooms
}
