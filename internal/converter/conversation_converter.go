package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/event"
)

func ConversationToResponse(conversation *entity.Conversation) *dto.ConversationResponse {
	if conversation == nil {
		return nil
	}
	members := make([]dto.ConversationMemberResponse, len(conversation.Members))
	for i, m := range conversation.Members {
		members[i] = dto.ConversationMemberResponse{ProfessionalID: m.ProfessionalID}
		if m.Professional != nil {
			members[i].UserID = m.Professional.UserID
			members[i].Name = m.Professional.Name
		}
	}
	return &dto.ConversationResponse{
		ID:        conversation.ID,
		Type:      conversation.Type,
		Name:      conversation.Name,
		CreatedBy: conversation.CreatedBy,
		Members:   members,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}
}

func ConversationsToResponses(conversations []entity.Conversation) []dto.ConversationResponse {
	responses := make([]dto.ConversationResponse, len(conversations))
	for i := range conversations {
		responses[i] = *ConversationToResponse(&conversations[i])
	}
	return responses
}

func MessageToResponse(message *entity.Message, tempID string) *dto.MessageResponse {
	if message == nil {
		return nil
	}
	return &dto.MessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Content:        message.Content,
		Read:           message.Read,
		CreatedAt:      message.CreatedAt,
		TempID:         tempID,
	}
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *MessageToResponse(&messages[i], "")
	}
	return responses
}

// MessageToPayload builds the receive_message body published to socket rooms
func MessageToPayload(message *entity.Message, tempID string) event.MessagePayload {
	return event.MessagePayload{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Content:        message.Content,
		Read:           message.Read,
		CreatedAt:      message.CreatedAt,
		TempID:         tempID,
	}
}
