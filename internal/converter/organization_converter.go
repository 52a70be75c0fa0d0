package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

func OrganizationToResponse(org *entity.Organization, role string) *dto.OrganizationResponse {
	if org == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:                 org.ID,
		Name:               org.Name,
		SubscriptionStatus: string(org.SubscriptionStatus),
		Role:               role,
		CreatedAt:          org.CreatedAt,
	}
}

func MemberToResponse(member *entity.Member) *dto.MemberResponse {
	if member == nil {
		return nil
	}
	return &dto.MemberResponse{
		ID:         member.ID,
		UserID:     member.UserID,
		Email:      member.Email,
		Role:       member.Role,
		Status:     member.Status,
		InvitedAt:  member.InvitedAt,
		AcceptedAt: member.AcceptedAt,
		CreatedAt:  member.CreatedAt,
	}
}

func MembersToResponses(members []entity.Member) []dto.MemberResponse {
	responses := make([]dto.MemberResponse, len(members))
	for i := range members {
		responses[i] = *MemberToResponse(&members[i])
	}
	return responses
}
