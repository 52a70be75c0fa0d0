package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

func ProfessionalToResponse(professional *entity.Professional) *dto.ProfessionalResponse {
	if professional == nil {
		return nil
	}
	return &dto.ProfessionalResponse{
		ID:                  professional.ID,
		UserID:              professional.UserID,
		Name:                professional.Name,
		Email:               professional.Email,
		RoleType:            professional.RoleType,
		Color:               professional.Color,
		AppointmentDuration: professional.AppointmentDuration,
		Status:              professional.Status,
		CreatedAt:           professional.CreatedAt,
		UpdatedAt:           professional.UpdatedAt,
	}
}

func ProfessionalsToResponses(professionals []entity.Professional) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(professionals))
	for i := range professionals {
		responses[i] = *ProfessionalToResponse(&professionals[i])
	}
	return responses
}
