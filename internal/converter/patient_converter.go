package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}
	response := &dto.PatientResponse{
		ID:              patient.ID,
		Name:            patient.Name,
		Email:           patient.Email,
		Phone:           patient.Phone,
		Temperature:     patient.Temperature,
		Temperament:     patient.Temperament,
		Motivation:      patient.Motivation,
		ConscienceLevel: patient.ConscienceLevel,
		Notes:           patient.Notes,
		CreatedAt:       patient.CreatedAt,
		UpdatedAt:       patient.UpdatedAt,
	}
	if patient.BirthDate != nil {
		response.BirthDate = patient.BirthDate.Format(entity.DateLayout)
	}
	return response
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
