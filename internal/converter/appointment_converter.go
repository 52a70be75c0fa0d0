package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

const naiveTimestampLayout = "2006-01-02T15:04:05"

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Times are rendered without offset since they are stored as wall clock.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		ProfessionalID: appointment.ProfessionalID,
		Date:           appointment.Date(),
		Time:           appointment.Clock(),
		EndTime:        appointment.EndClock(),
		StartAt:        appointment.StartTime.Format(naiveTimestampLayout),
		EndAt:          appointment.EndTime.Format(naiveTimestampLayout),
		Duration:       appointment.Duration,
		Status:         string(appointment.Status),
		Notes:          appointment.Notes,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}

	if appointment.Price.Valid {
		price := appointment.Price.Decimal
		response.Price = &price
	}

	// Include names if preloaded
	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Professional != nil {
		response.ProfessionalName = appointment.Professional.Name
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
