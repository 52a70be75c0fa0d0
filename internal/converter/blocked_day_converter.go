package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

// BlockedDayToResponse converts a BlockedDay entity to BlockedDayResponse DTO
func BlockedDayToResponse(blockedDay *entity.BlockedDay) *dto.BlockedDayResponse {
	if blockedDay == nil {
		return nil
	}
	return &dto.BlockedDayResponse{
		ID:             blockedDay.ID,
		ProfessionalID: blockedDay.ProfessionalID,
		StartDate:      blockedDay.StartDate.Format(entity.DateLayout),
		EndDate:        blockedDay.EndDate.Format(entity.DateLayout),
		Reason:         blockedDay.Reason,
		CreatedAt:      blockedDay.CreatedAt,
	}
}

func BlockedDaysToResponses(blockedDays []entity.BlockedDay) []dto.BlockedDayResponse {
	responses := make([]dto.BlockedDayResponse, len(blockedDays))
	for i := range blockedDays {
		responses[i] = *BlockedDayToResponse(&blockedDays[i])
	}
	return responses
}

func HolidayToResponse(holiday *entity.Holiday) *dto.HolidayResponse {
	if holiday == nil {
		return nil
	}
	return &dto.HolidayResponse{
		ID:        holiday.ID,
		Date:      holiday.Date.Format(entity.DateLayout),
		Name:      holiday.Name,
		Type:      holiday.Type,
		CreatedAt: holiday.CreatedAt,
	}
}

func HolidaysToResponses(holidays []entity.Holiday) []dto.HolidayResponse {
	responses := make([]dto.HolidayResponse, len(holidays))
	for i := range holidays {
		responses[i] = *HolidayToResponse(&holidays[i])
	}
	return responses
}
