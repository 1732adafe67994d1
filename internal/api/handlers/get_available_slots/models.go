package get_available_slots

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
	getAvailableSlots "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string                         `json:"date"`
	Hours        *models.EffectiveHoursResponse `json:"hours"`
	DesignerName *string                        `json:"designerName,omitempty"`
	StepMinutes  int                            `json:"stepMinutes"`
	Slots        []AvailableSlot                `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string  `json:"startTime"`
	Available bool    `json:"available"`
	TakenBy   []int64 `json:"takenBy,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
			TakenBy:   slot.TakenBy,
		}
	}

	hours := models.FromEffectiveHours(resp.Date, resp.Hours)
	return &AvailableSlotsResponse{
		Date:         hours.Date,
		Hours:        hours,
		DesignerName: resp.DesignerName,
		StepMinutes:  resp.StepMinutes,
		Slots:        slots,
	}
}
