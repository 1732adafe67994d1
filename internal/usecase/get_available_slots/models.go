package get_available_slots

import (
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            time.Time // Дата (без времени)
	DesignerName    *string   // Если указан, слоты помечаются занятыми по его бронированиям
	DurationMinutes int       // Длительность услуги для проверки занятости; 0 - по умолчанию
	StepMinutes     int       // Шаг сетки слотов; 0 - из конфигурации
}

// Response модель ответа со списком слотов
type Response struct {
	Date         time.Time             // Дата, на которую запрашивались слоты
	Hours        domain.EffectiveHours // Итоговые часы работы
	DesignerName *string               // Дизайнер из запроса
	StepMinutes  int                   // Фактический шаг сетки
	Slots        []domain.AvailableSlot
}
