package create_reservation

import (
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName    string           // Имя клиента
	CustomerPhone   *string          // Телефон клиента (опционально)
	DesignerName    string           // Дизайнер
	Date            time.Time        // Дата (без времени)
	Time            types.TimeString // Время начала, например "10:00"
	DurationMinutes int              // Длительность; 0 - по умолчанию из конфигурации
	Service         string           // Услуга
	Notes           *string          // Заметки (опционально)
	Force           bool             // Сохранить несмотря на конфликты
	Actor           string           // Администратор (X-Admin-ID)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation domain.Reservation      // Созданное бронирование (статус pending)
	Conflicts   []domain.ConflictRecord // Конфликты, сохраненные с флагом Force
}
