package change_reservation_status

import "github.com/devbada/sisters-salon-reservation-sub001/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	ReservationID  int64
	To             string  // Целевой статус
	Actor          string  // Администратор (X-Admin-ID)
	Reason         *string // Обязательна для cancelled и no_show
	ExpectedStatus *string // Статус, который видел клиент; при расхождении - ErrStatusConflict
	Force          bool    // Восстановить отмененную запись несмотря на конфликты
}

// Response модель ответа со сменой статуса
type Response struct {
	Reservation domain.Reservation
	Record      domain.StatusHistory       // Добавленная запись истории
	AllowedNext []domain.ReservationStatus // Допустимые следующие статусы
	Conflicts   []domain.ConflictRecord    // Конфликты при восстановлении с флагом Force
}
