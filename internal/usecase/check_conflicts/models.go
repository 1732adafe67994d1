package check_conflicts

import (
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Request кандидат на запись для проверки
type Request struct {
	DesignerName         string
	Date                 time.Time
	Time                 types.TimeString
	DurationMinutes      int
	ExcludeReservationID *int64 // Редактируемое бронирование; с собой не конфликтует
}

// Response найденные конфликты
type Response struct {
	Conflicts []domain.ConflictRecord
	HasErrors bool // Есть конфликты с severity=error
}
