package get_calendar_conflicts

import (
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// Request период календаря (границы включительно)
type Request struct {
	From time.Time
	To   time.Time
}

// Response индекс конфликтов календаря
type Response struct {
	From      time.Time
	To        time.Time
	Index     map[string][]domain.ConflictRecord // ключ - дата YYYY-MM-DD
	Conflicts []domain.ConflictRecord            // плоский список по датам
	Cached    bool                               // индекс взят из кэша
}
