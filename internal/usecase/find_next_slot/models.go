package find_next_slot

import (
	"time"

	"github.com/fixwise/booking-service/internal/domain"
)

// Request модель запроса поиска ближайшего свободного слота
type Request struct {
	TechnicianID int64              // ID техника
	ServiceType  domain.ServiceType // Тип услуги (определяет длительность и буфер кандидата)
	After        time.Time          // Искать слоты строго после этого момента (zero = сейчас)
}

// Response модель ответа: первый свободный слот в пределах горизонта
type Response struct {
	Start           time.Time
	End             time.Time
	TechnicianID    int64
	DurationMinutes int
	DaysAhead       int // На сколько дней вперёд от начала поиска найден слот
}
