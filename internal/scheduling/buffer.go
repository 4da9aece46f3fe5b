package scheduling

import "github.com/fixwise/booking-service/internal/domain"

// BufferPolicy буферное время вокруг бронирования услуги
// Before — подготовка/дорога до начала работ, After — уборка/дорога после.
// Буферы намеренно асимметричны: например, у сантехники уборка дольше подготовки
type BufferPolicy struct {
	BeforeMinutes int
	AfterMinutes  int
}

// DefaultBuffer буфер для неизвестных типов услуг
var DefaultBuffer = BufferPolicy{BeforeMinutes: 15, AfterMinutes: 15}

// bufferTable статическая таблица буферов по типам услуг
var bufferTable = map[domain.ServiceType]BufferPolicy{
	domain.ServicePlumbing:   {BeforeMinutes: 15, AfterMinutes: 30},
	domain.ServiceElectrical: {BeforeMinutes: 10, AfterMinutes: 15},
	domain.ServiceHVAC:       {BeforeMinutes: 30, AfterMinutes: 30},
	domain.ServiceInspection: {BeforeMinutes: 5, AfterMinutes: 10},
}

// BufferFor возвращает буферную политику для типа услуги
// Неизвестные типы получают дефолтный буфер, а не ошибку
func BufferFor(serviceType domain.ServiceType) BufferPolicy {
	if policy, ok := bufferTable[serviceType]; ok {
		return policy
	}
	return DefaultBuffer
}

// durationTable длительность работ по типам услуг в минутах
var durationTable = map[domain.ServiceType]int{
	domain.ServicePlumbing:   60,
	domain.ServiceElectrical: 60,
	domain.ServiceHVAC:       90,
	domain.ServiceInspection: 30,
}

// DurationFor возвращает длительность услуги в минутах
// Неизвестные типы получают длительность одного слота
func DurationFor(serviceType domain.ServiceType) int {
	if d, ok := durationTable[serviceType]; ok {
		return d
	}
	return domain.DefaultSlotMinutes
}
