package find_next_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_next_slot: invalid input data")

	// ErrNoSlotAvailable возвращается, когда в пределах горизонта поиска нет свободных слотов
	ErrNoSlotAvailable = errors.New("find_next_slot: no slot available within search horizon")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_next_slot: internal error")
)
