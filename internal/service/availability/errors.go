package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило доступности не найдено
	ErrRuleNotFound = errors.New("availability rule not found")

	// ErrInvalidRule возвращается, когда правило нарушает структурные
	// требования: неизвестный тип, оба или ни одного из dayOfWeek и
	// specificDate, конец не позже начала
	ErrInvalidRule = errors.New("invalid availability rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
