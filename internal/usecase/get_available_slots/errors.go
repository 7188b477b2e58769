package get_available_slots

import "errors"

var (
	// ErrServiceOptionNotFound возвращается, когда вариант услуги не найден
	ErrServiceOptionNotFound = errors.New("get_available_slots: service option not found")

	// ErrServiceOptionInactive возвращается, когда вариант услуги отключён
	ErrServiceOptionInactive = errors.New("get_available_slots: service option is inactive")

	// ErrTherapistNotOffering возвращается, когда терапевт не оказывает указанную услугу
	ErrTherapistNotOffering = errors.New("get_available_slots: therapist does not offer this service")

	// ErrInvalidDate возвращается при некорректной дате (например, в прошлом)
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
