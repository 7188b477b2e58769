package create_booking

import "errors"

var (
	// ErrServiceOptionNotFound возвращается, когда вариант услуги не найден
	ErrServiceOptionNotFound = errors.New("create_booking: service option not found")

	// ErrServiceOptionInactive возвращается, когда вариант услуги отключён
	ErrServiceOptionInactive = errors.New("create_booking: service option is inactive")

	// ErrTherapistNotOffering возвращается, когда терапевт не оказывает указанную услугу
	ErrTherapistNotOffering = errors.New("create_booking: therapist does not offer this service")

	// ErrNoTherapistAvailable возвращается, когда ни один терапевт не свободен
	// на запрошенный интервал (при автоподборе терапевта)
	ErrNoTherapistAvailable = errors.New("create_booking: no therapist available for the requested interval")

	// ErrSlotConflict возвращается, когда запрошенный интервал недоступен:
	// пересекается с бронированием, попадает в time-off или вне рабочих часов.
	// Клиент должен запросить свежие слоты и повторить выбор.
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrPaymentDeclined возвращается, когда карта отклонена; бронирование не создаётся
	ErrPaymentDeclined = errors.New("create_booking: payment declined")

	// ErrPaymentFailed возвращается при прочих сбоях платёжного сервиса; бронирование не создаётся
	ErrPaymentFailed = errors.New("create_booking: payment failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
