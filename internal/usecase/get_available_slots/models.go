package get_available_slots

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TherapistID     *int64    // ID терапевта; nil = любой терапевт, оказывающий услугу
	ServiceOptionID int64     // ID варианта услуги (определяет длительность)
	Date            time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов.
// Пустой список слотов — нормальный результат ("на эту дату всё занято"),
// а не ошибка.
type Response struct {
	Date            time.Time
	TherapistID     *int64
	ServiceOptionID int64
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Remaining       int              // Количество свободных терапевтов
	Total           int              // Общее количество подходящих терапевтов
}

// Config параметры генерации слотов
type Config struct {
	// GranularityMinutes шаг генерации кандидатов; 0 = шаг равен длительности услуги
	GranularityMinutes int
	// MinBookingNoticeMinutes минимальное время до начала слота при бронировании на сегодня
	MinBookingNoticeMinutes int
	// AdvanceBookingDays максимальный горизонт бронирования; 0 = без ограничений
	AdvanceBookingDays int
	// Location часовой пояс клиники, в котором трактуются все даты и времена
	Location *time.Location
}
