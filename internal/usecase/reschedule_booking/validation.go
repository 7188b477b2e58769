package reschedule_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if err := req.NewStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStart: %w", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что новая дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет минимальное время до начала перенесённого сеанса
func validateNotice(req *Request, now time.Time, noticeMinutes int) error {
	startMinutes, err := req.NewStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid newStart: %w", ErrInvalidInput, err)
	}

	startInstant := time.Date(req.NewDate.Year(), req.NewDate.Month(), req.NewDate.Day(), 0, 0, 0, 0, now.Location()).
		Add(time.Duration(startMinutes) * time.Minute)

	if startInstant.Before(now.Add(time.Duration(noticeMinutes) * time.Minute)) {
		return fmt.Errorf("%w: bookings require at least %d minutes notice", ErrTooLateToBook, noticeMinutes)
	}

	return nil
}
