package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент сервиса уведомлений.
// Все уведомления отправляются по принципу fire-and-forget: сервис
// не ждёт доставки и не считает сбой уведомления ошибкой бронирования.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingEvent отправляет событие бронирования
func (c *Client) SendBookingEvent(ctx context.Context, event *BookingEvent) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// SendBookingEventAsync отправляет событие в фоне, логируя сбой вместо возврата ошибки.
// Используется из write-path бронирования, который не должен блокироваться доставкой.
func (c *Client) SendBookingEventAsync(event *BookingEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.SendBookingEvent(ctx, event); err != nil {
			c.log.Warn("SendBookingEventAsync: delivery failed for booking=%s event=%s: %v",
				event.BookingReference, event.Event, err)
			return
		}
		c.log.Info("SendBookingEventAsync: delivered event=%s booking=%s", event.Event, event.BookingReference)
	}()
}
