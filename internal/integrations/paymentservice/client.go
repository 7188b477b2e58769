package paymentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Client клиент платёжного сервиса поверх Stripe.
// Сервис рассматривает подтверждение платежа как непрозрачную предпосылку
// для бронирований с оплатой картой: карта подтверждается до записи брони,
// чтобы не списывать деньги без зарезервированного слота.
type Client struct {
	log Logger
}

// NewClient создает новый экземпляр платёжного клиента.
// Ключ API устанавливается глобально (stripe.Key) при старте сервиса.
func NewClient(apiKey string, log Logger) *Client {
	stripe.Key = apiKey
	return &Client{log: log}
}

// CreatePaymentIntent создает платёжное намерение на указанную сумму.
// amount задаётся в минимальных единицах валюты (центах).
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		c.log.Error("CreatePaymentIntent: amount=%d %s: %v", amount, currency, err)
		return nil, classifyError(err)
	}

	c.log.Info("CreatePaymentIntent: created intent=%s amount=%d %s", intent.ID, amount, currency)
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmPayment подтверждает платёжное намерение указанным платёжным методом
func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID, paymentMethodID string) (*PaymentResult, error) {
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx

	intent, err := paymentintent.Confirm(paymentIntentID, params)
	if err != nil {
		c.log.Warn("ConfirmPayment: intent=%s failed: %v", paymentIntentID, err)
		return nil, classifyError(err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		c.log.Warn("ConfirmPayment: intent=%s unexpected status=%s", paymentIntentID, intent.Status)
		return nil, fmt.Errorf("%w: unexpected intent status %s", ErrPaymentFailed, intent.Status)
	}

	c.log.Info("ConfirmPayment: intent=%s succeeded", paymentIntentID)
	return &PaymentResult{
		Status:          string(intent.Status),
		PaymentIntentID: intent.ID,
		PaymentMethodID: paymentMethodID,
	}, nil
}

// classifyError переводит ошибку Stripe в ошибку клиента,
// различая причины отклонения карты (истёкший срок, CVC, обработка)
func classifyError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	switch stripeErr.Code {
	case stripe.ErrorCodeExpiredCard:
		return fmt.Errorf("%w: %s", ErrCardExpired, stripeErr.Msg)
	case stripe.ErrorCodeIncorrectCVC, stripe.ErrorCodeInvalidCVC:
		return fmt.Errorf("%w: %s", ErrInvalidCVC, stripeErr.Msg)
	case stripe.ErrorCodeProcessingError:
		return fmt.Errorf("%w: %s", ErrProcessing, stripeErr.Msg)
	case stripe.ErrorCodeCardDeclined:
		return fmt.Errorf("%w: %s", ErrCardDeclined, stripeErr.Msg)
	default:
		return fmt.Errorf("%w: %s: %s", ErrPaymentFailed, stripeErr.Code, stripeErr.Msg)
	}
}
