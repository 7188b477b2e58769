package paymentservice

// PaymentIntent результат создания платёжного намерения
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentResult результат подтверждения платежа
type PaymentResult struct {
	Status          string
	PaymentIntentID string
	PaymentMethodID string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
