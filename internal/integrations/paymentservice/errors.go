package paymentservice

import "errors"

var (
	// ErrCardDeclined возвращается, когда карта отклонена (с уточнением причины)
	ErrCardDeclined = errors.New("paymentservice: card declined")

	// ErrCardExpired возвращается, когда срок действия карты истёк
	ErrCardExpired = errors.New("paymentservice: card expired")

	// ErrInvalidCVC возвращается при неверном CVC
	ErrInvalidCVC = errors.New("paymentservice: invalid cvc")

	// ErrProcessing возвращается при ошибке обработки платежа на стороне эмитента
	ErrProcessing = errors.New("paymentservice: processing error")

	// ErrPaymentFailed возвращается при прочих ошибках платёжного сервиса
	ErrPaymentFailed = errors.New("paymentservice: payment failed")
)
