package serviceoption

import "errors"

var (
	// ErrServiceOptionNotFound возвращается, когда вариант услуги не найден
	ErrServiceOptionNotFound = errors.New("serviceoption.repository: service option not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("serviceoption.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("serviceoption.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("serviceoption.repository: failed to scan row")
)
