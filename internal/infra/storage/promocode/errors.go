package promocode

import "errors"

var (
	// ErrPromoCodeNotFound возвращается, когда промокод не найден
	ErrPromoCodeNotFound = errors.New("promocode.repository: promo code not found")

	// ErrPromoExhausted возвращается, когда лимит использований промокода исчерпан
	ErrPromoExhausted = errors.New("promocode.repository: promo code usage limit reached")

	// ErrInvalidPromoCode возвращается при попытке сохранить промокод, нарушающий инварианты
	ErrInvalidPromoCode = errors.New("promocode.repository: invalid promo code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("promocode.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("promocode.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("promocode.repository: failed to scan row")
)
