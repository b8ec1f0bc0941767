package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок postgres, которые различает сервис
const (
	CodeUniqueViolation      pq.ErrorCode = "23505"
	CodeCheckViolation       pq.ErrorCode = "23514"
	CodeSerializationFailure pq.ErrorCode = "40001"
	CodeDeadlockDetected     pq.ErrorCode = "40P01"
)

func asPQ(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// IsUniqueViolation нарушение уникальности; пустой constraint — любой индекс
func IsUniqueViolation(err error, constraint string) bool {
	pqErr, ok := asPQ(err)
	if !ok || pqErr.Code != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsCheckViolation нарушение CHECK; пустой constraint — любое ограничение
func IsCheckViolation(err error, constraint string) bool {
	pqErr, ok := asPQ(err)
	if !ok || pqErr.Code != CodeCheckViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsSerializationFailure транзакция не смогла сериализоваться и должна быть повторена клиентом
func IsSerializationFailure(err error) bool {
	pqErr, ok := asPQ(err)
	return ok && (pqErr.Code == CodeSerializationFailure || pqErr.Code == CodeDeadlockDetected)
}
