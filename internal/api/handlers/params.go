package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// PathID положительный ID из параметра маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// OptionalQueryID необязательный ID из query; пустое значение даёт nil
func OptionalQueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &ParamError{Field: name, Err: fmt.Errorf("invalid id %q", raw)}
	}
	return &id, nil
}

// ParseDate дата в формате YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(domain.DateFormat, raw)
}

// ParamError ошибка разбора параметра запроса с его именем
type ParamError struct {
	Field string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// ParamField имя параметра из ParamError, иначе пустая строка
func ParamField(err error) string {
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe.Field
	}
	return ""
}
