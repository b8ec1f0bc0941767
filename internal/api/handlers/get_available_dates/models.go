package get_available_dates

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	From  string          `json:"from"`
	Days  int             `json:"days"`
	Dates []AvailableDate `json:"dates"`
}

// AvailableDate дата со свободными слотами
type AvailableDate struct {
	Date      string `json:"date"`
	FreeSlots int    `json:"freeSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = AvailableDate{Date: types.FormatDate(d.Date), FreeSlots: d.FreeSlots}
	}
	return &AvailableDatesResponse{
		From:  types.FormatDate(resp.From),
		Days:  resp.Days,
		Dates: dates,
	}
}

// ToUseCaseRequest разбирает query параметры: masterId, salonId, serviceId, days
func ToUseCaseRequest(r *http.Request) (*getAvailableDates.Request, error) {
	req := &getAvailableDates.Request{}

	var err error
	if req.Filter.MasterID, err = handlers.OptionalQueryID(r, "masterId"); err != nil {
		return nil, err
	}
	if req.Filter.SalonID, err = handlers.OptionalQueryID(r, "salonId"); err != nil {
		return nil, err
	}
	if req.Filter.ServiceID, err = handlers.OptionalQueryID(r, "serviceId"); err != nil {
		return nil, err
	}

	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &handlers.ParamError{Field: "days", Err: fmt.Errorf("invalid days %q", raw)}
		}
		req.Days = days
	}

	return req, nil
}
