package get_free_slots

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	getFreeSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_free_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	Date    string        `json:"date"`
	Slots   []string      `json:"slots"`
	Periods []PeriodSlots `json:"periods,omitempty"`
}

// PeriodSlots слоты одного периода дня
type PeriodSlots struct {
	Period string   `json:"period"`
	Title  string   `json:"title"`
	Slots  []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	out := &FreeSlotsResponse{
		Date:  types.FormatDate(resp.Date),
		Slots: toStrings(resp.Slots),
	}
	if resp.Periods != nil {
		out.Periods = make([]PeriodSlots, len(resp.Periods))
		for i, p := range resp.Periods {
			out.Periods[i] = PeriodSlots{
				Period: string(p.Period),
				Title:  p.Period.Title(),
				Slots:  toStrings(p.Slots),
			}
		}
	}
	return out
}

func toStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

// ToUseCaseRequest разбирает query параметры: date (обязателен), masterId, salonId, serviceId, grouped
func ToUseCaseRequest(r *http.Request) (*getFreeSlots.Request, error) {
	q := r.URL.Query()

	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, &handlers.ParamError{Field: "date", Err: err}
	}

	req := &getFreeSlots.Request{Date: date}
	for _, p := range []struct {
		name string
		dst  **int64
	}{
		{"masterId", &req.Filter.MasterID},
		{"salonId", &req.Filter.SalonID},
		{"serviceId", &req.Filter.ServiceID},
	} {
		id, err := handlers.OptionalQueryID(r, p.name)
		if err != nil {
			return nil, err
		}
		*p.dst = id
	}

	if raw := q.Get("grouped"); raw != "" {
		grouped, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &handlers.ParamError{Field: "grouped", Err: err}
		}
		req.Grouped = grouped
	}

	return req, nil
}
