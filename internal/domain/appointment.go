package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ErrInvalidStatus is returned when parsing an unknown status
var ErrInvalidStatus = fmt.Errorf("invalid appointment status: %w", ErrValidation)

// ErrInvalidTransition is returned for a status change the lifecycle does not allow
var ErrInvalidTransition = fmt.Errorf("status transition not allowed: %w", ErrConflict)

var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// AllStatuses lists statuses in lifecycle order
func AllStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}
}

// SlotOccupyingStatuses are the statuses that hold a master's slot
func SlotOccupyingStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusPending, StatusConfirmed}
}

// ParseStatus converts user input into a known status
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses() {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsSlotOccupying returns true if an appointment in this status blocks its slot
func (s AppointmentStatus) IsSlotOccupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle allows s -> next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Title human-readable status name
func (s AppointmentStatus) Title() string {
	switch s {
	case StatusPending:
		return "Ожидает"
	case StatusConfirmed:
		return "Подтверждена"
	case StatusCompleted:
		return "Завершена"
	case StatusCancelled:
		return "Отменена"
	case StatusNoShow:
		return "Не явился"
	default:
		return string(s)
	}
}

// Appointment represents a booked service slot with a specific master
type Appointment struct {
	ID        int64
	ClientID  int64
	MasterID  int64
	ServiceID int64
	SalonID   int64
	Date      time.Time
	Time      types.TimeString
	Status    AppointmentStatus

	OriginalPrice  decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
	PromoCodeID    *int64

	Notes     string
	CreatedAt time.Time
}

// Number is the display identifier shown to clients
func (a *Appointment) Number() string {
	return fmt.Sprintf("#%06d", a.ID)
}

// OccupiedFilter selects slot-occupying appointments on one date; nil fields mean "any"
type OccupiedFilter struct {
	Date      time.Time
	MasterID  *int64
	SalonID   *int64
	ServiceID *int64
}

// StatusChange describes an applied lifecycle transition
type StatusChange struct {
	AppointmentID int64
	From          AppointmentStatus
	To            AppointmentStatus
	Date          time.Time
	MasterID      int64
}
