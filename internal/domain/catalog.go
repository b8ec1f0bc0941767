package domain

import "github.com/shopspring/decimal"

// Salon is a physical location where appointments take place.
type Salon struct {
	ID           int64
	Name         string
	Address      string
	Phone        string
	WorkingHours string
	IsActive     bool
}

// ServiceCategory groups services for presentation.
type ServiceCategory struct {
	ID    int64
	Name  string
	Order int
}

// Service is a bookable offering with a base price.
type Service struct {
	ID              int64
	CategoryID      int64
	CategoryName    string
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	IsActive        bool
	Order           int
}

// Master is a stylist who performs services at one or more salons.
type Master struct {
	ID         int64
	Name       string
	Specialty  string
	Experience string
	Rating     decimal.Decimal
	IsActive   bool
	Order      int
	ServiceIDs []int64
	SalonIDs   []int64
}

// OffersService reports whether the master performs the given service.
func (m *Master) OffersService(serviceID int64) bool {
	return containsID(m.ServiceIDs, serviceID)
}

// WorksAt reports whether the master works at the given salon.
func (m *Master) WorksAt(salonID int64) bool {
	return containsID(m.SalonIDs, salonID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// MasterFilter narrows master listings; nil fields mean "any".
type MasterFilter struct {
	SalonID   *int64
	ServiceID *int64
}

// ServiceFilter narrows service listings; nil fields mean "any".
type ServiceFilter struct {
	SalonID    *int64
	CategoryID *int64
}
