package memory

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type dataset struct {
	salons        map[int64]domain.Salon
	categories    map[int64]domain.ServiceCategory
	services      map[int64]domain.Service
	masters       map[int64]domain.Master
	clients       map[int64]domain.Client
	promoCodes    map[int64]domain.PromoCode
	appointments  map[int64]domain.Appointment
	consultations map[int64]domain.Consultation

	clientByPhone map[string]int64
	promoByCode   map[string]int64

	seq int64
}

func newDataset() *dataset {
	return &dataset{
		salons:        make(map[int64]domain.Salon),
		categories:    make(map[int64]domain.ServiceCategory),
		services:      make(map[int64]domain.Service),
		masters:       make(map[int64]domain.Master),
		clients:       make(map[int64]domain.Client),
		promoCodes:    make(map[int64]domain.PromoCode),
		appointments:  make(map[int64]domain.Appointment),
		consultations: make(map[int64]domain.Consultation),
		clientByPhone: make(map[string]int64),
		promoByCode:   make(map[string]int64),
	}
}

func (d *dataset) nextID() int64 {
	d.seq++
	return d.seq
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		salons:        cloneMap(d.salons),
		categories:    cloneMap(d.categories),
		services:      cloneMap(d.services),
		masters:       make(map[int64]domain.Master, len(d.masters)),
		clients:       make(map[int64]domain.Client, len(d.clients)),
		promoCodes:    cloneMap(d.promoCodes),
		appointments:  make(map[int64]domain.Appointment, len(d.appointments)),
		consultations: cloneMap(d.consultations),
		clientByPhone: cloneMap(d.clientByPhone),
		promoByCode:   cloneMap(d.promoByCode),
		seq:           d.seq,
	}
	for id, m := range d.masters {
		c.masters[id] = copyMaster(m)
	}
	for id, cl := range d.clients {
		c.clients[id] = copyClient(cl)
	}
	for id, a := range d.appointments {
		c.appointments[id] = copyAppointment(a)
	}
	return c
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyMaster(m domain.Master) domain.Master {
	m.ServiceIDs = append([]int64(nil), m.ServiceIDs...)
	m.SalonIDs = append([]int64(nil), m.SalonIDs...)
	return m
}

func copyClient(c domain.Client) domain.Client {
	if c.Email != nil {
		email := *c.Email
		c.Email = &email
	}
	return c
}

func copyAppointment(a domain.Appointment) domain.Appointment {
	if a.PromoCodeID != nil {
		id := *a.PromoCodeID
		a.PromoCodeID = &id
	}
	return a
}
