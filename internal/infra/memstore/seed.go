package memstore

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// ===============================
// Seed
// ===============================

func (s *Store) AddBarbershop(shop *models.Barbershop) {
	s.mutate(func(st *state) {
		if shop.ID == 0 {
			shop.ID = st.id()
		}
		st.shops[shop.ID] = *shop
	})
}

func (s *Store) AddUser(u *models.User) {
	s.mutate(func(st *state) {
		if u.ID == 0 {
			u.ID = st.id()
		}
		st.users[u.ID] = *u
	})
}

func (s *Store) AddProduct(p *models.BarberProduct) {
	s.mutate(func(st *state) {
		if p.ID == 0 {
			p.ID = st.id()
		}
		st.products[p.ID] = *p
	})
}

func (s *Store) AddClient(c *models.Client) {
	s.mutate(func(st *state) {
		if c.ID == 0 {
			c.ID = st.id()
		}
		st.clients[c.ID] = *c
	})
}

func (s *Store) AddVoucher(v *models.Voucher) {
	s.mutate(func(st *state) {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		if v.Status == "" {
			v.Status = "active"
		}
		st.vouchers[v.ID] = *v
	})
}

func (s *Store) AddPromotion(p *models.Promotion) {
	s.mutate(func(st *state) {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Status == "" {
			p.Status = "active"
		}
		st.promotions[p.ID] = *p
	})
}

func (s *Store) AddAppointment(ap *models.Appointment) {
	s.mutate(func(st *state) {
		if ap.ID == uuid.Nil {
			ap.ID = uuid.New()
		}
		st.appointments[ap.ID] = strip(*ap)
	})
}

// ===============================
// Inspection
// ===============================

func (s *Store) Appointments() []models.Appointment {
	st := s.snapshot()
	out := make([]models.Appointment, 0, len(st.appointments))
	for _, ap := range st.appointments {
		out = append(out, ap)
	}
	sortByStart(out)
	return out
}

func (s *Store) VoucherStatus(id uuid.UUID) string {
	return s.snapshot().vouchers[id].Status
}

func (s *Store) PromotionStatus(id uuid.UUID) string {
	return s.snapshot().promotions[id].Status
}
