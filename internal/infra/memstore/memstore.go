// Package memstore é a unidade de trabalho em memória usada pelos testes e
// pelo modo de desenvolvimento sem Postgres.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/voucher"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

type state struct {
	shops        map[uint]models.Barbershop
	users        map[uint]models.User
	products     map[uint]models.BarberProduct
	clients      map[uint]models.Client
	appointments map[uuid.UUID]models.Appointment
	vouchers     map[uuid.UUID]models.Voucher
	promotions   map[uuid.UUID]models.Promotion
	nextID       uint
}

func newState() *state {
	return &state{
		shops:        map[uint]models.Barbershop{},
		users:        map[uint]models.User{},
		products:     map[uint]models.BarberProduct{},
		clients:      map[uint]models.Client{},
		appointments: map[uuid.UUID]models.Appointment{},
		vouchers:     map[uuid.UUID]models.Voucher{},
		promotions:   map[uuid.UUID]models.Promotion{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.shops {
		c.shops[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.vouchers {
		c.vouchers[k] = v
	}
	for k, v := range s.promotions {
		c.promotions[k] = v
	}
	c.nextID = s.nextID
	return c
}

func (s *state) id() uint {
	s.nextID++
	return s.nextID
}

// Store guarda um snapshot por vez. Uma transação ocupa writer (semáforo de
// uma vaga) do Begin até o Commit/Rollback, então escritores ficam em fila
// como num lock de linha. A espera respeita o contexto.
type Store struct {
	writer chan struct{}

	mu         sync.RWMutex
	cur        *state
	commitErrs []error
}

var (
	_ domain.UnitOfWork      = (*Store)(nil)
	_ domain.ClientDirectory = (*Store)(nil)
	_ domain.Tx              = (*Tx)(nil)
)

func New() *Store {
	return &Store{cur: newState(), writer: make(chan struct{}, 1)}
}

// InjectCommitError faz os próximos commits falharem, na ordem dada.
func (s *Store) InjectCommitError(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErrs = append(s.commitErrs, errs...)
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// mutate aplica fn fora de transação, respeitando a fila de escritores.
func (s *Store) mutate(fn func(st *state)) {
	s.writer <- struct{}{}
	defer func() { <-s.writer }()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.clone()
	fn(next)
	s.cur = next
}

// ===============================
// Unit of work
// ===============================

func (s *Store) Begin(ctx context.Context) (domain.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Transient("store_unavailable", err)
	}

	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, apperr.Transient("store_timeout", ctx.Err())
	}
	return &Tx{store: s, st: s.snapshot().clone()}, nil
}

type Tx struct {
	store *Store
	st    *state
	done  bool
}

func (t *Tx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	defer func() { <-t.store.writer }()

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if len(t.store.commitErrs) > 0 {
		err := t.store.commitErrs[0]
		t.store.commitErrs = t.store.commitErrs[1:]
		return err
	}

	t.store.cur = t.st
	return nil
}

func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	<-t.store.writer
	return nil
}

// ===============================
// Reads (Store)
// ===============================

func (s *Store) FindProduct(ctx context.Context, id uint) (*models.BarberProduct, error) {
	return findProduct(s.snapshot(), id)
}

func (s *Store) FindBarber(ctx context.Context, id uint) (*models.User, error) {
	return findBarber(s.snapshot(), id)
}

func (s *Store) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	return getBarbershop(s.snapshot(), id)
}

func (s *Store) FindClient(ctx context.Context, id uint) (*models.Client, error) {
	return findClient(s.snapshot(), id)
}

func (s *Store) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return getAppointment(s.snapshot(), id)
}

func (s *Store) ListActiveOverlapping(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {
	return listActiveOverlapping(s.snapshot(), barberID, from, to), nil
}

func (s *Store) CountPendingForClient(
	ctx context.Context,
	clientID uint,
	after time.Time,
) (int64, error) {
	return countPending(s.snapshot(), clientID, after), nil
}

func (s *Store) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return listForPeriod(s.snapshot(), barberID, start, end), nil
}

// ===============================
// Reads (Tx)
// ===============================

func (t *Tx) FindProduct(ctx context.Context, id uint) (*models.BarberProduct, error) {
	return findProduct(t.st, id)
}

func (t *Tx) FindBarber(ctx context.Context, id uint) (*models.User, error) {
	return findBarber(t.st, id)
}

func (t *Tx) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	return getBarbershop(t.st, id)
}

func (t *Tx) FindClient(ctx context.Context, id uint) (*models.Client, error) {
	return findClient(t.st, id)
}

func (t *Tx) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return getAppointment(t.st, id)
}

func (t *Tx) ListActiveOverlapping(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {
	return listActiveOverlapping(t.st, barberID, from, to), nil
}

func (t *Tx) CountPendingForClient(
	ctx context.Context,
	clientID uint,
	after time.Time,
) (int64, error) {
	return countPending(t.st, clientID, after), nil
}

func (t *Tx) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return listForPeriod(t.st, barberID, start, end), nil
}

// ===============================
// Writes (Tx)
// ===============================

func (t *Tx) LockBarber(ctx context.Context, barberID uint) error {
	if _, ok := t.st.users[barberID]; !ok {
		return apperr.NotFound("barber_not_found")
	}
	return nil
}

func (t *Tx) GetAppointmentForUpdate(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return getAppointment(t.st, id)
}

// InsertAppointment reproduz o índice único parcial (barbeiro, início) dos ativos.
func (t *Tx) InsertAppointment(ctx context.Context, ap *models.Appointment) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	if domain.Status(ap.Status).IsActive() {
		for _, other := range t.st.appointments {
			if other.BarberID == ap.BarberID &&
				other.StartTime.Equal(ap.StartTime) &&
				domain.Status(other.Status).IsActive() {
				return apperr.ErrRaceLost
			}
		}
	}

	t.st.appointments[ap.ID] = strip(*ap)
	return nil
}

func (t *Tx) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if _, ok := t.st.appointments[ap.ID]; !ok {
		return apperr.NotFound("appointment_not_found")
	}
	t.st.appointments[ap.ID] = strip(*ap)
	return nil
}

func (t *Tx) GetVoucher(ctx context.Context, ref voucher.Ref) (*voucher.Voucher, error) {
	switch ref.Kind {
	case voucher.KindVoucher:
		v, ok := t.st.vouchers[ref.ID]
		if !ok {
			return nil, nil
		}
		return &voucher.Voucher{Ref: ref, OwnerID: v.ClientID, Status: voucher.Status(v.Status), ValidUntil: v.ValidUntil}, nil
	case voucher.KindPromotion:
		p, ok := t.st.promotions[ref.ID]
		if !ok {
			return nil, nil
		}
		return &voucher.Voucher{Ref: ref, OwnerID: p.ClientID, Status: voucher.Status(p.Status), ValidUntil: p.ValidUntil}, nil
	}
	return nil, nil
}

func (t *Tx) SetVoucherStatus(ctx context.Context, ref voucher.Ref, status voucher.Status) error {
	switch ref.Kind {
	case voucher.KindVoucher:
		v, ok := t.st.vouchers[ref.ID]
		if !ok {
			return apperr.InvalidVoucher("voucher_not_found")
		}
		v.Status = string(status)
		t.st.vouchers[ref.ID] = v
	case voucher.KindPromotion:
		p, ok := t.st.promotions[ref.ID]
		if !ok {
			return apperr.InvalidVoucher("promotion_not_found")
		}
		p.Status = string(status)
		t.st.promotions[ref.ID] = p
	}
	return nil
}

// ===============================
// Client directory
// ===============================

func (s *Store) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	for _, shop := range s.snapshot().shops {
		if shop.Slug == slug {
			out := shop
			return &out, nil
		}
	}
	return nil, apperr.NotFound("barbershop_not_found")
}

func (s *Store) ListActiveProducts(ctx context.Context, barbershopID uint) ([]models.BarberProduct, error) {
	var out []models.BarberProduct
	for _, p := range s.snapshot().products {
		if p.BarbershopID == barbershopID && p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var out models.Client
	s.mutate(func(st *state) {
		for _, c := range st.clients {
			if c.BarbershopID == barbershopID && c.Phone == phone {
				out = c
				return
			}
		}
		out = models.Client{
			ID:           st.id(),
			BarbershopID: barbershopID,
			Name:         strings.TrimSpace(name),
			Phone:        phone,
			Email:        email,
		}
		st.clients[out.ID] = out
	})
	return &out, nil
}

// ===============================
// helpers
// ===============================

func findProduct(st *state, id uint) (*models.BarberProduct, error) {
	p, ok := st.products[id]
	if !ok {
		return nil, apperr.NotFound("product_not_found")
	}
	return &p, nil
}

func findBarber(st *state, id uint) (*models.User, error) {
	u, ok := st.users[id]
	if !ok {
		return nil, apperr.NotFound("barber_not_found")
	}
	return &u, nil
}

func findClient(st *state, id uint) (*models.Client, error) {
	c, ok := st.clients[id]
	if !ok {
		return nil, apperr.NotFound("client_not_found")
	}
	return &c, nil
}

func getBarbershop(st *state, id uint) (*models.Barbershop, error) {
	shop, ok := st.shops[id]
	if !ok {
		return nil, apperr.NotFound("barbershop_not_found")
	}
	return &shop, nil
}

func getAppointment(st *state, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := st.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment_not_found")
	}
	out := withRelations(st, ap)
	return &out, nil
}

func listActiveOverlapping(st *state, barberID uint, from, to time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range st.appointments {
		if ap.BarberID != barberID || !domain.Status(ap.Status).IsActive() {
			continue
		}
		if timeutil.Overlaps(from, to, ap.StartTime, ap.EndTime()) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out
}

func countPending(st *state, clientID uint, after time.Time) int64 {
	var n int64
	for _, ap := range st.appointments {
		if ap.ClientID == clientID &&
			domain.Status(ap.Status).IsActive() &&
			ap.StartTime.After(after) {
			n++
		}
	}
	return n
}

func listForPeriod(st *state, barberID uint, start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range st.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, withRelations(st, ap))
		}
	}
	sortByStart(out)
	return out
}

func withRelations(st *state, ap models.Appointment) models.Appointment {
	if c, ok := st.clients[ap.ClientID]; ok {
		ap.Client = &c
	}
	if p, ok := st.products[ap.BarberProductID]; ok {
		ap.BarberProduct = &p
	}
	return ap
}

// strip remove associações para não guardar cópias velhas junto do registro.
func strip(ap models.Appointment) models.Appointment {
	ap.Barbershop = models.Barbershop{}
	ap.Barber = models.User{}
	ap.Client = nil
	ap.BarberProduct = nil
	return ap
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		return aps[i].StartTime.Before(aps[j].StartTime)
	})
}
