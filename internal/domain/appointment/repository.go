package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/voucher"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// Reader são as leituras feitas tanto fora quanto dentro da unidade de trabalho.
type Reader interface {
	catalog.Source

	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Client --------
	FindClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	// ListActiveOverlapping devolve agendamentos ativos do barbeiro que
	// cruzam [from, to).
	ListActiveOverlapping(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	CountPendingForClient(
		ctx context.Context,
		clientID uint,
		after time.Time,
	) (int64, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

// Tx é a unidade de trabalho explícita: begin, escritas, commit/rollback.
// Agendamento e voucher mudam juntos ou não mudam.
type Tx interface {
	Reader

	// LockBarber serializa escritores concorrentes na agenda do barbeiro.
	LockBarber(
		ctx context.Context,
		barberID uint,
	) error

	GetAppointmentForUpdate(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetVoucher(
		ctx context.Context,
		ref voucher.Ref,
	) (*voucher.Voucher, error)

	SetVoucherStatus(
		ctx context.Context,
		ref voucher.Ref,
		status voucher.Status,
	) error

	Commit() error
	Rollback() error
}

type UnitOfWork interface {
	Reader

	Begin(ctx context.Context) (Tx, error)
}

// ClientDirectory resolve o cliente sem login da reserva pública.
type ClientDirectory interface {
	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	ListActiveProducts(
		ctx context.Context,
		barbershopID uint,
	) ([]models.BarberProduct, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)
}
