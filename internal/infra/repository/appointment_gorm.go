package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/voucher"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// overlapCondition usa a duração congelada de cada linha, nunca a do produto.
const overlapCondition = "barber_id = ? AND status IN ? AND start_time < ? AND start_time + make_interval(mins => duration_min) > ?"

// reader concentra as consultas; dentro da transação locking ativa FOR UPDATE.
type reader struct {
	db      *gorm.DB
	locking bool
}

func (r reader) scoped(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r reader) FindProduct(ctx context.Context, id uint) (*models.BarberProduct, error) {
	var product models.BarberProduct
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, mapError(err, "product_not_found")
	}
	return &product, nil
}

func (r reader) FindBarber(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapError(err, "barber_not_found")
	}
	return &user, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r reader) FindClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, mapError(err, "client_not_found")
	}
	return &client, nil
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r reader) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, mapError(err, "barbershop_not_found")
	}
	return &shop, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r reader) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("BarberProduct").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r reader) ListActiveOverlapping(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.scoped(ctx).
		Where(overlapCondition, barberID, domain.ActiveStatusValues(), to, from).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, mapError(err, "")
	}
	return apps, nil
}

func (r reader) CountPendingForClient(
	ctx context.Context,
	clientID uint,
	after time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ? AND status IN ? AND start_time > ?", clientID, domain.ActiveStatusValues(), after).
		Count(&count).Error; err != nil {
		return 0, mapError(err, "")
	}
	return count, nil
}

func (r reader) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("BarberProduct").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, mapError(err, "")
	}

	return apps, nil
}

// ======================================================
// Repository (fora de transação)
// ======================================================

type AppointmentGormRepository struct {
	reader
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{reader: reader{db: db}}
}

// Begin abre uma transação serializável; conflitos viram ErrRaceLost no commit.
func (r *AppointmentGormRepository) Begin(ctx context.Context) (domain.Tx, error) {
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return nil, mapError(tx.Error, "")
	}
	return &GormTx{reader: reader{db: tx, locking: true}}, nil
}

// ======================================================
// Tx
// ======================================================

type GormTx struct {
	reader
}

func (t *GormTx) LockBarber(ctx context.Context, barberID uint) error {
	var user models.User
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, barberID).Error; err != nil {
		return mapError(err, "barber_not_found")
	}
	return nil
}

func (t *GormTx) GetAppointmentForUpdate(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var ap models.Appointment
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "appointment_not_found")
	}
	return &ap, nil
}

func (t *GormTx) InsertAppointment(ctx context.Context, ap *models.Appointment) error {
	return mapError(t.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error, "")
}

func (t *GormTx) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return mapError(t.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error, "")
}

func (t *GormTx) GetVoucher(ctx context.Context, ref voucher.Ref) (*voucher.Voucher, error) {
	var (
		owner      uint
		status     string
		validUntil *time.Time
		err        error
	)

	switch ref.Kind {
	case voucher.KindVoucher:
		var v models.Voucher
		err = t.scoped(ctx).First(&v, "id = ?", ref.ID).Error
		owner, status, validUntil = v.ClientID, v.Status, v.ValidUntil
	case voucher.KindPromotion:
		var p models.Promotion
		err = t.scoped(ctx).First(&p, "id = ?", ref.ID).Error
		owner, status, validUntil = p.ClientID, p.Status, p.ValidUntil
	default:
		return nil, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "")
	}

	return &voucher.Voucher{
		Ref:        ref,
		OwnerID:    owner,
		Status:     voucher.Status(status),
		ValidUntil: validUntil,
	}, nil
}

func (t *GormTx) SetVoucherStatus(ctx context.Context, ref voucher.Ref, status voucher.Status) error {
	var model any
	switch ref.Kind {
	case voucher.KindVoucher:
		model = &models.Voucher{}
	case voucher.KindPromotion:
		model = &models.Promotion{}
	default:
		return apperr.InvalidVoucher("unknown_kind")
	}

	res := t.db.WithContext(ctx).
		Model(model).
		Where("id = ?", ref.ID).
		Update("status", string(status))
	if res.Error != nil {
		return mapError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.InvalidVoucher(string(ref.Kind) + "_not_found")
	}
	return nil
}

func (t *GormTx) Commit() error {
	return mapError(t.db.Commit().Error, "")
}

func (t *GormTx) Rollback() error {
	return t.db.Rollback().Error
}

// Compile-time check
var (
	_ domain.UnitOfWork = (*AppointmentGormRepository)(nil)
	_ domain.Tx         = (*GormTx)(nil)
)
