package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// --------------------------------------------------
// Client directory (reserva pública)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, mapError(err, "barbershop_not_found")
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) ListActiveProducts(
	ctx context.Context,
	barbershopID uint,
) ([]models.BarberProduct, error) {

	var products []models.BarberProduct
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true", barbershopID).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, mapError(err, "")
	}
	return products, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapError(err, "")
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(name),
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		err = mapError(err, "")
		if !errors.Is(err, apperr.ErrRaceLost) {
			return nil, err
		}
		// outra reserva criou o mesmo telefone primeiro
		client = models.Client{}
		if err := r.db.WithContext(ctx).
			Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
			First(&client).Error; err != nil {
			return nil, mapError(err, "client_not_found")
		}
	}

	return &client, nil
}

var _ domain.ClientDirectory = (*AppointmentGormRepository)(nil)
