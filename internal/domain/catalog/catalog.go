package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// ===============================
// Value types
// ===============================

type Product struct {
	ID           uint
	BarbershopID uint
	Name         string
	DurationMin  int
	Active       bool
}

func (p Product) Duration() time.Duration {
	return time.Duration(p.DurationMin) * time.Minute
}

type Barber struct {
	ID           uint
	BarbershopID uint
	Name         string
	Role         string
	Active       bool
}

// ===============================
// Source
// ===============================

// Source é implementado pelo repositório e pela transação; leituras de catálogo
// dentro da unidade de trabalho enxergam o mesmo snapshot da escrita.
type Source interface {
	FindProduct(ctx context.Context, id uint) (*models.BarberProduct, error)
	FindBarber(ctx context.Context, id uint) (*models.User, error)
}

// ProductFromModel valida o produto na fronteira: o núcleo nunca lida com duração ausente.
func ProductFromModel(m *models.BarberProduct) (Product, error) {
	if m.DurationMin <= 0 {
		return Product{}, fmt.Errorf("product %d has invalid duration %d", m.ID, m.DurationMin)
	}
	return Product{
		ID:           m.ID,
		BarbershopID: m.BarbershopID,
		Name:         m.Name,
		DurationMin:  m.DurationMin,
		Active:       m.Active,
	}, nil
}

func BarberFromModel(m *models.User) Barber {
	return Barber{
		ID:           m.ID,
		BarbershopID: m.BarbershopID,
		Name:         m.Name,
		Role:         m.Role,
		Active:       m.Active,
	}
}

func isBarberRole(role string) bool {
	return role == models.RoleBarber || role == models.RoleOwner
}

// ===============================
// Lookup
// ===============================

type Lookup struct {
	src Source
}

func New(src Source) Lookup {
	return Lookup{src: src}
}

func (l Lookup) Product(ctx context.Context, id uint) (Product, error) {
	m, err := l.src.FindProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return ProductFromModel(m)
}

func (l Lookup) ProductDuration(ctx context.Context, id uint) (int, error) {
	p, err := l.Product(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.DurationMin, nil
}

func (l Lookup) IsProductActive(ctx context.Context, id uint) (bool, error) {
	p, err := l.Product(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Active, nil
}

func (l Lookup) IsActiveBarber(ctx context.Context, id uint) (bool, error) {
	m, err := l.src.FindBarber(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.Active && isBarberRole(m.Role), nil
}

// ActiveProduct devolve o produto ou NotFound se não existir ou estiver inativo.
func (l Lookup) ActiveProduct(ctx context.Context, id uint) (Product, error) {
	p, err := l.Product(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !p.Active {
		return Product{}, apperr.NotFound("product_not_found")
	}
	return p, nil
}

// ActiveBarber devolve o barbeiro ou NotFound se não existir, estiver inativo ou não for prestador.
func (l Lookup) ActiveBarber(ctx context.Context, id uint) (Barber, error) {
	m, err := l.src.FindBarber(ctx, id)
	if err != nil {
		return Barber{}, err
	}
	if !m.Active || !isBarberRole(m.Role) {
		return Barber{}, apperr.NotFound("barber_not_found")
	}
	return BarberFromModel(m), nil
}

// RequireBookable valida o par produto/barbeiro de uma reserva.
// Produto de outra barbearia conta como inexistente.
func (l Lookup) RequireBookable(
	ctx context.Context,
	productID uint,
	barberID uint,
) (Product, Barber, error) {

	product, err := l.ActiveProduct(ctx, productID)
	if err != nil {
		return Product{}, Barber{}, err
	}

	barber, err := l.ActiveBarber(ctx, barberID)
	if err != nil {
		return Product{}, Barber{}, err
	}

	if product.BarbershopID != barber.BarbershopID {
		return Product{}, Barber{}, apperr.NotFound("product_not_found")
	}

	return product, barber, nil
}
