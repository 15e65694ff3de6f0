package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type fakeSource struct {
	products map[uint]models.BarberProduct
	barbers  map[uint]models.User
}

func (f fakeSource) FindProduct(_ context.Context, id uint) (*models.BarberProduct, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("product_not_found")
	}
	return &p, nil
}

func (f fakeSource) FindBarber(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.barbers[id]
	if !ok {
		return nil, apperr.NotFound("barber_not_found")
	}
	return &u, nil
}

func newLookup() Lookup {
	return New(fakeSource{
		products: map[uint]models.BarberProduct{
			1: {ID: 1, BarbershopID: 1, Name: "Corte", DurationMin: 30, Active: true},
			2: {ID: 2, BarbershopID: 1, Name: "Barba", DurationMin: 20, Active: false},
			3: {ID: 3, BarbershopID: 1, Name: "Quebrado", DurationMin: 0, Active: true},
			4: {ID: 4, BarbershopID: 2, Name: "Outra loja", DurationMin: 30, Active: true},
		},
		barbers: map[uint]models.User{
			10: {ID: 10, BarbershopID: 1, Role: models.RoleBarber, Active: true},
			11: {ID: 11, BarbershopID: 1, Role: models.RoleBarber, Active: false},
			12: {ID: 12, BarbershopID: 1, Role: "customer", Active: true},
			13: {ID: 13, BarbershopID: 1, Role: models.RoleOwner, Active: true},
		},
	})
}

func TestProductDuration(t *testing.T) {
	l := newLookup()
	ctx := context.Background()

	d, err := l.ProductDuration(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, d)

	_, err = l.ProductDuration(ctx, 99)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = l.ProductDuration(ctx, 3)
	assert.Error(t, err)
}

func TestIsProductActive(t *testing.T) {
	l := newLookup()
	ctx := context.Background()

	ok, err := l.IsProductActive(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.IsProductActive(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.IsProductActive(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsActiveBarber(t *testing.T) {
	l := newLookup()
	ctx := context.Background()

	for id, want := range map[uint]bool{10: true, 11: false, 12: false, 13: true, 99: false} {
		ok, err := l.IsActiveBarber(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "barber %d", id)
	}
}

func TestRequireBookable(t *testing.T) {
	l := newLookup()
	ctx := context.Background()

	p, b, err := l.RequireBookable(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.Equal(t, uint(10), b.ID)

	cases := []struct {
		name      string
		productID uint
		barberID  uint
		code      string
	}{
		{"inactive product", 2, 10, "product_not_found"},
		{"unknown product", 99, 10, "product_not_found"},
		{"inactive barber", 1, 11, "barber_not_found"},
		{"not a barber", 1, 12, "barber_not_found"},
		{"other barbershop", 4, 10, "product_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := l.RequireBookable(ctx, tc.productID, tc.barberID)
			assert.True(t, apperr.Is(err, apperr.KindNotFound))
			assert.Equal(t, tc.code, apperr.CodeOf(err))
		})
	}
}
