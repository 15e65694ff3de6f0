// Package seed gera dados de demonstração para o modo memória e para o
// comando cmd/seed.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

var services = []struct {
	Name     string
	Duration int
	Price    float64
}{
	{"Corte", 30, 45},
	{"Barba", 30, 35},
	{"Corte + barba", 60, 70},
	{"Pigmentação", 90, 120},
}

// Dataset mantém a ordem de criação; Vouchers[i] pertence a Clients[i].
type Dataset struct {
	Shop      models.Barbershop
	Owner     models.User
	Barbers   []models.User
	Products  []models.BarberProduct
	Clients   []models.Client
	Vouchers  []models.Voucher
	Promotion models.Promotion
}

func Generate(barbers, clients int, validFor time.Duration, now time.Time) Dataset {
	company := gofakeit.Company()
	slug := strings.ToLower(strings.Join(strings.Fields(company), "-"))

	d := Dataset{
		Shop: models.Barbershop{
			Name:    company,
			Slug:    fmt.Sprintf("%s-%d", slug, gofakeit.Number(100, 999)),
			Phone:   gofakeit.Phone(),
			Address: gofakeit.Street(),
		},
		Owner: models.User{
			Name:   gofakeit.Name(),
			Email:  gofakeit.Email(),
			Role:   models.RoleOwner,
			Active: true,
		},
	}

	for i := 0; i < barbers; i++ {
		d.Barbers = append(d.Barbers, models.User{
			Name:   gofakeit.Name(),
			Email:  gofakeit.Email(),
			Phone:  gofakeit.Phone(),
			Role:   models.RoleBarber,
			Active: true,
		})
	}

	for _, s := range services {
		d.Products = append(d.Products, models.BarberProduct{
			Name:        s.Name,
			DurationMin: s.Duration,
			Price:       s.Price,
			Active:      true,
		})
	}

	validUntil := now.Add(validFor)
	for i := 0; i < clients; i++ {
		d.Clients = append(d.Clients, models.Client{
			Name:  gofakeit.Name(),
			Phone: gofakeit.Phone(),
			Email: gofakeit.Email(),
		})
		d.Vouchers = append(d.Vouchers, models.Voucher{
			ID:              uuid.New(),
			Code:            strings.ToUpper(gofakeit.LetterN(8)),
			Status:          "active",
			DiscountPercent: gofakeit.Number(5, 30),
			ValidUntil:      &validUntil,
		})
	}

	d.Promotion = models.Promotion{
		ID:         uuid.New(),
		Title:      "Primeira visita",
		Status:     "active",
		PriceOff:   10,
		ValidUntil: &validUntil,
	}

	return d
}

// linkShop propaga IDs gerados para as chaves estrangeiras.
func (d *Dataset) linkShop() {
	d.Owner.BarbershopID = d.Shop.ID
	for i := range d.Barbers {
		d.Barbers[i].BarbershopID = d.Shop.ID
	}
	for i := range d.Products {
		d.Products[i].BarbershopID = d.Shop.ID
	}
	for i := range d.Clients {
		d.Clients[i].BarbershopID = d.Shop.ID
	}
}

func (d *Dataset) linkClients() {
	for i := range d.Vouchers {
		d.Vouchers[i].BarbershopID = d.Shop.ID
		d.Vouchers[i].ClientID = d.Clients[i].ID
	}
	d.Promotion.BarbershopID = d.Shop.ID
	if len(d.Clients) > 0 {
		d.Promotion.ClientID = d.Clients[0].ID
	}
}

// ======================================================
// Targets
// ======================================================

func (d *Dataset) LoadMemory(s *memstore.Store) {
	s.AddBarbershop(&d.Shop)
	d.linkShop()

	s.AddUser(&d.Owner)
	for i := range d.Barbers {
		s.AddUser(&d.Barbers[i])
	}
	for i := range d.Products {
		s.AddProduct(&d.Products[i])
	}
	for i := range d.Clients {
		s.AddClient(&d.Clients[i])
	}

	d.linkClients()
	for i := range d.Vouchers {
		s.AddVoucher(&d.Vouchers[i])
	}
	if len(d.Clients) > 0 {
		s.AddPromotion(&d.Promotion)
	}
}

func (d *Dataset) Persist(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&d.Shop).Error; err != nil {
			return fmt.Errorf("barbershop: %w", err)
		}
		d.linkShop()

		if err := tx.Create(&d.Owner).Error; err != nil {
			return fmt.Errorf("owner: %w", err)
		}
		if len(d.Barbers) > 0 {
			if err := tx.Create(&d.Barbers).Error; err != nil {
				return fmt.Errorf("barbers: %w", err)
			}
		}
		if err := tx.Create(&d.Products).Error; err != nil {
			return fmt.Errorf("products: %w", err)
		}
		if len(d.Clients) == 0 {
			return nil
		}
		if err := tx.Create(&d.Clients).Error; err != nil {
			return fmt.Errorf("clients: %w", err)
		}

		d.linkClients()
		if err := tx.Create(&d.Vouchers).Error; err != nil {
			return fmt.Errorf("vouchers: %w", err)
		}
		if err := tx.Create(&d.Promotion).Error; err != nil {
			return fmt.Errorf("promotion: %w", err)
		}
		return nil
	})
}

// ======================================================
// Dev tokens
// ======================================================

// DevToken assina um JWT no formato que o AuthMiddleware espera.
func DevToken(secret string, sub, barbershopID uint, role string, ttl time.Duration) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          sub,
		"barbershopId": barbershopID,
		"role":         role,
		"exp":          time.Now().Add(ttl).Unix(),
	})
	return tok.SignedString([]byte(secret))
}
