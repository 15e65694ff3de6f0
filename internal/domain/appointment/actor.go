package appointment

import (
	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

const RoleClient = "client"

// Actor é quem pede a operação. A autenticação é do chamador;
// aqui só se aplica a regra de quem pode mover cada estado.
type Actor struct {
	ID           uint
	Role         string
	BarbershopID uint
}

// IsProviderOf: o próprio barbeiro ou o dono da barbearia.
func (a Actor) IsProviderOf(ap *models.Appointment) bool {
	switch a.Role {
	case models.RoleBarber:
		return a.ID == ap.BarberID
	case models.RoleOwner:
		return a.BarbershopID == ap.BarbershopID
	}
	return false
}

func (a Actor) IsClientOf(ap *models.Appointment) bool {
	return a.Role == RoleClient && a.ID == ap.ClientID
}

func (a Actor) IsPartyTo(ap *models.Appointment) bool {
	return a.IsClientOf(ap) || a.IsProviderOf(ap)
}

func RequireProvider(a Actor, ap *models.Appointment) error {
	if !a.IsProviderOf(ap) {
		return apperr.Forbidden("provider_only")
	}
	return nil
}

func RequireParty(a Actor, ap *models.Appointment) error {
	if !a.IsPartyTo(ap) {
		return apperr.Forbidden("not_a_party")
	}
	return nil
}
