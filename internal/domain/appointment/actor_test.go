package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

func TestActorRoles(t *testing.T) {
	ap := &models.Appointment{BarbershopID: 1, BarberID: 10, ClientID: 20}

	cases := []struct {
		name     string
		actor    Actor
		provider bool
		party    bool
	}{
		{"own barber", Actor{ID: 10, Role: models.RoleBarber, BarbershopID: 1}, true, true},
		{"other barber", Actor{ID: 11, Role: models.RoleBarber, BarbershopID: 1}, false, false},
		{"shop owner", Actor{ID: 1, Role: models.RoleOwner, BarbershopID: 1}, true, true},
		{"other shop owner", Actor{ID: 1, Role: models.RoleOwner, BarbershopID: 2}, false, false},
		{"client", Actor{ID: 20, Role: RoleClient, BarbershopID: 1}, false, true},
		{"other client", Actor{ID: 21, Role: RoleClient, BarbershopID: 1}, false, false},
		{"client id matching barber", Actor{ID: 10, Role: RoleClient, BarbershopID: 1}, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.provider, tc.actor.IsProviderOf(ap))
			assert.Equal(t, tc.party, tc.actor.IsPartyTo(ap))
		})
	}
}

func TestRequireProvider(t *testing.T) {
	ap := &models.Appointment{BarbershopID: 1, BarberID: 10, ClientID: 20}

	err := RequireProvider(Actor{ID: 20, Role: RoleClient}, ap)

	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}
