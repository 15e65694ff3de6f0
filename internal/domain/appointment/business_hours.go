package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// BusinessHours é configuração do deployment, não do barbeiro.
type BusinessHours struct {
	Open     time.Duration
	Close    time.Duration
	Step     time.Duration
	Location *time.Location
}

func NewBusinessHours(
	open string,
	close string,
	stepMinutes int,
	loc *time.Location,
) (BusinessHours, error) {

	o, err := timeutil.ParseHM(open)
	if err != nil {
		return BusinessHours{}, err
	}

	c, err := timeutil.ParseHM(close)
	if err != nil {
		return BusinessHours{}, err
	}

	if c <= o {
		return BusinessHours{}, fmt.Errorf("close %s must be after open %s", close, open)
	}
	if stepMinutes <= 0 {
		return BusinessHours{}, fmt.Errorf("slot step must be positive, got %d", stepMinutes)
	}
	if loc == nil {
		loc = time.UTC
	}

	return BusinessHours{
		Open:     o,
		Close:    c,
		Step:     time.Duration(stepMinutes) * time.Minute,
		Location: loc,
	}, nil
}

// Window devolve abertura e fechamento do dia civil de day.
func (h BusinessHours) Window(day time.Time) (time.Time, time.Time) {
	d := day.In(h.Location)
	return timeutil.AtOffset(d, h.Open, h.Location), timeutil.AtOffset(d, h.Close, h.Location)
}

// Contains diz se [start, start+duration) cabe inteiro no expediente do dia de start.
func (h BusinessHours) Contains(start time.Time, duration time.Duration) bool {
	open, close := h.Window(start)
	end := start.Add(duration)
	return !start.Before(open) && !end.After(close)
}

// Candidates enumera os inícios alinhados ao passo entre a abertura e
// close-duration. Um serviço que passaria do fechamento nunca é emitido.
func (h BusinessHours) Candidates(day time.Time, duration time.Duration) []time.Time {
	if duration <= 0 {
		return nil
	}

	open, close := h.Window(day)

	var out []time.Time
	for cur := open; !cur.Add(duration).After(close); cur = cur.Add(h.Step) {
		out = append(out, cur)
	}
	return out
}
