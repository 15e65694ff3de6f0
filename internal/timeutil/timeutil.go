package timeutil

import (
	"fmt"
	"time"
)

// StartOfDay devolve a meia-noite do dia de t, no timezone de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// IsSameDay compara o dia civil de b no timezone de a.
func IsSameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func IsBefore(a, b time.Time) bool {
	return a.Before(b)
}

// Overlaps testa sobreposição de intervalos semiabertos [aStart, aEnd) e [bStart, bEnd).
// Encostados (aEnd == bStart) não se sobrepõem.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func TruncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// ParseHM converte "HH:MM" em deslocamento a partir da meia-noite.
func ParseHM(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid HH:MM %q: %w", hm, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func FormatHM(t time.Time) string {
	return t.Format("15:04")
}

// AtOffset devolve o instante no dia de day (no timezone loc) deslocado por offset.
// Usa hora de parede, então dias com troca de horário continuam corretos.
func AtOffset(day time.Time, offset time.Duration, loc *time.Location) time.Time {
	d := day.In(loc)
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc)
}
