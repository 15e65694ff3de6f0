package handlers

import (
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// Datas e horas chegam como "2006-01-02" e "15:04" no fuso do deployment.

func parseDate(loc *time.Location, dateStr string) (time.Time, error) {
	return timeutil.ParseDateIn(loc, dateStr)
}

func parseDateTime(
	loc *time.Location,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return timeutil.ParseDateTimeIn(loc, dateStr, timeStr)
}
