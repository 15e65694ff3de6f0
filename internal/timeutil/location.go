package timeutil

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o timezone canônico do deployment.
// Timezone inválido ou vazio cai no DefaultTimezone.
func Location(tz string) *time.Location {
	if IsValidTimezone(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func ParseDateIn(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

func ParseDateTimeIn(
	loc *time.Location,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		loc,
	)
}
