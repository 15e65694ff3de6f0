package appointment

import "time"

type AvailabilityInput struct {
	BarberID  uint
	ProductID uint
	Date      time.Time
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
