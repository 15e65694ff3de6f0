package appointment

// UseCases agrupa os casos de uso montados sobre as mesmas dependências.
type UseCases struct {
	Create            *CreateAppointment
	Reschedule        *RescheduleAppointment
	Cancel            *CancelAppointment
	Confirm           *ConfirmAppointment
	Complete          *CompleteAppointment
	MarkNoShow        *MarkNoShow
	Get               *GetAppointment
	GetAvailability   *GetAvailability
	CheckAvailability *CheckAvailability
	ListByDate        *ListAppointmentsByDate
	ListByMonth       *ListAppointmentsByMonth
}

func NewUseCases(deps Deps) *UseCases {
	return &UseCases{
		Create:            NewCreateAppointment(deps),
		Reschedule:        NewRescheduleAppointment(deps),
		Cancel:            NewCancelAppointment(deps),
		Confirm:           NewConfirmAppointment(deps),
		Complete:          NewCompleteAppointment(deps),
		MarkNoShow:        NewMarkNoShow(deps),
		Get:               NewGetAppointment(deps),
		GetAvailability:   NewGetAvailability(deps),
		CheckAvailability: NewCheckAvailability(deps),
		ListByDate:        NewListAppointmentsByDate(deps),
		ListByMonth:       NewListAppointmentsByMonth(deps),
	}
}
