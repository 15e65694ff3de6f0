// Package httpresp padroniza as respostas de sucesso. Erros ficam em httperr.
package httpresp

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// ===============================
// Slots
// ===============================

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"` // HH:MM no fuso da barbearia
}

type SlotsResponse struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
	Total int    `json:"total"`
}

func Slots(c *gin.Context, date string, slots []domain.TimeSlot) {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{Start: s.Start, End: s.End, Label: timeutil.FormatHM(s.Start)})
	}
	c.JSON(http.StatusOK, SlotsResponse{Date: date, Slots: out, Total: len(out)})
}
