package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// ===============================
// Business errors
// ===============================

var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindPolicyViolation:   http.StatusUnprocessableEntity,
	apperr.KindSlotConflict:      http.StatusConflict,
	apperr.KindInvalidTransition: http.StatusConflict,
	apperr.KindInvalidVoucher:    http.StatusUnprocessableEntity,
	apperr.KindForbidden:         http.StatusForbidden,
	apperr.KindTransient:         http.StatusServiceUnavailable,
	apperr.KindInvalidInput:      http.StatusBadRequest,
}

var messageByKind = map[apperr.Kind]string{
	apperr.KindNotFound:          "recurso não encontrado",
	apperr.KindPolicyViolation:   "regra da barbearia não permite esta operação",
	apperr.KindSlotConflict:      "horário indisponível",
	apperr.KindInvalidTransition: "o agendamento não pode mudar para este estado",
	apperr.KindInvalidVoucher:    "voucher inválido",
	apperr.KindForbidden:         "sem permissão para esta operação",
	apperr.KindTransient:         "serviço temporariamente indisponível, tente novamente",
	apperr.KindInvalidInput:      "dados inválidos",
}

// FromError responde com o status do kind. Erros de infraestrutura viram 500
// sem detalhe; o erro cru só vai para o log.
func FromError(c *gin.Context, err error) {
	var be apperr.BusinessError
	if errors.As(err, &be) {
		status, ok := statusByKind[be.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		if be.Kind == apperr.KindTransient {
			c.Header("Retry-After", "1")
			slog.Warn("transient failure", "path", c.FullPath(), "err", err)
		}
		Write(c, status, be.Code, messageByKind[be.Kind])
		return
	}

	slog.Error("unhandled error", "path", c.FullPath(), "err", err)
	Internal(c, "internal_error", "erro interno")
}
