package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

// Códigos SQLSTATE que o agendamento trata de forma especial.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgQueryCanceled        = "57014"
	pgLockNotAvailable     = "55P03"
)

// mapError traduz erros do gorm/pgx para o vocabulário do domínio.
// notFound é o código usado quando o registro não existe ("" mantém o erro cru).
func mapError(err error, notFound string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != "" {
		return apperr.NotFound(notFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation, pgExclusionViolation:
			return fmt.Errorf("%w: %s", apperr.ErrRaceLost, pgErr.Code)
		case pgQueryCanceled, pgLockNotAvailable:
			return apperr.Transient("store_contention", err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Transient("store_timeout", err)
	}

	return err
}
