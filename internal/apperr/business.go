package apperr

import (
	"errors"
	"fmt"
)

// ===============================
// Kinds
// ===============================

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindPolicyViolation   Kind = "policy_violation"
	KindSlotConflict      Kind = "slot_conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindInvalidVoucher    Kind = "invalid_voucher"
	KindForbidden         Kind = "forbidden"
	KindTransient         Kind = "transient"
	KindInvalidInput      Kind = "invalid_input"
)

// ErrRaceLost marca uma escrita que perdeu a corrida no commit
// (serialização, unique/exclusion). O caso de uso tenta de novo uma vez.
var ErrRaceLost = errors.New("concurrent write lost")

// ===============================
// BusinessError
// ===============================

type BusinessError struct {
	Kind Kind
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func NotFound(code string) error          { return ErrBusiness(KindNotFound, code) }
func PolicyViolation(code string) error   { return ErrBusiness(KindPolicyViolation, code) }
func SlotConflict(code string) error      { return ErrBusiness(KindSlotConflict, code) }
func InvalidTransition(code string) error { return ErrBusiness(KindInvalidTransition, code) }
func InvalidVoucher(code string) error    { return ErrBusiness(KindInvalidVoucher, code) }
func Forbidden(code string) error         { return ErrBusiness(KindForbidden, code) }
func InvalidInput(code string) error      { return ErrBusiness(KindInvalidInput, code) }

// Transient embrulha timeout/contenção do store; seguro para o chamador repetir.
func Transient(code string, cause error) error {
	return BusinessError{Kind: KindTransient, Code: code, Err: cause}
}

// ===============================
// Helpers
// ===============================

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf devolve "" para erros que não são de negócio (falha de infraestrutura).
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
