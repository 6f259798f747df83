package http

import (
	"errors"
	"net/http"

	"bankledger/internal/domain/account"
	"bankledger/internal/domain/transaction"
	"bankledger/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

// statusFor maps engine and domain errors to HTTP statuses. Every kind is
// recoverable; nothing here is a 500 unless it is genuinely unexpected.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transaction.ErrAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrLoanLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrBankSuspended),
		errors.Is(err, ledger.ErrContention):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
