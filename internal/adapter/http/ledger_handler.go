package http

import (
	"net/http"

	"bankledger/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

// Amounts cross the wire as strings so nothing ever round-trips through a
// binary float.
type amountReq struct {
	Amount string `json:"amount" validate:"required,amount"`
}

type transferReq struct {
	ReceiverAccountNumber string `json:"receiver_account_number" validate:"required,max=20"`
	Amount                string `json:"amount" validate:"required,amount"`
}

type openAccountReq struct {
	AccountNumber string `json:"account_number" validate:"omitempty,max=20"`
	OwnerName     string `json:"owner_name" validate:"required,max=128"`
	OwnerEmail    string `json:"owner_email" validate:"required,email"`
}

func (h *LedgerHandler) OpenAccount(c echo.Context) error {
	var req openAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	acc, err := h.uc.OpenAccount(c.Request().Context(), ledger.OpenAccountInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, acc)
}

func (h *LedgerHandler) GetAccount(c echo.Context) error {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}
	acc, err := h.uc.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, acc)
}

func (h *LedgerHandler) Deposit(c echo.Context) error {
	accountID, amount, errResp := h.bindAmount(c)
	if errResp != nil {
		return errResp(c)
	}
	receipt, err := h.uc.Deposit(c.Request().Context(), accountID, amount)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *LedgerHandler) Withdraw(c echo.Context) error {
	accountID, amount, errResp := h.bindAmount(c)
	if errResp != nil {
		return errResp(c)
	}
	receipt, err := h.uc.Withdraw(c.Request().Context(), accountID, amount)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *LedgerHandler) Transfer(c echo.Context) error {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}
	var req transferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
	}
	receipt, err := h.uc.Transfer(c.Request().Context(), accountID, req.ReceiverAccountNumber, amount)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *LedgerHandler) RequestLoan(c echo.Context) error {
	accountID, amount, errResp := h.bindAmount(c)
	if errResp != nil {
		return errResp(c)
	}
	receipt, err := h.uc.RequestLoan(c.Request().Context(), accountID, amount)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *LedgerHandler) RepayLoan(c echo.Context) error {
	txID := c.Param("tx_id")
	if len(txID) != 32 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tx_id"})
	}
	receipt, err := h.uc.RepayLoan(c.Request().Context(), txID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}

// bindAmount handles the shared path-param + amount-body shape of deposit,
// withdraw and loan-request. On failure it returns the response writer to
// invoke; on success the parsed values.
func (h *LedgerHandler) bindAmount(c echo.Context) (uint64, decimal.Decimal, func(echo.Context) error) {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return 0, decimal.Zero, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
		}
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return 0, decimal.Zero, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
	}
	if err := c.Validate(&req); err != nil {
		details := ToFieldErrors(err)
		return 0, decimal.Zero, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: details})
		}
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return 0, decimal.Zero, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
		}
	}
	return accountID, amount, nil
}
