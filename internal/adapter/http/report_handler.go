package http

import (
	"net/http"
	"time"

	"bankledger/internal/domain/transaction"
	"bankledger/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

const dateLayout = "2006-01-02"

// Report serves GET /accounts/:account_id/report. start_date and end_date
// come as YYYY-MM-DD and must be supplied together; the range covers both
// days in full.
func (h *ReportHandler) Report(c echo.Context) error {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}

	startStr := c.QueryParam("start_date")
	endStr := c.QueryParam("end_date")
	var rng *transaction.Range
	switch {
	case startStr == "" && endStr == "":
		// no range: full ledger, live balance
	case startStr == "" || endStr == "":
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date and end_date must be supplied together"})
	default:
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
		}
		if end.Before(start) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date is before start_date"})
		}
		rng = &transaction.Range{
			From: start,
			To:   end.AddDate(0, 0, 1).Add(-time.Nanosecond),
		}
	}

	out, err := h.uc.Report(c.Request().Context(), accountID, rng)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) LoanList(c echo.Context) error {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}
	loans, err := h.uc.LoanList(c.Request().Context(), accountID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}
