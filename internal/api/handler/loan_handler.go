package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/api/metrics"
	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

type LoanHandler struct {
	service ports.LoanService
}

func NewLoanHandler(service ports.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

var errInvalidLoanPayload = domain.NewError(domain.KindValidation, "Datos de préstamo inválidos")

// Create records a loan for the authenticated user.
//
// @Summary      Record a loan
// @Tags         prestamos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordLoanRequest  true  "Loan"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /api/prestamos [post]
func (h *LoanHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req recordLoanRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidLoanPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.service.RecordLoan(c.Request().Context(), caller, *req.BookID, req.ReadingDuration); err != nil {
		return err
	}

	metrics.LoansRecordedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Préstamo registrado"})
}

// List returns the caller's loans, most recent first.
//
// @Summary      List my loans
// @Tags         prestamos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.LoanWithBook
// @Failure      401  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/prestamos [get]
func (h *LoanHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	loans, err := h.service.ListLoans(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loans)
}
