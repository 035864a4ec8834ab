package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"microlend/internal/errors"
	"microlend/internal/model"
	"microlend/internal/service"
)

// BorrowerHandler handles borrower CRUD endpoints.
type BorrowerHandler struct {
	borrowerService service.BorrowerService
}

// NewBorrowerHandler creates a new borrower handler.
func NewBorrowerHandler(borrowerService service.BorrowerService) *BorrowerHandler {
	return &BorrowerHandler{borrowerService: borrowerService}
}

// CreateBorrowerRequest represents a borrower creation request. LoanAmount
// arrives as a string so decimal parsing stays exact.
type CreateBorrowerRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	LoanAmount string `json:"loan_amount" validate:"required"`
	Status     string `json:"status"`
}

// UpdateBorrowerRequest represents a partial borrower update; absent fields
// keep their prior value.
type UpdateBorrowerRequest struct {
	Name       *string `json:"name"`
	LoanAmount *string `json:"loan_amount"`
	Status     *string `json:"status"`
}

// DashboardResponse reports portfolio-level aggregates for the landing page.
type DashboardResponse struct {
	TotalBorrowers int64  `json:"total_borrowers"`
	TotalLoans     string `json:"total_loans"`
}

// Dashboard godoc
// @Summary Portfolio summary: borrower count and total loan volume
// @Tags borrowers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *BorrowerHandler) Dashboard(c echo.Context) error {
	count, total, err := h.borrowerService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, DashboardResponse{
		TotalBorrowers: count,
		TotalLoans:     total.String(),
	})
}

// ListBorrowers godoc
// @Summary List all borrowers
// @Tags borrowers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Borrower
// @Failure 500 {object} errors.ErrorResponse
// @Router /borrowers [get]
func (h *BorrowerHandler) ListBorrowers(c echo.Context) error {
	borrowers, err := h.borrowerService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, borrowers)
}

// GetBorrower godoc
// @Summary Get borrower by id
// @Tags borrowers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrower ID"
// @Success 200 {object} model.Borrower
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /borrowers/{id} [get]
func (h *BorrowerHandler) GetBorrower(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	borrower, err := h.borrowerService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, borrower)
}

// CreateBorrower godoc
// @Summary Create a borrower
// @Tags borrowers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBorrowerRequest true "Borrower data"
// @Success 201 {object} model.Borrower
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /borrowers [post]
func (h *BorrowerHandler) CreateBorrower(c echo.Context) error {
	var req CreateBorrowerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.LoanAmount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidLoanAmount)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	borrower, err := h.borrowerService.Create(c.Request().Context(), req.Name, amount, model.BorrowerStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, borrower)
}

// UpdateBorrower godoc
// @Summary Update a borrower (partial)
// @Tags borrowers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrower ID"
// @Param request body UpdateBorrowerRequest true "Fields to update"
// @Success 200 {object} model.Borrower
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /borrowers/{id} [put]
func (h *BorrowerHandler) UpdateBorrower(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateBorrowerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	update := service.BorrowerUpdate{Name: req.Name}
	if req.LoanAmount != nil {
		amount, err := decimal.NewFromString(*req.LoanAmount)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(errors.ErrInvalidLoanAmount)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		update.LoanAmount = &amount
	}
	if req.Status != nil {
		status := model.BorrowerStatus(*req.Status)
		update.Status = &status
	}

	borrower, err := h.borrowerService.Update(c.Request().Context(), id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, borrower)
}

// DeleteBorrower godoc
// @Summary Delete a borrower
// @Tags borrowers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrower ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /borrowers/{id} [delete]
func (h *BorrowerHandler) DeleteBorrower(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.borrowerService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "borrower deleted",
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid borrower ID",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
