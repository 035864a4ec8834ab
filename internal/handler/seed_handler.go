package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microlend/internal/errors"
	"microlend/internal/service"
)

// SeedHandler exposes demo-data seeding as an explicit endpoint. Seeding is
// never triggered by listing borrowers.
type SeedHandler struct {
	borrowerService service.BorrowerService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(borrowerService service.BorrowerService) *SeedHandler {
	return &SeedHandler{borrowerService: borrowerService}
}

// SeedBorrowersResponse represents the seed response.
type SeedBorrowersResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedBorrowers godoc
// @Summary Seed demo borrowers (no-op when 20 or more rows exist)
// @Tags seed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SeedBorrowersResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/borrowers [post]
func (h *SeedHandler) SeedBorrowers(c echo.Context) error {
	count, err := h.borrowerService.Seed(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, SeedBorrowersResponse{
		Message: "borrowers seeded",
		Count:   count,
	})
}
