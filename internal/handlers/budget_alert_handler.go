package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// BudgetAlertHandler reports whether the monthly budget has been reached.
type BudgetAlertHandler struct {
	budgetAlertService services.BudgetAlertServicer
}

// NewBudgetAlertHandler creates a new BudgetAlertHandler.
func NewBudgetAlertHandler(budgetAlertService services.BudgetAlertServicer) *BudgetAlertHandler {
	return &BudgetAlertHandler{budgetAlertService: budgetAlertService}
}

// GetBudgetAlert evaluates a month's spending against the user's limit
// @Summary     Budget alert
// @Description Compare a month's active expenses with the monthly budget limit. Defaults to the current month.
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month 1-12"
// @Param       year  query int false "Four-digit year"
// @Success     200 {object} services.BudgetAlert "Alert"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget-alert [get]
func (h *BudgetAlertHandler) GetBudgetAlert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := optionalInt(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, err := optionalInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alert, err := h.budgetAlertService.CheckBudget(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key)
	}
	return n, nil
}
