package controller

import (
	"net/http"
	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/usecase/stats"

	"github.com/labstack/echo/v4"
)

type StatsController struct {
	api     *echo.Group
	useCase stats.UseCase
}

func NewStatsController(api *echo.Group, useCase stats.UseCase) *StatsController {
	return &StatsController{api: api, useCase: useCase}
}

// InitStatsRoutes initializes statistics routes
func (controller *StatsController) InitStatsRoutes() {
	controller.api.GET("/stats/weekly", controller.Weekly)
}

// Weekly godoc
// @Summary Weekly statistics
// @Description Completed todos per day for the last seven days, today included
// @Tags stats
// @Produce json
// @Success 200 {object} model.WeeklyStats "Weekly statistics"
// @Failure 401 {object} map[string]string "No identity"
// @Router /stats/weekly [get]
func (controller *StatsController) Weekly(c echo.Context) error {
	weekly, err := controller.useCase.GetWeeklyStats(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, weekly)
}
