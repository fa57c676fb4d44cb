package controller

import (
	"net/http"
	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/settings"

	"github.com/labstack/echo/v4"
)

type SettingsController struct {
	api     *echo.Group
	useCase settings.UseCase
}

func NewSettingsController(api *echo.Group, useCase settings.UseCase) *SettingsController {
	return &SettingsController{api: api, useCase: useCase}
}

// InitSettingsRoutes initializes user settings routes
func (controller *SettingsController) InitSettingsRoutes() {
	controller.api.GET("/settings", controller.Get)
	controller.api.PUT("/settings", controller.Upsert)
}

// Get godoc
// @Summary Get notification settings
// @Tags settings
// @Produce json
// @Success 200 {object} entity.UserSettings "Stored or default settings"
// @Failure 401 {object} map[string]string "Not signed in"
// @Router /settings [get]
func (controller *SettingsController) Get(c echo.Context) error {
	userSettings, err := controller.useCase.Get(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, userSettings)
}

// Upsert godoc
// @Summary Save notification settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body model.UpdateSettingsDTO true "Settings"
// @Success 200 {object} entity.UserSettings "Saved settings"
// @Failure 400 {object} map[string]string "Invalid time"
// @Failure 401 {object} map[string]string "Not signed in"
// @Router /settings [put]
func (controller *SettingsController) Upsert(c echo.Context) error {
	var dto model.UpdateSettingsDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	saved, err := controller.useCase.Upsert(c.Request().Context(), middleware.IdentityFrom(c), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}
