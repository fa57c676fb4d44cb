package controller

import (
	"net/http"
	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/folder"

	"github.com/labstack/echo/v4"
)

type FolderController struct {
	api     *echo.Group
	useCase folder.UseCase
}

func NewFolderController(api *echo.Group, useCase folder.UseCase) *FolderController {
	return &FolderController{api: api, useCase: useCase}
}

// InitFolderRoutes initializes folder routes
func (controller *FolderController) InitFolderRoutes() {
	controller.api.GET("/folders", controller.List)
	controller.api.POST("/folders", controller.Create)
	controller.api.PATCH("/folders/:id", controller.Update)
	controller.api.DELETE("/folders/:id", controller.Delete)
}

// List godoc
// @Summary List folders
// @Tags folders
// @Produce json
// @Success 200 {array} entity.Folder "Folders of the signed-in user"
// @Failure 401 {object} map[string]string "Not signed in"
// @Router /folders [get]
func (controller *FolderController) List(c echo.Context) error {
	folders, err := controller.useCase.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, folders)
}

// Create godoc
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Param folder body model.CreateFolderDTO true "Folder name and color"
// @Success 201 {object} entity.Folder "Created folder"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Not signed in"
// @Router /folders [post]
func (controller *FolderController) Create(c echo.Context) error {
	var dto model.CreateFolderDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	created, err := controller.useCase.Create(c.Request().Context(), middleware.IdentityFrom(c), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Rename or recolor a folder
// @Tags folders
// @Accept json
// @Produce json
// @Param id path string true "Folder id"
// @Param folder body model.UpdateFolderDTO true "Fields to change"
// @Success 200 {object} entity.Folder "Updated folder"
// @Success 204 "Nothing to update"
// @Failure 404 {object} map[string]string "Folder not found"
// @Router /folders/{id} [patch]
func (controller *FolderController) Update(c echo.Context) error {
	var dto model.UpdateFolderDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.Update(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	if updated == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a folder
// @Description The folder's todos are kept and moved out of it
// @Tags folders
// @Param id path string true "Folder id"
// @Success 204 "Folder deleted"
// @Failure 404 {object} map[string]string "Folder not found"
// @Router /folders/{id} [delete]
func (controller *FolderController) Delete(c echo.Context) error {
	if err := controller.useCase.Delete(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
