package controller

import (
	"net/http"
	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"

	"github.com/labstack/echo/v4"
)

type TodoController struct {
	api     *echo.Group
	useCase todo.UseCase
}

func NewTodoController(api *echo.Group, useCase todo.UseCase) *TodoController {
	return &TodoController{api: api, useCase: useCase}
}

// InitTodoRoutes initializes todo and sub-todo routes
func (controller *TodoController) InitTodoRoutes() {
	controller.api.GET("/todos", controller.List)
	controller.api.POST("/todos", controller.Create)
	controller.api.POST("/todos/parse", controller.Parse)
	controller.api.GET("/todos/trash", controller.ListDeleted)
	controller.api.PUT("/todos/reorder", controller.Reorder)
	controller.api.PATCH("/todos/:id", controller.Update)
	controller.api.PUT("/todos/:id/toggle", controller.Toggle)
	controller.api.DELETE("/todos/:id", controller.Delete)
	controller.api.POST("/todos/:id/restore", controller.Restore)
	controller.api.DELETE("/todos/:id/permanent", controller.DeletePermanently)

	controller.api.POST("/todos/:id/sub-todos", controller.CreateSubTodo)
	controller.api.PUT("/todos/:id/sub-todos/reorder", controller.ReorderSubTodos)
	controller.api.PATCH("/sub-todos/:id", controller.UpdateSubTodo)
	controller.api.PUT("/sub-todos/:id/toggle", controller.ToggleSubTodo)
	controller.api.DELETE("/sub-todos/:id", controller.DeleteSubTodo)
}

// List godoc
// @Summary List todos
// @Description List the caller's active todos with folder details and ordered sub-todos
// @Tags todos
// @Produce json
// @Param folderId query string false "Only todos in this folder"
// @Param X-Guest-ID header string false "Guest id when not signed in"
// @Success 200 {array} entity.Todo "Active todos"
// @Failure 401 {object} map[string]string "No identity"
// @Router /todos [get]
func (controller *TodoController) List(c echo.Context) error {
	todos, err := controller.useCase.List(c.Request().Context(), middleware.IdentityFrom(c), optionalQuery(c, "folderId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, todos)
}

// ListDeleted godoc
// @Summary List trash
// @Description List the caller's soft-deleted todos, most recently deleted first
// @Tags todos
// @Produce json
// @Success 200 {array} entity.Todo "Deleted todos"
// @Failure 401 {object} map[string]string "No identity"
// @Router /todos/trash [get]
func (controller *TodoController) ListDeleted(c echo.Context) error {
	todos, err := controller.useCase.ListDeleted(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, todos)
}

// Create godoc
// @Summary Create a todo
// @Description Create a todo. With parseDate a relative date phrase in the content becomes the due date.
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body model.CreateTodoDTO true "Todo creation data"
// @Success 201 {object} entity.Todo "Created todo"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "No identity"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /todos [post]
func (controller *TodoController) Create(c echo.Context) error {
	var dto model.CreateTodoDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	created, err := controller.useCase.Create(c.Request().Context(), middleware.IdentityFrom(c), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Parse godoc
// @Summary Extract a due date
// @Description Split free text into content and a due date parsed from relative Korean date phrases
// @Tags todos
// @Accept json
// @Produce json
// @Param text body model.ParseContentDTO true "Text to parse"
// @Success 200 {object} model.ParsedContentDTO "Parsed content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /todos/parse [post]
func (controller *TodoController) Parse(c echo.Context) error {
	var dto model.ParseContentDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}
	return c.JSON(http.StatusOK, controller.useCase.ParseContent(dto.Text))
}

// Update godoc
// @Summary Update a todo
// @Description Apply the given fields. An empty patch changes nothing and returns 204.
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo id"
// @Param patch body model.TodoPatch true "Fields to change"
// @Success 200 {object} entity.Todo "Updated todo"
// @Success 204 "Nothing to update"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id} [patch]
func (controller *TodoController) Update(c echo.Context) error {
	var patch model.TodoPatch
	if err := c.Bind(&patch); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.Update(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), patch)
	if err != nil {
		return errorResponse(c, err)
	}
	if updated == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, updated)
}

// Toggle godoc
// @Summary Toggle completion
// @Description Set the completion state. Completing a recurring todo creates its next occurrence.
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo id"
// @Param state body model.ToggleDTO true "New completion state"
// @Success 200 {object} entity.Todo "Updated todo"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id}/toggle [put]
func (controller *TodoController) Toggle(c echo.Context) error {
	var dto model.ToggleDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.Toggle(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), dto.IsCompleted)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Move a todo to the trash
// @Tags todos
// @Param id path string true "Todo id"
// @Success 204 "Todo moved to the trash"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id} [delete]
func (controller *TodoController) Delete(c echo.Context) error {
	if err := controller.useCase.Delete(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Restore godoc
// @Summary Restore a todo from the trash
// @Tags todos
// @Param id path string true "Todo id"
// @Success 204 "Todo restored"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id}/restore [post]
func (controller *TodoController) Restore(c echo.Context) error {
	if err := controller.useCase.Restore(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePermanently godoc
// @Summary Delete a todo and its sub-todos for good
// @Tags todos
// @Param id path string true "Todo id"
// @Success 204 "Todo deleted"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id}/permanent [delete]
func (controller *TodoController) DeletePermanently(c echo.Context) error {
	if err := controller.useCase.DeletePermanently(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Reorder godoc
// @Summary Reorder todos
// @Description Apply all order values at once
// @Tags todos
// @Accept json
// @Param items body model.ReorderDTO true "New order values"
// @Success 204 "Todos reordered"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /todos/reorder [put]
func (controller *TodoController) Reorder(c echo.Context) error {
	var dto model.ReorderDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	if err := controller.useCase.Reorder(c.Request().Context(), middleware.IdentityFrom(c), dto.Items); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateSubTodo godoc
// @Summary Add a sub-todo
// @Tags sub-todos
// @Accept json
// @Produce json
// @Param id path string true "Parent todo id"
// @Param subTodo body model.CreateSubTodoDTO true "Sub-todo creation data"
// @Success 201 {object} entity.SubTodo "Created sub-todo"
// @Failure 404 {object} map[string]string "Parent todo not found"
// @Router /todos/{id}/sub-todos [post]
func (controller *TodoController) CreateSubTodo(c echo.Context) error {
	var dto model.CreateSubTodoDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	created, err := controller.useCase.CreateSubTodo(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ReorderSubTodos godoc
// @Summary Reorder the sub-todos of a todo
// @Tags sub-todos
// @Accept json
// @Param id path string true "Parent todo id"
// @Param items body model.ReorderDTO true "New order values"
// @Success 204 "Sub-todos reordered"
// @Router /todos/{id}/sub-todos/reorder [put]
func (controller *TodoController) ReorderSubTodos(c echo.Context) error {
	var dto model.ReorderDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	if err := controller.useCase.ReorderSubTodos(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), dto.Items); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateSubTodo godoc
// @Summary Update a sub-todo
// @Tags sub-todos
// @Accept json
// @Produce json
// @Param id path string true "Sub-todo id"
// @Param patch body model.SubTodoPatch true "Fields to change"
// @Success 200 {object} entity.SubTodo "Updated sub-todo"
// @Success 204 "Nothing to update"
// @Failure 404 {object} map[string]string "Sub-todo not found"
// @Router /sub-todos/{id} [patch]
func (controller *TodoController) UpdateSubTodo(c echo.Context) error {
	var patch model.SubTodoPatch
	if err := c.Bind(&patch); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.UpdateSubTodo(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), patch)
	if err != nil {
		return errorResponse(c, err)
	}
	if updated == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, updated)
}

// ToggleSubTodo godoc
// @Summary Toggle sub-todo completion
// @Tags sub-todos
// @Accept json
// @Produce json
// @Param id path string true "Sub-todo id"
// @Param state body model.ToggleDTO true "New completion state"
// @Success 200 {object} entity.SubTodo "Updated sub-todo"
// @Failure 404 {object} map[string]string "Sub-todo not found"
// @Router /sub-todos/{id}/toggle [put]
func (controller *TodoController) ToggleSubTodo(c echo.Context) error {
	var dto model.ToggleDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.ToggleSubTodo(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), dto.IsCompleted)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteSubTodo godoc
// @Summary Delete a sub-todo
// @Tags sub-todos
// @Param id path string true "Sub-todo id"
// @Success 204 "Sub-todo deleted"
// @Failure 404 {object} map[string]string "Sub-todo not found"
// @Router /sub-todos/{id} [delete]
func (controller *TodoController) DeleteSubTodo(c echo.Context) error {
	if err := controller.useCase.DeleteSubTodo(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
