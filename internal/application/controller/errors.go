package controller

import (
	"errors"
	"net/http"
	"todo-api/internal/domain/model"
	"todo-api/pkg/msg"

	"github.com/labstack/echo/v4"
)

// errorResponse maps domain errors to their HTTP status with a {"error": "..."} body
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := msg.GetMessage("app.error.operation-failed")

	switch {
	case errors.Is(err, model.ErrUnauthorized):
		status, message = http.StatusUnauthorized, model.UserMessage(err)
	case errors.Is(err, model.ErrValidation):
		status, message = http.StatusBadRequest, model.UserMessage(err)
	case errors.Is(err, model.ErrNotFound):
		status, message = http.StatusNotFound, model.UserMessage(err)
	case errors.Is(err, model.ErrOperationFailed):
		message = model.UserMessage(err)
	}

	return c.JSON(status, map[string]string{"error": message})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("app.error.invalid-body")})
}

func optionalQuery(c echo.Context, name string) *string {
	value := c.QueryParam(name)
	if value == "" {
		return nil
	}
	return &value
}
