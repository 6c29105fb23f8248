package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck healthcheck.UseCase
}

func New(e *echo.Echo, us healthcheck.UseCase) {
	handler := &healthCheckHandler{healthCheck: us}
	g := e.Group("/health")
	g.GET("", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"healthy": "ok",
	})
}
