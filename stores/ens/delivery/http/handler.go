package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/delivery"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/service/ens"
)

type handler struct {
	ens ens.ENS
}

func New(e *echo.Echo, ens ens.ENS) {
	h := &handler{ens}

	g := e.Group("/ens")
	g.GET("/resolve/:name", h.resolve)
	g.GET("/reverse-resolve/:address", h.reverseResolve)
}

func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	address, err := h.ens.Resolve(ctx, c.Param("name"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, address)
}

func (h *handler) reverseResolve(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	name, err := h.ens.ReverseResolve(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, name)
}
