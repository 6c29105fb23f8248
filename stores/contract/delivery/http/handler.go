package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/delivery"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/contract"
)

type contractHandler struct {
	contracts contract.Repo
}

func New(e *echo.Echo, contracts contract.Repo) {
	handler := &contractHandler{contracts: contracts}

	g := e.Group("/contracts")
	g.GET("", handler.list)
	g.GET("/:chainId/:name", handler.resolve)
}

func (h *contractHandler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId domain.ChainId `query:"chainId"`
	}
	p := &params{ChainId: 1}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.contracts.FindAll(ctx, p.ChainId)
	if err != nil {
		ctx.WithField("err", err).Error("contracts.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *contractHandler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	chainId, err := strconv.ParseInt(c.Param("chainId"), 10, 32)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidChainId)
	}

	res, err := h.contracts.Resolve(ctx, domain.ChainId(chainId), c.Param("name"))
	if err == domain.ErrUnknownContract {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("contracts.Resolve failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
