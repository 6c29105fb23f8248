package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/delivery"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/exchange"
	"github.com/specieverse/goapi/domain/order"
	authMiddleware "github.com/specieverse/goapi/stores/auth/delivery/http/middleware"
)

type exchangeHandler struct {
	exchange exchange.UseCase
}

func New(e *echo.Echo, uc exchange.UseCase, auth *authMiddleware.AuthMiddleware) {
	handler := &exchangeHandler{exchange: uc}

	g := e.Group("/exchange")
	g.POST("/intents", handler.submitIntent, auth.Auth())
	g.GET("/orders", handler.listOrders)
	g.GET("/orders/:id", handler.getOrder)
	g.GET("/bids", handler.listBids)
	g.GET("/bids/:id", handler.getBid)
	g.GET("/settlements", handler.settlements)
}

func (h *exchangeHandler) submitIntent(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := &exchange.Intent{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	outcome, err := h.exchange.SubmitIntent(ctx, caller, *p)
	if err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("exchange.SubmitIntent failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	status := http.StatusOK
	switch outcome.Kind {
	case exchange.OutcomeSubmitted:
		status = http.StatusAccepted
	case exchange.OutcomeAuthorizationRequired:
		status = http.StatusPreconditionFailed
	case exchange.OutcomeRejected:
		status = http.StatusConflict
	}
	return delivery.MakeJsonResp(c, status, outcome)
}

func (h *exchangeHandler) listOrders(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId         *domain.ChainId `query:"chainId"`
		ContractAddress *domain.Address `query:"contract"`
		TokenId         *domain.TokenId `query:"tokenId"`
		Seller          *domain.Address `query:"seller"`
		Statuses        []order.Status  `query:"status"`
		Offset          int32           `query:"offset"`
		Limit           int32           `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if p.Limit == 0 {
		p.Limit = 50
	}

	opts := []order.FindAllOptionsFunc{order.WithPagination(p.Offset, p.Limit)}
	if p.ChainId != nil && p.ContractAddress != nil && p.TokenId != nil {
		opts = append(opts, order.WithAssetId(asset.Id{
			ChainId:         *p.ChainId,
			ContractAddress: *p.ContractAddress,
			TokenId:         *p.TokenId,
		}))
	} else if p.ChainId != nil {
		opts = append(opts, order.WithChainId(*p.ChainId))
	}
	if p.Seller != nil {
		opts = append(opts, order.WithSeller(*p.Seller))
	}
	if len(p.Statuses) > 0 {
		opts = append(opts, order.WithStatuses(p.Statuses...))
	}

	res, err := h.exchange.ListOrders(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("exchange.ListOrders failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *exchangeHandler) getOrder(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	res, err := h.exchange.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *exchangeHandler) listBids(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId         *domain.ChainId `query:"chainId"`
		ContractAddress *domain.Address `query:"contract"`
		TokenId         *domain.TokenId `query:"tokenId"`
		Bidder          *domain.Address `query:"bidder"`
		Statuses        []bid.Status    `query:"status"`
		Offset          int32           `query:"offset"`
		Limit           int32           `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if p.Limit == 0 {
		p.Limit = 50
	}

	opts := []bid.FindAllOptionsFunc{bid.WithPagination(p.Offset, p.Limit)}
	if p.ChainId != nil && p.ContractAddress != nil && p.TokenId != nil {
		opts = append(opts, bid.WithAssetId(asset.Id{
			ChainId:         *p.ChainId,
			ContractAddress: *p.ContractAddress,
			TokenId:         *p.TokenId,
		}))
	} else if p.ChainId != nil {
		opts = append(opts, bid.WithChainId(*p.ChainId))
	}
	if p.Bidder != nil {
		opts = append(opts, bid.WithBidder(*p.Bidder))
	}
	if len(p.Statuses) > 0 {
		opts = append(opts, bid.WithStatuses(p.Statuses...))
	}

	res, err := h.exchange.ListBids(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("exchange.ListBids failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *exchangeHandler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	res, err := h.exchange.GetBid(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
