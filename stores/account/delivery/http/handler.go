package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/delivery"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/account"
	"github.com/specieverse/goapi/middleware"
)

type accountHandler struct {
	activities account.ActivityRepo
}

func New(e *echo.Echo, activities account.ActivityRepo) {
	handler := &accountHandler{activities: activities}

	g := e.Group("/account/:address", middleware.IsValidAddress("address"))
	g.GET("/activities", handler.listActivities)
}

func (h *accountHandler) listActivities(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId *domain.ChainId        `query:"chainId"`
		Types   []account.ActivityType `query:"type"`
		Offset  int32                  `query:"offset"`
		Limit   int32                  `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if p.Limit == 0 {
		p.Limit = 50
	}

	opts := []account.FindActivityOptionsFunc{
		account.WithAccount(domain.Address(c.Param("address"))),
		account.WithPagination(p.Offset, p.Limit),
	}
	if p.ChainId != nil {
		opts = append(opts, account.WithChainId(*p.ChainId))
	}
	if len(p.Types) > 0 {
		opts = append(opts, account.WithTypes(p.Types...))
	}

	res, err := h.activities.FindActivities(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("activities.FindActivities failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
