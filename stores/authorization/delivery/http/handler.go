package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/delivery"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/authorization"
	authMiddleware "github.com/specieverse/goapi/stores/auth/delivery/http/middleware"
)

type authorizationHandler struct {
	authorizations authorization.UseCase
}

func New(e *echo.Echo, uc authorization.UseCase, auth *authMiddleware.AuthMiddleware) {
	handler := &authorizationHandler{authorizations: uc}

	g := e.Group("/authorizations", auth.Auth())
	g.POST("/check", handler.check)
	g.POST("/grant", handler.grant)
	g.POST("/revoke", handler.revoke)
}

type params struct {
	Spender       domain.Address     `json:"spender" validate:"required"`
	TokenContract domain.Address     `json:"tokenContract" validate:"required"`
	ChainId       domain.ChainId     `json:"chainId" validate:"required"`
	Kind          authorization.Kind `json:"kind" validate:"required"`
}

func (h *authorizationHandler) bind(c echo.Context) (*authorization.Authorization, error) {
	p := &params{}
	if err := c.Bind(p); err != nil {
		return nil, err
	}
	if err := c.Validate(p); err != nil {
		return nil, err
	}
	return &authorization.Authorization{
		Owner:         c.Get("address").(domain.Address),
		Spender:       p.Spender,
		TokenContract: p.TokenContract,
		ChainId:       p.ChainId,
		Kind:          p.Kind,
	}, nil
}

func (h *authorizationHandler) check(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	candidate, err := h.bind(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ok, err := h.authorizations.Check(ctx, *candidate)
	if err != nil {
		ctx.WithField("err", err).Error("authorizations.Check failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Authorized bool `json:"authorized"`
	}{ok}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *authorizationHandler) grant(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	candidate, err := h.bind(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	txHash, err := h.authorizations.Grant(ctx, *candidate)
	if err == domain.ErrUserRejected {
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("authorizations.Grant failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusAccepted, txHash)
}

func (h *authorizationHandler) revoke(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	candidate, err := h.bind(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	txHash, err := h.authorizations.Revoke(ctx, *candidate)
	if err == domain.ErrUserRejected {
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("authorizations.Revoke failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusAccepted, txHash)
}
