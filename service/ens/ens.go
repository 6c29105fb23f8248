package ens

import (
	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
)

type ENS interface {
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}
