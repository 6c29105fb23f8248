package healthcheck

import (
	"github.com/specieverse/goapi/base/ctx"
)

type Repo interface {
	Ping(ctx ctx.Ctx) error
}

type UseCase interface {
	Check(ctx ctx.Ctx) error
}
