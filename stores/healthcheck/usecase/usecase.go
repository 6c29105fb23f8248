package usecase

import (
	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain/healthcheck"
)

type impl struct {
	repo healthcheck.Repo
}

func New(repo healthcheck.Repo) healthcheck.UseCase {
	return &impl{repo: repo}
}

func (im *impl) Check(context ctx.Ctx) error {
	return im.repo.Ping(context)
}
