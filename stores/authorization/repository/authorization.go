package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/authorization"
	"github.com/specieverse/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) authorization.Repo {
	return &impl{q}
}

// selector keys the grant on its full tuple so a re-grant replaces the
// previous row instead of duplicating.
func selector(a authorization.Authorization) bson.M {
	return bson.M{
		"owner":         a.Owner,
		"spender":       a.Spender,
		"tokenContract": a.TokenContract,
		"chainId":       a.ChainId,
		"kind":          a.Kind,
	}
}

func (im *impl) makeQuery(opts ...authorization.FindAllOptionsFunc) (bson.M, error) {
	options, err := authorization.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.Owner != nil {
		qry["owner"] = *options.Owner
	}

	if options.ChainId != nil {
		qry["chainId"] = *options.ChainId
	}

	return qry, nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...authorization.FindAllOptionsFunc) ([]authorization.Authorization, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	res := []authorization.Authorization{}
	if err := im.q.Search(ctx, domain.TableAuthorizations, 0, 0, "_id", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) Upsert(ctx ctx.Ctx, a authorization.Authorization) error {
	a.LowerCase()
	if err := im.q.Upsert(ctx, domain.TableAuthorizations, selector(a), a); err != nil {
		ctx.WithFields(log.Fields{
			"err":           err,
			"authorization": a,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx ctx.Ctx, a authorization.Authorization) error {
	a.LowerCase()
	if err := im.q.Remove(ctx, domain.TableAuthorizations, selector(a)); err != nil && err != query.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":           err,
			"authorization": a,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
