package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/database/mongoclient"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) asset.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(opts ...asset.FindAllOptionsFunc) (bson.M, asset.FindAllOptions, error) {
	options, err := asset.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	qry := bson.M{}

	if options.ChainId != nil {
		qry["chainId"] = *options.ChainId
	}

	if options.Owner != nil {
		qry["owner"] = *options.Owner
	}

	if options.Vendor != nil {
		qry["vendor"] = *options.Vendor
	}

	return qry, options, nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...asset.FindAllOptionsFunc) ([]*asset.Asset, error) {
	qry, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*asset.Asset{}
	if err := im.q.Search(ctx, domain.TableAssets, offset, limit, "_id", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(ctx ctx.Ctx, id asset.Id) (*asset.Asset, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := &asset.Asset{}
	if err := im.q.FindOne(ctx, domain.TableAssets, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(ctx ctx.Ctx, a *asset.Asset) error {
	a.LowerCase()
	selector, err := mongoclient.MakeBsonM(a.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": a,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableAssets, selector, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": a,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *impl) Update(ctx ctx.Ctx, id asset.Id, patchable asset.Patchable) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Patch(ctx, domain.TableAssets, selector, updater); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}
