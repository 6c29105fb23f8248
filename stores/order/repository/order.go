package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/database/mongoclient"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/order"
	"github.com/specieverse/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) order.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(opts ...order.FindAllOptionsFunc) (bson.M, order.FindAllOptions, error) {
	options, err := order.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	qry := bson.M{}

	if options.AssetId != nil {
		qry["assetId.chainId"] = options.AssetId.ChainId
		qry["assetId.contractAddress"] = options.AssetId.ContractAddress
		qry["assetId.tokenId"] = options.AssetId.TokenId
	}

	if options.Seller != nil {
		qry["seller"] = *options.Seller
	}

	if len(options.Statuses) > 0 {
		qry["status"] = bson.M{"$in": options.Statuses}
	}

	if options.TxHash != nil {
		qry["txHash"] = *options.TxHash
	}

	if options.ChainId != nil {
		qry["assetId.chainId"] = *options.ChainId
	}

	return qry, options, nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error) {
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
	sort := "_id"
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*order.Order{}
	if err := im.q.Search(ctx, domain.TableOrders, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(ctx ctx.Ctx, id string) (*order.Order, error) {
	res := &order.Order{}
	if err := im.q.FindOne(ctx, domain.TableOrders, bson.M{"id": id}, res); err == query.ErrNotFound {
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

func (im *impl) Insert(ctx ctx.Ctx, ord *order.Order) error {
	ord.LowerCase()
	if err := im.q.Insert(ctx, domain.TableOrders, ord); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"order": ord,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *impl) Update(ctx ctx.Ctx, id string, patchable order.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Patch(ctx, domain.TableOrders, bson.M{"id": id}, updater); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx ctx.Ctx, id string) error {
	if err := im.q.Remove(ctx, domain.TableOrders, bson.M{"id": id}); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
