package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/database/mongoclient"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) bid.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(opts ...bid.FindAllOptionsFunc) (bson.M, bid.FindAllOptions, error) {
	options, err := bid.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	qry := bson.M{}

	if options.AssetId != nil {
		qry["assetId.chainId"] = options.AssetId.ChainId
		qry["assetId.contractAddress"] = options.AssetId.ContractAddress
		qry["assetId.tokenId"] = options.AssetId.TokenId
	}

	if options.Bidder != nil {
		qry["bidder"] = *options.Bidder
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

func (im *impl) FindAll(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
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

	res := []*bid.Bid{}
	if err := im.q.Search(ctx, domain.TableBids, offset, limit, "_id", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(ctx ctx.Ctx, id string) (*bid.Bid, error) {
	res := &bid.Bid{}
	if err := im.q.FindOne(ctx, domain.TableBids, bson.M{"id": id}, res); err == query.ErrNotFound {
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

func (im *impl) Insert(ctx ctx.Ctx, b *bid.Bid) error {
	b.LowerCase()
	if err := im.q.Insert(ctx, domain.TableBids, b); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": b,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *impl) Update(ctx ctx.Ctx, id string, patchable bid.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Patch(ctx, domain.TableBids, bson.M{"id": id}, updater); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx ctx.Ctx, id string) error {
	if err := im.q.Remove(ctx, domain.TableBids, bson.M{"id": id}); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
