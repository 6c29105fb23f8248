package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/account"
	"github.com/specieverse/goapi/service/query"
)

type activityImpl struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) account.ActivityRepo {
	return &activityImpl{q}
}

func (im *activityImpl) makeQuery(opts ...account.FindActivityOptionsFunc) (bson.M, account.FindActivityOptions, error) {
	options, err := account.GetFindActivityOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	qry := bson.M{}

	if options.Account != nil {
		qry["account"] = *options.Account
	}

	if options.ChainId != nil {
		qry["assetId.chainId"] = *options.ChainId
	}

	if len(options.Types) > 0 {
		qry["type"] = bson.M{"$in": options.Types}
	}

	return qry, options, nil
}

func (im *activityImpl) FindActivities(ctx ctx.Ctx, opts ...account.FindActivityOptionsFunc) ([]account.Activity, error) {
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

	res := []account.Activity{}
	if err := im.q.Search(ctx, domain.TableActivities, offset, limit, "-createdAt", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *activityImpl) Insert(ctx ctx.Ctx, activity account.Activity) error {
	activity.Account = activity.Account.ToLower()
	activity.AssetId.ContractAddress = activity.AssetId.ContractAddress.ToLower()
	activity.TxHash = activity.TxHash.ToLower()

	if err := im.q.Insert(ctx, domain.TableActivities, activity); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": activity,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}
