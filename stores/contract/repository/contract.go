package repository

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/contract"
	"github.com/specieverse/goapi/domain/keys"
	"github.com/specieverse/goapi/service/cache"
	"github.com/specieverse/goapi/service/cache/provider/primitive"
	"github.com/specieverse/goapi/service/query"
)

type impl struct {
	q     query.Mongo
	cache cache.Service
}

func New(q query.Mongo) contract.Repo {
	return &impl{
		q: q,
		cache: cache.New(cache.ServiceConfig{
			// deployments change rarely, a short local cache keeps
			// lookups off mongo on the hot path
			Ttl:   5 * time.Minute,
			Pfx:   keys.PfxContractBook,
			Cache: primitive.NewPrimitive("contractBook", 16),
		}),
	}
}

func (im *impl) FindAll(ctx ctx.Ctx, chainId domain.ChainId) ([]contract.Contract, error) {
	res := []contract.Contract{}
	if err := im.q.Search(ctx, domain.TableContracts, 0, 0, "_id", bson.M{"chainId": chainId}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *impl) Resolve(ctx ctx.Ctx, chainId domain.ChainId, nameOrAddress string) (*contract.Contract, error) {
	needle := strings.ToLower(nameOrAddress)
	res := &contract.Contract{}

	key := keys.RedisKey("resolve", fmt.Sprint(chainId), needle)
	err := im.cache.GetByFunc(ctx, key, res, func() (interface{}, error) {
		found, err := im.resolve(ctx, chainId, needle)
		if err != nil {
			return nil, err
		}
		return found, nil
	})
	if err == domain.ErrUnknownContract {
		return nil, err
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":           err,
			"chainId":       chainId,
			"nameOrAddress": nameOrAddress,
		}).Error("failed to cache.GetByFunc")
		return nil, err
	}
	return res, nil
}

func (im *impl) resolve(ctx ctx.Ctx, chainId domain.ChainId, needle string) (*contract.Contract, error) {
	qry := bson.M{
		"chainId": chainId,
		"$or": []bson.M{
			{"address": needle},
			{"name": needle},
		},
	}

	res := &contract.Contract{}
	if err := im.q.FindOne(ctx, domain.TableContracts, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrUnknownContract
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"needle":  needle,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(ctx ctx.Ctx, c contract.Contract) error {
	c.Address = c.Address.ToLower()
	c.Name = strings.ToLower(c.Name)

	selector := bson.M{
		"chainId": c.ChainId,
		"address": c.Address,
	}
	if err := im.q.Upsert(ctx, domain.TableContracts, selector, c); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"contract": c,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
