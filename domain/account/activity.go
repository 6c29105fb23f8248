package account

import (
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
)

// ActivityType tags one settled lifecycle event in an account's history.
type ActivityType string

const (
	ActivityList      ActivityType = "list"
	ActivitySale      ActivityType = "sale"
	ActivityBuy       ActivityType = "buy"
	ActivityCancelled ActivityType = "cancelled"
	ActivityBid       ActivityType = "bid"
	ActivityBidWon    ActivityType = "bidWon"
)

// Activity is one row of an account's history feed, recorded only after
// the underlying transaction confirmed.
type Activity struct {
	Account   domain.Address `json:"account" bson:"account"`
	Type      ActivityType   `json:"type" bson:"type"`
	AssetId   asset.Id       `json:"assetId" bson:"assetId"`
	Price     string         `json:"price" bson:"price"`
	TxHash    domain.TxHash  `json:"txHash" bson:"txHash"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

type FindActivityOptions struct {
	Account *domain.Address
	ChainId *domain.ChainId
	Types   []ActivityType
	Offset  *int32
	Limit   *int32
}

type FindActivityOptionsFunc func(*FindActivityOptions) error

func GetFindActivityOptions(opts ...FindActivityOptionsFunc) (FindActivityOptions, error) {
	res := FindActivityOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithAccount(account domain.Address) FindActivityOptionsFunc {
	return func(options *FindActivityOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindActivityOptionsFunc {
	return func(options *FindActivityOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithTypes(types ...ActivityType) FindActivityOptionsFunc {
	return func(options *FindActivityOptions) error {
		options.Types = types
		return nil
	}
}

func WithPagination(offset, limit int32) FindActivityOptionsFunc {
	return func(options *FindActivityOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ActivityRepo interface {
	FindActivities(ctx ctx.Ctx, opts ...FindActivityOptionsFunc) ([]Activity, error)
	Insert(ctx ctx.Ctx, activity Activity) error
}
