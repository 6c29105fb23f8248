package order

import (
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
)

type Status string

const (
	StatusPendingCreate  Status = "pending-create"
	StatusOpen           Status = "open"
	StatusPendingExecute Status = "pending-execute"
	StatusPendingCancel  Status = "pending-cancel"
	StatusSold           Status = "sold"
	StatusCancelled      Status = "cancelled"
	StatusExpired        Status = "expired"
)

// IsPending reports whether a transaction for the order is in flight.
func (s Status) IsPending() bool {
	switch s {
	case StatusPendingCreate, StatusPendingExecute, StatusPendingCancel:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusSold, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Order is a standing sell offer for one asset. At most one order is open per
// asset at a time; the vendor contract enforces it and the local store
// mirrors it.
type Order struct {
	Id           string            `json:"id" bson:"id"`
	AssetId      asset.Id          `json:"assetId" bson:"assetId"`
	Vendor       domain.VendorName `json:"vendor" bson:"vendor"`
	Seller       domain.Address    `json:"seller" bson:"seller"`
	Buyer        domain.Address    `json:"buyer" bson:"buyer"`
	Price        string            `json:"price" bson:"price"`
	DisplayPrice string            `json:"displayPrice" bson:"displayPrice"`
	Currency     domain.Address    `json:"currency" bson:"currency"`
	ExpiresAt    time.Time         `json:"expiresAt" bson:"expiresAt"`
	Status       Status            `json:"status" bson:"status"`
	// LastStatus is the state to fall back to when the pending transaction
	// is reported failed.
	LastStatus Status        `json:"lastStatus" bson:"lastStatus"`
	TxHash     domain.TxHash `json:"txHash" bson:"txHash"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func (o *Order) LowerCase() {
	o.AssetId.ContractAddress = o.AssetId.ContractAddress.ToLower()
	o.Seller = o.Seller.ToLower()
	o.Buyer = o.Buyer.ToLower()
	o.Currency = o.Currency.ToLower()
	o.TxHash = o.TxHash.ToLower()
}

// IsExpired observes expiration lazily: an open order past its expiration is
// reported expired without waiting for a chain event.
func (o *Order) IsExpired(now time.Time) bool {
	return o.Status == StatusOpen && o.ExpiresAt.Before(now)
}

type Patchable struct {
	Status     *Status         `bson:"status,omitempty"`
	LastStatus *Status         `bson:"lastStatus,omitempty"`
	Buyer      *domain.Address `bson:"buyer,omitempty"`
	TxHash     *domain.TxHash  `bson:"txHash,omitempty"`
	UpdatedAt  *time.Time      `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	AssetId  *asset.Id
	Seller   *domain.Address
	Statuses []Status
	TxHash   *domain.TxHash
	ChainId  *domain.ChainId
	Offset   *int32
	Limit    *int32
	Sort     *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithAssetId(id asset.Id) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		id.ContractAddress = id.ContractAddress.ToLower()
		options.AssetId = &id
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Statuses = statuses
		return nil
	}
}

func WithTxHash(hash domain.TxHash) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		h := hash.ToLower()
		options.TxHash = &h
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

// Repo is the order store. The lifecycle engine is the sole writer.
type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Order, error)
	FindOne(ctx ctx.Ctx, id string) (*Order, error)
	Insert(ctx ctx.Ctx, order *Order) error
	Update(ctx ctx.Ctx, id string, patchable Patchable) error
	Remove(ctx ctx.Ctx, id string) error
}
