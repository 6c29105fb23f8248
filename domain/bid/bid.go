package bid

import (
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
)

type Status string

const (
	StatusPendingPlace  Status = "pending-place"
	StatusOpen          Status = "open"
	StatusPendingAccept Status = "pending-accept"
	StatusPendingCancel Status = "pending-cancel"
	StatusAccepted      Status = "accepted"
	StatusCancelled     Status = "cancelled"
	StatusExpired       Status = "expired"
)

func (s Status) IsPending() bool {
	switch s {
	case StatusPendingPlace, StatusPendingAccept, StatusPendingCancel:
		return true
	}
	return false
}

// Bid is an offer to buy an asset at a given price before expiration.
type Bid struct {
	Id      string            `json:"id" bson:"id"`
	AssetId asset.Id          `json:"assetId" bson:"assetId"`
	Vendor  domain.VendorName `json:"vendor" bson:"vendor"`
	Bidder  domain.Address    `json:"bidder" bson:"bidder"`
	// Seller is set once known; bids may be placed before a seller exists.
	Seller       domain.Address `json:"seller" bson:"seller"`
	Price        string         `json:"price" bson:"price"`
	DisplayPrice string         `json:"displayPrice" bson:"displayPrice"`
	Currency     domain.Address `json:"currency" bson:"currency"`
	ExpiresAt    time.Time      `json:"expiresAt" bson:"expiresAt"`
	// Fingerprint is the asset's composition hash at bid time; used to
	// invalidate the bid if the composition changed.
	Fingerprint string        `json:"fingerprint" bson:"fingerprint"`
	Status      Status        `json:"status" bson:"status"`
	LastStatus  Status        `json:"lastStatus" bson:"lastStatus"`
	TxHash      domain.TxHash `json:"txHash" bson:"txHash"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func (b *Bid) LowerCase() {
	b.AssetId.ContractAddress = b.AssetId.ContractAddress.ToLower()
	b.Bidder = b.Bidder.ToLower()
	b.Seller = b.Seller.ToLower()
	b.Currency = b.Currency.ToLower()
	b.TxHash = b.TxHash.ToLower()
}

func (b *Bid) IsExpired(now time.Time) bool {
	return b.Status == StatusOpen && b.ExpiresAt.Before(now)
}

// CheckFingerprint reports whether the bid is still valid against the
// asset's current fingerprint. A missing fingerprint on either side never
// invalidates the bid.
func CheckFingerprint(b *Bid, current string) bool {
	if current != "" && b.Fingerprint != "" {
		return current == b.Fingerprint
	}
	return true
}

type Patchable struct {
	Status     *Status         `bson:"status,omitempty"`
	LastStatus *Status         `bson:"lastStatus,omitempty"`
	Seller     *domain.Address `bson:"seller,omitempty"`
	TxHash     *domain.TxHash  `bson:"txHash,omitempty"`
	UpdatedAt  *time.Time      `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	AssetId  *asset.Id
	Bidder   *domain.Address
	Statuses []Status
	TxHash   *domain.TxHash
	ChainId  *domain.ChainId
	Offset   *int32
	Limit    *int32
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

func WithBidder(bidder domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Bidder = bidder.ToLowerPtr()
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

// Repo is the bid store. The lifecycle engine is the sole writer.
type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	FindOne(ctx ctx.Ctx, id string) (*Bid, error)
	Insert(ctx ctx.Ctx, bid *Bid) error
	Update(ctx ctx.Ctx, id string, patchable Patchable) error
	Remove(ctx ctx.Ctx, id string) error
}
