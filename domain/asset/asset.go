package asset

import (
	"fmt"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
)

// Id identifies an asset by chain, contract and token id.
type Id struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenId"`
}

func (id Id) String() string {
	return fmt.Sprintf("%d:%s:%s", id.ChainId, id.ContractAddress.ToLower(), id.TokenId)
}

// Asset mirrors chain state for one non-fungible token. Everything but the
// owner is immutable; the owner changes only on confirmed transfer.
type Asset struct {
	ChainId         domain.ChainId    `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address    `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId    `json:"tokenId" bson:"tokenId"`
	Category        string            `json:"category" bson:"category"`
	Vendor          domain.VendorName `json:"vendor" bson:"vendor"`
	Owner           domain.Address    `json:"owner" bson:"owner"`
	// Fingerprint is a content hash of the asset's composition; empty for
	// assets without composable parts.
	Fingerprint string `json:"fingerprint" bson:"fingerprint"`
}

func (a *Asset) ToId() Id {
	return Id{
		ChainId:         a.ChainId,
		ContractAddress: a.ContractAddress,
		TokenId:         a.TokenId,
	}
}

func (a *Asset) LowerCase() {
	a.ContractAddress = a.ContractAddress.ToLower()
	a.Owner = a.Owner.ToLower()
}

type Patchable struct {
	Owner       *domain.Address `bson:"owner,omitempty"`
	Fingerprint *string         `bson:"fingerprint,omitempty"`
}

type FindAllOptions struct {
	ChainId *domain.ChainId
	Owner   *domain.Address
	Vendor  *domain.VendorName
	Offset  *int32
	Limit   *int32
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

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = owner.ToLowerPtr()
		return nil
	}
}

func WithVendor(vendor domain.VendorName) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Vendor = &vendor
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

type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Asset, error)
	FindOne(ctx ctx.Ctx, id Id) (*Asset, error)
	Upsert(ctx ctx.Ctx, asset *Asset) error
	Update(ctx ctx.Ctx, id Id, patchable Patchable) error
}
