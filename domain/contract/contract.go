package contract

import (
	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
)

// Contract is one entry in the deployed-contract book.
type Contract struct {
	ChainId domain.ChainId    `json:"chainId" bson:"chainId"`
	Address domain.Address    `json:"address" bson:"address"`
	Name    string            `json:"name" bson:"name"`
	Vendor  domain.VendorName `json:"vendor" bson:"vendor"`
}

// Repo is the contract book. Resolve accepts either a deployed name or
// an address and returns the matching entry, or domain.ErrUnknownContract.
type Repo interface {
	FindAll(ctx ctx.Ctx, chainId domain.ChainId) ([]Contract, error)
	Resolve(ctx ctx.Ctx, chainId domain.ChainId, nameOrAddress string) (*Contract, error)
	Upsert(ctx ctx.Ctx, contract Contract) error
}
