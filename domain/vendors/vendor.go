package vendor

import (
	"math/big"
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/order"
)

// Capability names one transactional surface a vendor bundle may carry.
type Capability string

const (
	CapabilityOrders Capability = "orders"
	CapabilityBids   Capability = "bids"
	CapabilityBuys   Capability = "buys"
)

// OrderService builds, signs and submits listing transactions for one
// vendor's contracts. Implementations validate inputs against current
// chain state before submitting; the returned hash is of the submitted,
// not yet confirmed, transaction.
type OrderService interface {
	Create(ctx ctx.Ctx, caller domain.Address, ord *order.Order) (domain.TxHash, error)
	Execute(ctx ctx.Ctx, caller domain.Address, ord *order.Order) (domain.TxHash, error)
	Cancel(ctx ctx.Ctx, caller domain.Address, ord *order.Order) (domain.TxHash, error)
}

// BuyService is the direct-purchase surface. Only the species vendor
// carries it.
type BuyService interface {
	Buy(ctx ctx.Ctx, caller domain.Address, assetId asset.Id, price *big.Int) (domain.TxHash, error)
}

// BidService submits offer transactions against a vendor's bid contract.
type BidService interface {
	Place(ctx ctx.Ctx, caller domain.Address, b *bid.Bid) (domain.TxHash, error)
	Accept(ctx ctx.Ctx, caller domain.Address, b *bid.Bid) (domain.TxHash, error)
	Cancel(ctx ctx.Ctx, caller domain.Address, b *bid.Bid) (domain.TxHash, error)
}

// ContractService answers which deployed contracts back the vendor on a
// given chain.
type ContractService interface {
	Marketplace(chainId domain.ChainId) (domain.Address, error)
	Bids(chainId domain.ChainId) (domain.Address, error)
	PaymentToken(chainId domain.ChainId) (domain.Address, error)
	AuthorizationExpiry() time.Duration
}

// Bundle is one vendor's capability set. Orders and Contracts are
// mandatory; Bids and Buys are nil when the vendor does not carry them.
type Bundle struct {
	Name      domain.VendorName
	Orders    OrderService
	Bids      BidService
	Buys      BuyService
	Contracts ContractService
}

func (b *Bundle) Supports(cap Capability) bool {
	switch cap {
	case CapabilityOrders:
		return b.Orders != nil
	case CapabilityBids:
		return b.Bids != nil
	case CapabilityBuys:
		return b.Buys != nil
	}
	return false
}

// Registry resolves assets and vendor names to capability bundles.
// Resolution is read-only after construction.
type Registry interface {
	// Resolve returns the bundle governing the named vendor, or
	// domain.ErrUnknownVendor.
	Resolve(name domain.VendorName) (*Bundle, error)
	// ResolveAsset maps an asset to its governing bundle through the
	// asset's category.
	ResolveAsset(ctx ctx.Ctx, id asset.Id) (*Bundle, error)
	// Names lists registered vendors in registration order.
	Names() []domain.VendorName
}
