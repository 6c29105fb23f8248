package exchange

import (
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/authorization"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/order"
)

// IntentType names one lifecycle operation a caller may request.
type IntentType string

const (
	IntentCreateOrder  IntentType = "create-order"
	IntentExecuteOrder IntentType = "execute-order"
	IntentBuyAsset     IntentType = "buy-asset"
	IntentCancelOrder  IntentType = "cancel-order"
	IntentPlaceBid     IntentType = "place-bid"
	IntentAcceptBid    IntentType = "accept-bid"
	IntentCancelBid    IntentType = "cancel-bid"
)

// Intent is one requested lifecycle operation. AssetId is required for
// operations that open a record (create, buy, place); RecordId addresses
// an existing order or bid for the rest.
type Intent struct {
	Type     IntentType     `json:"type" validate:"required"`
	AssetId  asset.Id       `json:"assetId"`
	RecordId string         `json:"recordId"`
	Price    string         `json:"price"`
	Currency domain.Address `json:"currency"`
	// ExpiresAt bounds new orders and bids; ignored otherwise.
	ExpiresAt time.Time `json:"expiresAt"`
	// Fingerprint pins a composable asset's composition for new bids.
	Fingerprint string `json:"fingerprint"`
}

// OutcomeKind is how an intent submission resolved synchronously.
type OutcomeKind string

const (
	// OutcomeSubmitted means the transaction went out; settlement
	// arrives later on the notice feed.
	OutcomeSubmitted OutcomeKind = "submitted"
	// OutcomeAuthorizationRequired means the gate blocked the intent;
	// Candidate names the missing grant.
	OutcomeAuthorizationRequired OutcomeKind = "authorization-required"
	// OutcomeRejected means validation failed; Reason carries the cause.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeAlreadyPending means the addressed record already has an
	// in-flight transaction; TxHash is that earlier hash.
	OutcomeAlreadyPending OutcomeKind = "already-pending"
)

// Outcome is the synchronous result of SubmitIntent.
type Outcome struct {
	Kind      OutcomeKind                  `json:"kind"`
	Intent    Intent                       `json:"intent"`
	RecordId  string                       `json:"recordId,omitempty"`
	TxHash    domain.TxHash                `json:"txHash,omitempty"`
	Candidate *authorization.Authorization `json:"candidate,omitempty"`
	Reason    string                       `json:"reason,omitempty"`
}

// SettlementEvent is pushed to subscribers when a watched transaction
// reaches a terminal chain status and its record settles or reverts.
type SettlementEvent struct {
	Intent    IntentType    `json:"intent"`
	RecordId  string        `json:"recordId"`
	TxHash    domain.TxHash `json:"txHash"`
	Confirmed bool          `json:"confirmed"`
	// Status is the record status after the transition.
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// UseCase is the lifecycle engine. SubmitIntent validates, gates and
// dispatches one intent; Subscribe delivers settlement events until the
// context is done.
type UseCase interface {
	SubmitIntent(ctx ctx.Ctx, caller domain.Address, intent Intent) (*Outcome, error)
	Subscribe(ctx ctx.Ctx) (<-chan SettlementEvent, error)
	GetOrder(ctx ctx.Ctx, id string) (*order.Order, error)
	GetBid(ctx ctx.Ctx, id string) (*bid.Bid, error)
	ListOrders(ctx ctx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error)
	ListBids(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error)
}
