package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/base/ptr"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/account"
	"github.com/specieverse/goapi/domain/authorization"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/exchange"
	"github.com/specieverse/goapi/domain/order"
	"github.com/specieverse/goapi/domain/vendors"
)

var (
	timeNow = time.Now
	newId   = uuid.NewString
)

// paymentTokenDecimals is shared by the payment tokens on every supported
// chain.
const paymentTokenDecimals = 18

type EngineCfg struct {
	Orders         order.Repo
	Bids           bid.Repo
	Registry       vendor.Registry
	Authorizations authorization.UseCase
	Watcher        domain.TxWatcher
	Activities     account.ActivityRepo
}

type impl struct {
	orders         order.Repo
	bids           bid.Repo
	registry       vendor.Registry
	authorizations authorization.UseCase
	watcher        domain.TxWatcher
	activities     account.ActivityRepo

	// records serializes settle/revert against concurrent submissions on
	// the same order or bid.
	records keyedMutex

	subMu   sync.Mutex
	subs    map[int]chan exchange.SettlementEvent
	nextSub int
}

func New(cfg *EngineCfg) exchange.UseCase {
	return &impl{
		orders:         cfg.Orders,
		bids:           cfg.Bids,
		registry:       cfg.Registry,
		authorizations: cfg.Authorizations,
		watcher:        cfg.Watcher,
		activities:     cfg.Activities,
		subs:           map[int]chan exchange.SettlementEvent{},
	}
}

func (im *impl) SubmitIntent(ctx ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	caller = caller.ToLower()

	switch intent.Type {
	case exchange.IntentCreateOrder:
		return im.createOrder(ctx, caller, intent)
	case exchange.IntentExecuteOrder:
		return im.executeOrder(ctx, caller, intent)
	case exchange.IntentBuyAsset:
		return im.buyAsset(ctx, caller, intent)
	case exchange.IntentCancelOrder:
		return im.cancelOrder(ctx, caller, intent)
	case exchange.IntentPlaceBid:
		return im.placeBid(ctx, caller, intent)
	case exchange.IntentAcceptBid:
		return im.acceptBid(ctx, caller, intent)
	case exchange.IntentCancelBid:
		return im.cancelBid(ctx, caller, intent)
	}
	return nil, domain.ErrBadParamInput
}

func (im *impl) createOrder(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	price, err := parsePrice(intent.Price)
	if err != nil {
		return reject(intent, err), nil
	}
	if !intent.ExpiresAt.After(timeNow()) {
		return reject(intent, domain.ErrInvalidExpiration), nil
	}

	bundle, err := im.registry.ResolveAsset(c, intent.AssetId)
	if err != nil {
		return reject(intent, err), nil
	}

	existing, err := im.orders.FindAll(c,
		order.WithAssetId(intent.AssetId),
		order.WithStatuses(order.StatusOpen, order.StatusPendingCreate, order.StatusPendingExecute, order.StatusPendingCancel),
	)
	if err != nil {
		return nil, err
	}
	for _, ord := range existing {
		if !ord.IsExpired(timeNow()) {
			return reject(intent, domain.ErrOrderExists), nil
		}
	}

	marketplace, err := bundle.Contracts.Marketplace(intent.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	candidate := authorization.Authorization{
		Owner:         caller,
		Spender:       marketplace,
		TokenContract: intent.AssetId.ContractAddress,
		ChainId:       intent.AssetId.ChainId,
		Kind:          authorization.KindApprovalForAll,
	}
	if outcome, err := im.gate(c, intent, candidate); outcome != nil || err != nil {
		return outcome, err
	}

	now := timeNow()
	ord := &order.Order{
		Id:           newId(),
		AssetId:      intent.AssetId,
		Vendor:       bundle.Name,
		Seller:       caller,
		Price:        price.String(),
		DisplayPrice: displayPrice(price),
		Currency:     intent.Currency,
		ExpiresAt:    intent.ExpiresAt,
		Status:       order.StatusPendingCreate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	txHash, err := bundle.Orders.Create(c, caller, ord)
	if err != nil {
		return reject(intent, err), nil
	}

	ord.TxHash = txHash
	if err := im.orders.Insert(c, ord); err != nil {
		c.WithField("err", err).Error("orders.Insert failed")
		return nil, err
	}

	im.track(target{
		intent:   intent.Type,
		record:   recordOrder,
		recordId: ord.Id,
		chainId:  intent.AssetId.ChainId,
		caller:   caller,
	}, txHash)

	return submitted(intent, ord.Id, txHash), nil
}

func (im *impl) executeOrder(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	unlock := im.records.lock(intent.RecordId)
	defer unlock()

	ord, err := im.orders.FindOne(c, intent.RecordId)
	if err != nil {
		if err == domain.ErrNotFound {
			return reject(intent, err), nil
		}
		return nil, err
	}
	if !intent.AssetId.ContractAddress.IsEmpty() && intent.AssetId != ord.AssetId {
		return reject(intent, domain.ErrOrderAssetMismatch), nil
	}
	if ord.Status.IsPending() && ord.TxHash != "" {
		return alreadyPending(intent, ord.Id, ord.TxHash), nil
	}
	if ord.Status != order.StatusOpen || ord.IsExpired(timeNow()) {
		return reject(intent, domain.ErrOrderNotOpen), nil
	}

	bundle, err := im.registry.Resolve(ord.Vendor)
	if err != nil {
		return nil, err
	}

	marketplace, err := bundle.Contracts.Marketplace(ord.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	paymentToken, err := bundle.Contracts.PaymentToken(ord.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	candidate := authorization.Authorization{
		Owner:         caller,
		Spender:       marketplace,
		TokenContract: paymentToken,
		ChainId:       ord.AssetId.ChainId,
		Kind:          authorization.KindAllowance,
	}
	if outcome, err := im.gate(c, intent, candidate); outcome != nil || err != nil {
		return outcome, err
	}

	txHash, err := bundle.Orders.Execute(c, caller, ord)
	if err != nil {
		return reject(intent, err), nil
	}

	if err := im.markOrderPending(c, ord, order.StatusPendingExecute, txHash, &caller); err != nil {
		return nil, err
	}

	im.track(target{
		intent:   intent.Type,
		record:   recordOrder,
		recordId: ord.Id,
		chainId:  ord.AssetId.ChainId,
		caller:   caller,
	}, txHash)

	return submitted(intent, ord.Id, txHash), nil
}

func (im *impl) buyAsset(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	price, err := parsePrice(intent.Price)
	if err != nil {
		return reject(intent, err), nil
	}

	bundle, err := im.registry.ResolveAsset(c, intent.AssetId)
	if err != nil {
		return reject(intent, err), nil
	}
	// direct purchase is a species-only surface; other vendors sell
	// through orders exclusively
	if !bundle.Supports(vendor.CapabilityBuys) {
		return reject(intent, domain.ErrSpeciesPurchaseOnly), nil
	}

	marketplace, err := bundle.Contracts.Marketplace(intent.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	paymentToken, err := bundle.Contracts.PaymentToken(intent.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	candidate := authorization.Authorization{
		Owner:         caller,
		Spender:       marketplace,
		TokenContract: paymentToken,
		ChainId:       intent.AssetId.ChainId,
		Kind:          authorization.KindAllowance,
	}
	if outcome, err := im.gate(c, intent, candidate); outcome != nil || err != nil {
		return outcome, err
	}

	txHash, err := bundle.Buys.Buy(c, caller, intent.AssetId, price)
	if err != nil {
		return reject(intent, err), nil
	}

	im.track(target{
		intent:  intent.Type,
		record:  recordNone,
		chainId: intent.AssetId.ChainId,
		caller:  caller,
		assetId: intent.AssetId,
		price:   price.String(),
	}, txHash)

	return submitted(intent, "", txHash), nil
}

func (im *impl) cancelOrder(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	unlock := im.records.lock(intent.RecordId)
	defer unlock()

	ord, err := im.orders.FindOne(c, intent.RecordId)
	if err != nil {
		if err == domain.ErrNotFound {
			return reject(intent, err), nil
		}
		return nil, err
	}
	if ord.Status.IsPending() && ord.TxHash != "" {
		return alreadyPending(intent, ord.Id, ord.TxHash), nil
	}
	if ord.Status != order.StatusOpen {
		return reject(intent, domain.ErrOrderNotOpen), nil
	}

	bundle, err := im.registry.Resolve(ord.Vendor)
	if err != nil {
		return nil, err
	}

	// cancelling touches only the caller's own listing, so no grant is
	// required
	txHash, err := bundle.Orders.Cancel(c, caller, ord)
	if err != nil {
		return reject(intent, err), nil
	}

	if err := im.markOrderPending(c, ord, order.StatusPendingCancel, txHash, nil); err != nil {
		return nil, err
	}

	im.track(target{
		intent:   intent.Type,
		record:   recordOrder,
		recordId: ord.Id,
		chainId:  ord.AssetId.ChainId,
		caller:   caller,
	}, txHash)

	return submitted(intent, ord.Id, txHash), nil
}

func (im *impl) placeBid(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	price, err := parsePrice(intent.Price)
	if err != nil {
		return reject(intent, err), nil
	}
	if !intent.ExpiresAt.After(timeNow()) {
		return reject(intent, domain.ErrInvalidExpiration), nil
	}

	bundle, err := im.registry.ResolveAsset(c, intent.AssetId)
	if err != nil {
		return reject(intent, err), nil
	}
	if !bundle.Supports(vendor.CapabilityBids) {
		return reject(intent, domain.ErrUnsupportedCapability), nil
	}

	bids, err := bundle.Contracts.Bids(intent.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	paymentToken, err := bundle.Contracts.PaymentToken(intent.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	candidate := authorization.Authorization{
		Owner:         caller,
		Spender:       bids,
		TokenContract: paymentToken,
		ChainId:       intent.AssetId.ChainId,
		Kind:          authorization.KindAllowance,
	}
	if outcome, err := im.gate(c, intent, candidate); outcome != nil || err != nil {
		return outcome, err
	}

	now := timeNow()
	b := &bid.Bid{
		Id:           newId(),
		AssetId:      intent.AssetId,
		Vendor:       bundle.Name,
		Bidder:       caller,
		Price:        price.String(),
		DisplayPrice: displayPrice(price),
		Currency:     intent.Currency,
		ExpiresAt:    intent.ExpiresAt,
		Fingerprint:  intent.Fingerprint,
		Status:       bid.StatusPendingPlace,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	txHash, err := bundle.Bids.Place(c, caller, b)
	if err != nil {
		return reject(intent, err), nil
	}

	b.TxHash = txHash
	if err := im.bids.Insert(c, b); err != nil {
		c.WithField("err", err).Error("bids.Insert failed")
		return nil, err
	}

	im.track(target{
		intent:   intent.Type,
		record:   recordBid,
		recordId: b.Id,
		chainId:  intent.AssetId.ChainId,
		caller:   caller,
	}, txHash)

	return submitted(intent, b.Id, txHash), nil
}

func (im *impl) acceptBid(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	unlock := im.records.lock(intent.RecordId)
	defer unlock()

	b, err := im.bids.FindOne(c, intent.RecordId)
	if err != nil {
		if err == domain.ErrNotFound {
			return reject(intent, err), nil
		}
		return nil, err
	}
	if b.Status.IsPending() && b.TxHash != "" {
		return alreadyPending(intent, b.Id, b.TxHash), nil
	}
	if b.Status != bid.StatusOpen || b.IsExpired(timeNow()) {
		return reject(intent, domain.ErrBidNotOpen), nil
	}

	bundle, err := im.registry.Resolve(b.Vendor)
	if err != nil {
		return nil, err
	}
	if !bundle.Supports(vendor.CapabilityBids) {
		return reject(intent, domain.ErrUnsupportedCapability), nil
	}

	bids, err := bundle.Contracts.Bids(b.AssetId.ChainId)
	if err != nil {
		return reject(intent, err), nil
	}
	candidate := authorization.Authorization{
		Owner:         caller,
		Spender:       bids,
		TokenContract: b.AssetId.ContractAddress,
		ChainId:       b.AssetId.ChainId,
		Kind:          authorization.KindApprovalForAll,
	}
	if outcome, err := im.gate(c, intent, candidate); outcome != nil || err != nil {
		return outcome, err
	}

	txHash, err := bundle.Bids.Accept(c, caller, b)
	if err != nil {
		return reject(intent, err), nil
	}

	if err := im.markBidPending(c, b, bid.StatusPendingAccept, txHash, &caller); err != nil {
		return nil, err
	}

	im.track(target{
		intent:   intent.Type,
		record:   recordBid,
		recordId: b.Id,
		chainId:  b.AssetId.ChainId,
		caller:   caller,
	}, txHash)

	return submitted(intent, b.Id, txHash), nil
}

func (im *impl) cancelBid(c ctx.Ctx, caller domain.Address, intent exchange.Intent) (*exchange.Outcome, error) {
	unlock := im.records.lock(intent.RecordId)
	defer unlock()

	b, err := im.bids.FindOne(c, intent.RecordId)
	if err != nil {
		if err == domain.ErrNotFound {
			return reject(intent, err), nil
		}
		return nil, err
	}
	if b.Status.IsPending() && b.TxHash != "" {
		return alreadyPending(intent, b.Id, b.TxHash), nil
	}
	if b.Status != bid.StatusOpen {
		return reject(intent, domain.ErrBidNotOpen), nil
	}
	if !caller.Equals(b.Bidder) {
		return reject(intent, domain.ErrNotBidder), nil
	}

	bundle, err := im.registry.Resolve(b.Vendor)
	if err != nil {
		return nil, err
	}

	txHash, err := bundle.Bids.Cancel(c, caller, b)
	if err != nil {
		return reject(intent, err), nil
	}

	if err := im.markBidPending(c, b, bid.StatusPendingCancel, txHash, nil); err != nil {
		return nil, err
	}

	im.track(target{
		intent:   intent.Type,
		record:   recordBid,
		recordId: b.Id,
		chainId:  b.AssetId.ChainId,
		caller:   caller,
	}, txHash)

	return submitted(intent, b.Id, txHash), nil
}

// gate applies the authorization check. It returns a non-nil outcome when
// the intent cannot proceed.
func (im *impl) gate(c ctx.Ctx, intent exchange.Intent, candidate authorization.Authorization) (*exchange.Outcome, error) {
	ok, err := im.authorizations.Check(c, candidate)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}
	candidate.LowerCase()
	return &exchange.Outcome{
		Kind:      exchange.OutcomeAuthorizationRequired,
		Intent:    intent,
		Candidate: &candidate,
	}, nil
}

func (im *impl) markOrderPending(c ctx.Ctx, ord *order.Order, status order.Status, txHash domain.TxHash, buyer *domain.Address) error {
	patchable := order.Patchable{
		Status:     &status,
		LastStatus: &ord.Status,
		TxHash:     &txHash,
		UpdatedAt:  ptr.Time(timeNow()),
	}
	if buyer != nil {
		patchable.Buyer = buyer.ToLowerPtr()
	}
	if err := im.orders.Update(c, ord.Id, patchable); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  ord.Id,
		}).Error("orders.Update failed")
		return err
	}
	return nil
}

func (im *impl) markBidPending(c ctx.Ctx, b *bid.Bid, status bid.Status, txHash domain.TxHash, seller *domain.Address) error {
	patchable := bid.Patchable{
		Status:     &status,
		LastStatus: &b.Status,
		TxHash:     &txHash,
		UpdatedAt:  ptr.Time(timeNow()),
	}
	if seller != nil {
		patchable.Seller = seller.ToLowerPtr()
	}
	if err := im.bids.Update(c, b.Id, patchable); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  b.Id,
		}).Error("bids.Update failed")
		return err
	}
	return nil
}

func parsePrice(s string) (*big.Int, error) {
	price, ok := new(big.Int).SetString(s, 10)
	if !ok || price.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	return price, nil
}

// displayPrice renders a wei amount in whole payment tokens.
func displayPrice(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -paymentTokenDecimals).String()
}

func reject(intent exchange.Intent, err error) *exchange.Outcome {
	return &exchange.Outcome{
		Kind:   exchange.OutcomeRejected,
		Intent: intent,
		Reason: err.Error(),
	}
}

func submitted(intent exchange.Intent, recordId string, txHash domain.TxHash) *exchange.Outcome {
	return &exchange.Outcome{
		Kind:     exchange.OutcomeSubmitted,
		Intent:   intent,
		RecordId: recordId,
		TxHash:   txHash,
	}
}

func alreadyPending(intent exchange.Intent, recordId string, txHash domain.TxHash) *exchange.Outcome {
	return &exchange.Outcome{
		Kind:     exchange.OutcomeAlreadyPending,
		Intent:   intent,
		RecordId: recordId,
		TxHash:   txHash,
	}
}
