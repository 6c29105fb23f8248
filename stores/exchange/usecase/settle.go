package usecase

import (
	"sync"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/goroutine"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/base/ptr"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/account"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/exchange"
	"github.com/specieverse/goapi/domain/order"
)

type recordKind int

const (
	recordNone recordKind = iota
	recordOrder
	recordBid
)

// target carries everything the settlement path needs once the
// originating request is gone.
type target struct {
	intent   exchange.IntentType
	record   recordKind
	recordId string
	chainId  domain.ChainId
	caller   domain.Address
	// assetId and price are carried for recordless buys, whose activity
	// entry cannot be recovered from a stored record.
	assetId asset.Id
	price   string
}

// track follows the submitted hash to a terminal status and settles the
// record. It outlives the originating request on purpose.
func (im *impl) track(t target, txHash domain.TxHash) {
	c := bCtx.Background()

	updates, err := im.watcher.Watch(c, t.chainId, txHash)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"txHash": txHash,
		}).Error("watcher.Watch failed")
		return
	}

	goroutine.RecoverableGo(func() {
		for update := range updates {
			if !update.Status.IsTerminal() {
				continue
			}
			im.settle(c, t, update)
		}
	})
}

func (im *impl) settle(c bCtx.Ctx, t target, update domain.TxUpdate) {
	unlock := im.records.lock(t.recordId)
	defer unlock()

	confirmed := update.Status == domain.TxStatusConfirmed

	var status string
	var err error
	switch t.record {
	case recordOrder:
		status, err = im.settleOrder(c, t, confirmed)
	case recordBid:
		status, err = im.settleBid(c, t, confirmed)
	case recordNone:
		if confirmed {
			im.recordActivity(c, t.caller, account.ActivityBuy, t.assetId, t.price, update.Hash)
		}
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"recordId": t.recordId,
			"txHash":   update.Hash,
		}).Error("settling record failed")
		return
	}

	im.publish(exchange.SettlementEvent{
		Intent:    t.intent,
		RecordId:  t.recordId,
		TxHash:    update.Hash,
		Confirmed: confirmed,
		Status:    status,
		Timestamp: timeNow(),
	})
}

func (im *impl) settleOrder(c bCtx.Ctx, t target, confirmed bool) (string, error) {
	ord, err := im.orders.FindOne(c, t.recordId)
	if err != nil {
		return "", err
	}
	if !ord.Status.IsPending() {
		return string(ord.Status), nil
	}

	if !confirmed {
		// the transaction failed on chain; the record falls back to the
		// state it was in before submission
		if ord.Status == order.StatusPendingCreate {
			if err := im.orders.Remove(c, ord.Id); err != nil {
				return "", err
			}
			return "", nil
		}
		return string(ord.LastStatus), im.patchOrderStatus(c, ord.Id, ord.LastStatus)
	}

	var next order.Status
	switch ord.Status {
	case order.StatusPendingCreate:
		next = order.StatusOpen
		im.recordActivity(c, ord.Seller, account.ActivityList, ord.AssetId, ord.Price, ord.TxHash)
	case order.StatusPendingExecute:
		next = order.StatusSold
		im.recordActivity(c, ord.Seller, account.ActivitySale, ord.AssetId, ord.Price, ord.TxHash)
		im.recordActivity(c, ord.Buyer, account.ActivityBuy, ord.AssetId, ord.Price, ord.TxHash)
	case order.StatusPendingCancel:
		next = order.StatusCancelled
		im.recordActivity(c, ord.Seller, account.ActivityCancelled, ord.AssetId, ord.Price, ord.TxHash)
	}
	return string(next), im.patchOrderStatus(c, ord.Id, next)
}

func (im *impl) settleBid(c bCtx.Ctx, t target, confirmed bool) (string, error) {
	b, err := im.bids.FindOne(c, t.recordId)
	if err != nil {
		return "", err
	}
	if !b.Status.IsPending() {
		return string(b.Status), nil
	}

	if !confirmed {
		if b.Status == bid.StatusPendingPlace {
			if err := im.bids.Remove(c, b.Id); err != nil {
				return "", err
			}
			return "", nil
		}
		return string(b.LastStatus), im.patchBidStatus(c, b.Id, b.LastStatus)
	}

	var next bid.Status
	switch b.Status {
	case bid.StatusPendingPlace:
		next = bid.StatusOpen
		im.recordActivity(c, b.Bidder, account.ActivityBid, b.AssetId, b.Price, b.TxHash)
	case bid.StatusPendingAccept:
		next = bid.StatusAccepted
		im.recordActivity(c, b.Bidder, account.ActivityBidWon, b.AssetId, b.Price, b.TxHash)
		im.recordActivity(c, b.Seller, account.ActivitySale, b.AssetId, b.Price, b.TxHash)
	case bid.StatusPendingCancel:
		next = bid.StatusCancelled
	}
	return string(next), im.patchBidStatus(c, b.Id, next)
}

func (im *impl) patchOrderStatus(c bCtx.Ctx, id string, status order.Status) error {
	return im.orders.Update(c, id, order.Patchable{
		Status:    &status,
		UpdatedAt: ptr.Time(timeNow()),
	})
}

func (im *impl) patchBidStatus(c bCtx.Ctx, id string, status bid.Status) error {
	return im.bids.Update(c, id, bid.Patchable{
		Status:    &status,
		UpdatedAt: ptr.Time(timeNow()),
	})
}

func (im *impl) recordActivity(c bCtx.Ctx, acct domain.Address, typ account.ActivityType, assetId asset.Id, price string, txHash domain.TxHash) {
	if acct.IsEmpty() {
		return
	}
	activity := account.Activity{
		Account:   acct,
		Type:      typ,
		AssetId:   assetId,
		Price:     price,
		TxHash:    txHash,
		CreatedAt: timeNow(),
	}
	if err := im.activities.Insert(c, activity); err != nil {
		c.WithField("err", err).Warn("activities.Insert failed")
	}
}

func (im *impl) Subscribe(ctx bCtx.Ctx) (<-chan exchange.SettlementEvent, error) {
	events := make(chan exchange.SettlementEvent, 16)

	im.subMu.Lock()
	id := im.nextSub
	im.nextSub++
	im.subs[id] = events
	im.subMu.Unlock()

	goroutine.RecoverableGo(func() {
		<-ctx.Done()
		im.subMu.Lock()
		delete(im.subs, id)
		im.subMu.Unlock()
		close(events)
	})

	return events, nil
}

// publish fans the event out to every live subscriber. A subscriber that
// cannot keep up loses events rather than blocking settlement.
func (im *impl) publish(event exchange.SettlementEvent) {
	im.subMu.Lock()
	defer im.subMu.Unlock()
	for _, sub := range im.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

func (im *impl) GetOrder(ctx bCtx.Ctx, id string) (*order.Order, error) {
	ord, err := im.orders.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.IsExpired(timeNow()) {
		if err := im.patchOrderStatus(ctx, ord.Id, order.StatusExpired); err != nil {
			return nil, err
		}
		ord.Status = order.StatusExpired
	}
	return ord, nil
}

func (im *impl) GetBid(ctx bCtx.Ctx, id string) (*bid.Bid, error) {
	b, err := im.bids.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.IsExpired(timeNow()) {
		if err := im.patchBidStatus(ctx, b.Id, bid.StatusExpired); err != nil {
			return nil, err
		}
		b.Status = bid.StatusExpired
	}
	return b, nil
}

func (im *impl) ListOrders(ctx bCtx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error) {
	res, err := im.orders.FindAll(ctx, opts...)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	for _, ord := range res {
		if ord.IsExpired(now) {
			if err := im.patchOrderStatus(ctx, ord.Id, order.StatusExpired); err != nil {
				ctx.WithField("err", err).Warn("expiring order failed")
				continue
			}
			ord.Status = order.StatusExpired
		}
	}
	return res, nil
}

func (im *impl) ListBids(ctx bCtx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	res, err := im.bids.FindAll(ctx, opts...)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	for _, b := range res {
		if b.IsExpired(now) {
			if err := im.patchBidStatus(ctx, b.Id, bid.StatusExpired); err != nil {
				ctx.WithField("err", err).Warn("expiring bid failed")
				continue
			}
			b.Status = bid.StatusExpired
		}
	}
	return res, nil
}

// keyedMutex serializes work per record id. Entries are reference counted
// so the map does not grow with the number of records ever seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*lockEntry{}
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
