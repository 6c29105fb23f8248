package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	mAccount "github.com/specieverse/goapi/domain/account/mocks"
	"github.com/specieverse/goapi/domain/asset"
	mAsset "github.com/specieverse/goapi/domain/asset/mocks"
	mAuthorization "github.com/specieverse/goapi/domain/authorization/mocks"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/exchange"
	mDomain "github.com/specieverse/goapi/domain/mocks"
	"github.com/specieverse/goapi/domain/order"
	"github.com/specieverse/goapi/domain/vendors"
	mVendor "github.com/specieverse/goapi/domain/vendors/mocks"
	"github.com/specieverse/goapi/stores/vendors/contracts"
	"github.com/specieverse/goapi/stores/vendors/registry"
)

const (
	marketplaceAddr  = domain.Address("0x00000000000000000000000000000000000000e1")
	bidsAddr         = domain.Address("0x00000000000000000000000000000000000000e2")
	paymentTokenAddr = domain.Address("0x00000000000000000000000000000000000000e3")
	sellerAddr       = domain.Address("0x00000000000000000000000000000000000000a1")
	buyerAddr        = domain.Address("0x00000000000000000000000000000000000000a2")
)

// in-memory order store; the engine patches records across goroutines so
// the fake has to hold real state
type fakeOrderRepo struct {
	mu   sync.Mutex
	byId map[string]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byId: map[string]*order.Order{}}
}

func (f *fakeOrderRepo) FindAll(ctx bCtx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error) {
	options, err := order.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []*order.Order{}
	for _, ord := range f.byId {
		if options.AssetId != nil && *options.AssetId != ord.AssetId {
			continue
		}
		if len(options.Statuses) > 0 {
			found := false
			for _, s := range options.Statuses {
				if ord.Status == s {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		cp := *ord
		res = append(res, &cp)
	}
	return res, nil
}

func (f *fakeOrderRepo) FindOne(ctx bCtx.Ctx, id string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ord, ok := f.byId[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ord
	return &cp, nil
}

func (f *fakeOrderRepo) Insert(ctx bCtx.Ctx, ord *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ord
	cp.LowerCase()
	f.byId[cp.Id] = &cp
	return nil
}

func (f *fakeOrderRepo) Update(ctx bCtx.Ctx, id string, patchable order.Patchable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ord, ok := f.byId[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patchable.Status != nil {
		ord.Status = *patchable.Status
	}
	if patchable.LastStatus != nil {
		ord.LastStatus = *patchable.LastStatus
	}
	if patchable.Buyer != nil {
		ord.Buyer = *patchable.Buyer
	}
	if patchable.TxHash != nil {
		ord.TxHash = *patchable.TxHash
	}
	if patchable.UpdatedAt != nil {
		ord.UpdatedAt = *patchable.UpdatedAt
	}
	return nil
}

func (f *fakeOrderRepo) Remove(ctx bCtx.Ctx, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byId[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byId, id)
	return nil
}

type fakeBidRepo struct {
	mu   sync.Mutex
	byId map[string]*bid.Bid
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{byId: map[string]*bid.Bid{}}
}

func (f *fakeBidRepo) FindAll(ctx bCtx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []*bid.Bid{}
	for _, b := range f.byId {
		cp := *b
		res = append(res, &cp)
	}
	return res, nil
}

func (f *fakeBidRepo) FindOne(ctx bCtx.Ctx, id string) (*bid.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byId[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBidRepo) Insert(ctx bCtx.Ctx, b *bid.Bid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	cp.LowerCase()
	f.byId[cp.Id] = &cp
	return nil
}

func (f *fakeBidRepo) Update(ctx bCtx.Ctx, id string, patchable bid.Patchable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byId[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patchable.Status != nil {
		b.Status = *patchable.Status
	}
	if patchable.LastStatus != nil {
		b.LastStatus = *patchable.LastStatus
	}
	if patchable.Seller != nil {
		b.Seller = *patchable.Seller
	}
	if patchable.TxHash != nil {
		b.TxHash = *patchable.TxHash
	}
	if patchable.UpdatedAt != nil {
		b.UpdatedAt = *patchable.UpdatedAt
	}
	return nil
}

func (f *fakeBidRepo) Remove(ctx bCtx.Ctx, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byId[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byId, id)
	return nil
}

type engineSuite struct {
	suite.Suite

	ctx            bCtx.Ctx
	orders         *fakeOrderRepo
	bids           *fakeBidRepo
	assets         *mAsset.Repo
	authorizations *mAuthorization.UseCase
	watcher        *mDomain.TxWatcher
	activities     *mAccount.ActivityRepo

	speciesOrders *mVendor.OrderService
	speciesBids   *mVendor.BidService
	speciesBuys   *mVendor.BuyService
	galleryOrders *mVendor.OrderService

	im exchange.UseCase
}

func TestEngine(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.orders = newFakeOrderRepo()
	s.bids = newFakeBidRepo()
	s.assets = &mAsset.Repo{}
	s.authorizations = &mAuthorization.UseCase{}
	s.watcher = &mDomain.TxWatcher{}
	s.activities = &mAccount.ActivityRepo{}
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)

	contractBook := contracts.New(&contracts.Cfg{
		Marketplaces:  map[domain.ChainId]domain.Address{1: marketplaceAddr},
		Bids:          map[domain.ChainId]domain.Address{1: bidsAddr},
		PaymentTokens: map[domain.ChainId]domain.Address{1: paymentTokenAddr},
	})

	s.speciesOrders = &mVendor.OrderService{}
	s.speciesBids = &mVendor.BidService{}
	s.speciesBuys = &mVendor.BuyService{}
	s.galleryOrders = &mVendor.OrderService{}

	reg := registry.New(s.assets,
		&vendor.Bundle{
			Name:      domain.VendorSpecies,
			Orders:    s.speciesOrders,
			Bids:      s.speciesBids,
			Buys:      s.speciesBuys,
			Contracts: contractBook,
		},
		&vendor.Bundle{
			Name:      domain.VendorGallery,
			Orders:    s.galleryOrders,
			Contracts: contractBook,
		},
	)

	s.im = New(&EngineCfg{
		Orders:         s.orders,
		Bids:           s.bids,
		Registry:       reg,
		Authorizations: s.authorizations,
		Watcher:        s.watcher,
		Activities:     s.activities,
	})
}

func (s *engineSuite) assetId() asset.Id {
	return asset.Id{
		ChainId:         1,
		ContractAddress: "0x00000000000000000000000000000000000000f1",
		TokenId:         "42",
	}
}

func (s *engineSuite) givenSpeciesAsset() {
	s.assets.On("FindOne", mock.Anything, mock.Anything).Return(&asset.Asset{
		ChainId:         1,
		ContractAddress: s.assetId().ContractAddress,
		TokenId:         s.assetId().TokenId,
		Category:        "species",
	}, nil)
}

func (s *engineSuite) givenGalleryAsset() {
	s.assets.On("FindOne", mock.Anything, mock.Anything).Return(&asset.Asset{
		ChainId:         1,
		ContractAddress: s.assetId().ContractAddress,
		TokenId:         s.assetId().TokenId,
		Category:        "artwork",
	}, nil)
}

func (s *engineSuite) allowAll() {
	s.authorizations.On("Check", mock.Anything, mock.Anything).Return(true, nil)
}

// watchSettling arranges the watcher to settle the hash with the given
// terminal status as soon as the engine subscribes.
func (s *engineSuite) watchSettling(hash domain.TxHash, status domain.TxStatus) {
	updates := make(chan domain.TxUpdate, 2)
	updates <- domain.TxUpdate{ChainId: 1, Hash: hash, Status: domain.TxStatusPending}
	updates <- domain.TxUpdate{ChainId: 1, Hash: hash, Status: status}
	close(updates)
	s.watcher.On("Watch", mock.Anything, domain.ChainId(1), hash).Return((<-chan domain.TxUpdate)(updates), nil)
}

func (s *engineSuite) createIntent() exchange.Intent {
	return exchange.Intent{
		Type:      exchange.IntentCreateOrder,
		AssetId:   s.assetId(),
		Price:     "1000000000000000000",
		Currency:  paymentTokenAddr,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (s *engineSuite) TestCreateOrderSettlesOpen() {
	s.givenSpeciesAsset()
	s.allowAll()
	s.speciesOrders.On("Create", mock.Anything, sellerAddr, mock.Anything).Return(domain.TxHash("0xc1"), nil)
	s.watchSettling("0xc1", domain.TxStatusConfirmed)

	events, err := s.im.Subscribe(s.ctx)
	s.Require().NoError(err)

	outcome, err := s.im.SubmitIntent(s.ctx, sellerAddr, s.createIntent())

	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeSubmitted, outcome.Kind)
	s.Equal(domain.TxHash("0xc1"), outcome.TxHash)
	s.NotEmpty(outcome.RecordId)

	event := <-events
	s.True(event.Confirmed)
	s.Equal(outcome.RecordId, event.RecordId)
	s.Equal(string(order.StatusOpen), event.Status)

	ord, err := s.im.GetOrder(s.ctx, outcome.RecordId)
	s.Require().NoError(err)
	s.Equal(order.StatusOpen, ord.Status)
	s.Equal("1", ord.DisplayPrice)
	s.activities.AssertCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *engineSuite) TestCreateOrderRevertedRemovesRecord() {
	s.givenSpeciesAsset()
	s.allowAll()
	s.speciesOrders.On("Create", mock.Anything, sellerAddr, mock.Anything).Return(domain.TxHash("0xc2"), nil)
	s.watchSettling("0xc2", domain.TxStatusFailed)

	events, err := s.im.Subscribe(s.ctx)
	s.Require().NoError(err)

	outcome, err := s.im.SubmitIntent(s.ctx, sellerAddr, s.createIntent())
	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeSubmitted, outcome.Kind)

	event := <-events
	s.False(event.Confirmed)

	_, err = s.im.GetOrder(s.ctx, outcome.RecordId)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *engineSuite) TestCreateOrderInvalidPrice() {
	intent := s.createIntent()
	intent.Price = "0"

	outcome, err := s.im.SubmitIntent(s.ctx, sellerAddr, intent)

	s.Require().NoError(err)
	s.Equal(exchange.OutcomeRejected, outcome.Kind)
	s.Equal(domain.ErrInvalidPrice.Error(), outcome.Reason)
	s.speciesOrders.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
	s.authorizations.AssertNotCalled(s.T(), "Check", mock.Anything, mock.Anything)
}

func (s *engineSuite) TestCreateOrderRequiresAuthorization() {
	s.givenSpeciesAsset()
	s.authorizations.On("Check", mock.Anything, mock.Anything).Return(false, nil)

	outcome, err := s.im.SubmitIntent(s.ctx, sellerAddr, s.createIntent())

	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeAuthorizationRequired, outcome.Kind)
	s.Require().NotNil(outcome.Candidate)
	s.Equal(marketplaceAddr, outcome.Candidate.Spender)
	s.Equal(sellerAddr, outcome.Candidate.Owner)
	s.speciesOrders.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestExecuteOrderAssetMismatch() {
	s.orders.byId["ord-1"] = &order.Order{
		Id:      "ord-1",
		AssetId: s.assetId(),
		Vendor:  domain.VendorSpecies,
		Seller:  sellerAddr,
		Price:   "1000000000000000000",
		Status:  order.StatusOpen,
	}
	intent := exchange.Intent{
		Type:     exchange.IntentExecuteOrder,
		RecordId: "ord-1",
		AssetId: asset.Id{
			ChainId:         1,
			ContractAddress: "0x00000000000000000000000000000000000000f2",
			TokenId:         "42",
		},
	}

	outcome, err := s.im.SubmitIntent(s.ctx, buyerAddr, intent)

	s.Require().NoError(err)
	s.Equal(exchange.OutcomeRejected, outcome.Kind)
	s.Equal(domain.ErrOrderAssetMismatch.Error(), outcome.Reason)
}

func (s *engineSuite) TestExecuteOrderFailureRevertsToOpen() {
	s.allowAll()
	s.orders.byId["ord-2"] = &order.Order{
		Id:        "ord-2",
		AssetId:   s.assetId(),
		Vendor:    domain.VendorSpecies,
		Seller:    sellerAddr,
		Price:     "1000000000000000000",
		Status:    order.StatusOpen,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.speciesOrders.On("Execute", mock.Anything, buyerAddr, mock.Anything).Return(domain.TxHash("0xe1"), nil)
	s.watchSettling("0xe1", domain.TxStatusFailed)

	events, err := s.im.Subscribe(s.ctx)
	s.Require().NoError(err)

	outcome, err := s.im.SubmitIntent(s.ctx, buyerAddr, exchange.Intent{Type: exchange.IntentExecuteOrder, RecordId: "ord-2"})
	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeSubmitted, outcome.Kind)

	event := <-events
	s.False(event.Confirmed)
	s.Equal(string(order.StatusOpen), event.Status)

	ord, err := s.im.GetOrder(s.ctx, "ord-2")
	s.Require().NoError(err)
	s.Equal(order.StatusOpen, ord.Status)
}

func (s *engineSuite) TestBuyOnGalleryVendorRejected() {
	s.givenGalleryAsset()

	outcome, err := s.im.SubmitIntent(s.ctx, buyerAddr, exchange.Intent{
		Type:    exchange.IntentBuyAsset,
		AssetId: s.assetId(),
		Price:   "1000000000000000000",
	})

	s.Require().NoError(err)
	s.Equal(exchange.OutcomeRejected, outcome.Kind)
	s.Equal("only creationToken can let you own species", outcome.Reason)
	s.authorizations.AssertNotCalled(s.T(), "Check", mock.Anything, mock.Anything)
	s.galleryOrders.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
	s.speciesBuys.AssertNotCalled(s.T(), "Buy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *engineSuite) TestDoubleCancelAlreadyPending() {
	s.allowAll()
	s.orders.byId["ord-3"] = &order.Order{
		Id:        "ord-3",
		AssetId:   s.assetId(),
		Vendor:    domain.VendorSpecies,
		Seller:    sellerAddr,
		Price:     "1000000000000000000",
		Status:    order.StatusOpen,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.speciesOrders.On("Cancel", mock.Anything, sellerAddr, mock.Anything).Return(domain.TxHash("0xd1"), nil)
	// never settles during the test
	pending := make(chan domain.TxUpdate)
	s.watcher.On("Watch", mock.Anything, domain.ChainId(1), domain.TxHash("0xd1")).Return((<-chan domain.TxUpdate)(pending), nil)

	intent := exchange.Intent{Type: exchange.IntentCancelOrder, RecordId: "ord-3"}

	first, err := s.im.SubmitIntent(s.ctx, sellerAddr, intent)
	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeSubmitted, first.Kind)

	second, err := s.im.SubmitIntent(s.ctx, sellerAddr, intent)
	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeAlreadyPending, second.Kind)
	s.Equal(first.TxHash, second.TxHash)
	s.speciesOrders.AssertNumberOfCalls(s.T(), "Cancel", 1)
	close(pending)
}

func (s *engineSuite) TestPlaceBidOnGalleryRejected() {
	s.givenGalleryAsset()

	outcome, err := s.im.SubmitIntent(s.ctx, buyerAddr, exchange.Intent{
		Type:      exchange.IntentPlaceBid,
		AssetId:   s.assetId(),
		Price:     "1000000000000000000",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	s.Require().NoError(err)
	s.Equal(exchange.OutcomeRejected, outcome.Kind)
	s.Equal(domain.ErrUnsupportedCapability.Error(), outcome.Reason)
}

func (s *engineSuite) TestPlaceAndAcceptBid() {
	s.givenSpeciesAsset()
	s.allowAll()
	s.speciesBids.On("Place", mock.Anything, buyerAddr, mock.Anything).Return(domain.TxHash("0xb1"), nil)
	s.watchSettling("0xb1", domain.TxStatusConfirmed)

	events, err := s.im.Subscribe(s.ctx)
	s.Require().NoError(err)

	outcome, err := s.im.SubmitIntent(s.ctx, buyerAddr, exchange.Intent{
		Type:      exchange.IntentPlaceBid,
		AssetId:   s.assetId(),
		Price:     "2000000000000000000",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeSubmitted, outcome.Kind)

	<-events

	b, err := s.im.GetBid(s.ctx, outcome.RecordId)
	s.Require().NoError(err)
	s.Require().Equal(bid.StatusOpen, b.Status)
	s.Equal("2", b.DisplayPrice)

	s.speciesBids.On("Accept", mock.Anything, sellerAddr, mock.Anything).Return(domain.TxHash("0xb2"), nil)
	s.watchSettling("0xb2", domain.TxStatusConfirmed)

	accepted, err := s.im.SubmitIntent(s.ctx, sellerAddr, exchange.Intent{
		Type:     exchange.IntentAcceptBid,
		RecordId: outcome.RecordId,
	})
	s.Require().NoError(err)
	s.Require().Equal(exchange.OutcomeSubmitted, accepted.Kind)

	<-events

	b, err = s.im.GetBid(s.ctx, outcome.RecordId)
	s.Require().NoError(err)
	s.Equal(bid.StatusAccepted, b.Status)
	s.Equal(sellerAddr, b.Seller)
}

func (s *engineSuite) TestCancelBidNotBidder() {
	s.bids.byId["bid-1"] = &bid.Bid{
		Id:        "bid-1",
		AssetId:   s.assetId(),
		Vendor:    domain.VendorSpecies,
		Bidder:    buyerAddr,
		Price:     "1000000000000000000",
		Status:    bid.StatusOpen,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	outcome, err := s.im.SubmitIntent(s.ctx, sellerAddr, exchange.Intent{
		Type:     exchange.IntentCancelBid,
		RecordId: "bid-1",
	})

	s.Require().NoError(err)
	s.Equal(exchange.OutcomeRejected, outcome.Kind)
	s.Equal(domain.ErrNotBidder.Error(), outcome.Reason)
}

func (s *engineSuite) TestListOrdersExpiresLazily() {
	s.orders.byId["ord-4"] = &order.Order{
		Id:        "ord-4",
		AssetId:   s.assetId(),
		Vendor:    domain.VendorSpecies,
		Seller:    sellerAddr,
		Price:     "1000000000000000000",
		Status:    order.StatusOpen,
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	res, err := s.im.ListOrders(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(order.StatusExpired, res[0].Status)

	stored, err := s.orders.FindOne(s.ctx, "ord-4")
	s.Require().NoError(err)
	s.Equal(order.StatusExpired, stored.Status)
}

func (s *engineSuite) TestUnknownIntentType() {
	_, err := s.im.SubmitIntent(s.ctx, buyerAddr, exchange.Intent{Type: "stake-asset"})
	s.Require().ErrorIs(err, domain.ErrBadParamInput)
}
