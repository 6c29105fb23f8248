package species

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	mDomain "github.com/specieverse/goapi/domain/mocks"
	"github.com/specieverse/goapi/domain/order"
	mVendor "github.com/specieverse/goapi/domain/vendors/mocks"
	"github.com/specieverse/goapi/service/chain/contract"
)

type fakeNft struct {
	owner          string
	ownerErr       error
	fingerprint    string
	fingerprintErr error
}

func (f *fakeNft) OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error) {
	return f.owner, f.ownerErr
}

func (f *fakeNft) GetFingerprint(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error) {
	return f.fingerprint, f.fingerprintErr
}

type fakeToken struct {
	balance *big.Int
	err     error
}

func (f *fakeToken) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner string) (*big.Int, error) {
	return f.balance, f.err
}

type orderServiceSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	contracts *mVendor.ContractService
	wallet    *mDomain.WalletProvider
	nft       *fakeNft
	token     *fakeToken
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(orderServiceSuite))
}

func (s *orderServiceSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.contracts = &mVendor.ContractService{}
	s.wallet = &mDomain.WalletProvider{}
	s.nft = &fakeNft{}
	s.token = &fakeToken{}
}

func (s *orderServiceSuite) service() *orderService {
	return NewOrderService(&OrderServiceCfg{
		Contracts:   s.contracts,
		Wallet:      s.wallet,
		Nft:         s.nft,
		Token:       s.token,
		Marketplace: contract.NewMarketplace(),
	}).(*orderService)
}

func (s *orderServiceSuite) order() *order.Order {
	return &order.Order{
		Id: "ord-1",
		AssetId: asset.Id{
			ChainId:         1,
			ContractAddress: "0x00000000000000000000000000000000000000aa",
			TokenId:         "7",
		},
		Vendor:    domain.VendorSpecies,
		Seller:    "0x00000000000000000000000000000000000000s1",
		Price:     "1000000000000000000",
		Status:    order.StatusOpen,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (s *orderServiceSuite) TestCreateNotOwner() {
	ord := s.order()
	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.nft.owner = "0x0000000000000000000000000000000000someone"

	_, err := s.service().Create(s.ctx, ord.Seller, ord)

	s.Require().ErrorIs(err, domain.ErrNotOwner)
	s.wallet.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything)
}

func (s *orderServiceSuite) TestCreateSubmits() {
	ord := s.order()
	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.nft.owner = ord.Seller.ToLowerStr()
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash("0xabc"), nil)

	hash, err := s.service().Create(s.ctx, ord.Seller, ord)

	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xabc"), hash)
	s.wallet.AssertCalled(s.T(), "Submit", mock.Anything, mock.MatchedBy(func(call *domain.RawCall) bool {
		return call.ChainId == 1 &&
			call.From == ord.Seller &&
			call.To == domain.Address("0x00000000000000000000000000000000000000mm") &&
			len(call.Data) > 4
	}))
}

func (s *orderServiceSuite) TestCreateBadPrice() {
	ord := s.order()
	ord.Price = "1.5e18"
	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.nft.owner = ord.Seller.ToLowerStr()

	_, err := s.service().Create(s.ctx, ord.Seller, ord)

	s.Require().ErrorIs(err, domain.ErrInvalidNumberFormat)
}

func (s *orderServiceSuite) TestExecuteInsufficientBalance() {
	ord := s.order()
	buyer := domain.Address("0x00000000000000000000000000000000000000b1")
	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.contracts.On("PaymentToken", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000pt"), nil)
	s.token.balance = big.NewInt(1)

	_, err := s.service().Execute(s.ctx, buyer, ord)

	s.Require().ErrorIs(err, domain.ErrInsufficientBalance)
	s.wallet.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything)
}

func (s *orderServiceSuite) TestExecuteBalanceReadFailureIsNotFatal() {
	ord := s.order()
	buyer := domain.Address("0x00000000000000000000000000000000000000b1")
	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.contracts.On("PaymentToken", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000pt"), nil)
	s.token.err = errors.New("node is syncing")
	s.nft.fingerprintErr = errors.New("execution reverted")
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash("0xdef"), nil)

	hash, err := s.service().Execute(s.ctx, buyer, ord)

	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xdef"), hash)
}

func (s *orderServiceSuite) TestExecuteUsesSafePathWithFingerprint() {
	ord := s.order()
	buyer := domain.Address("0x00000000000000000000000000000000000000b1")
	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.contracts.On("PaymentToken", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000pt"), nil)
	s.token.balance, _ = new(big.Int).SetString(ord.Price, 10)
	s.nft.fingerprint = "0x1111111111111111111111111111111111111111111111111111111111111111"
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash("0xdef"), nil)

	_, err := s.service().Execute(s.ctx, buyer, ord)
	s.Require().NoError(err)

	m := contract.NewMarketplace()
	plain, err := m.PackExecuteOrder(ord.AssetId.ContractAddress.ToLowerStr(), big.NewInt(7), s.token.balance)
	s.Require().NoError(err)
	s.wallet.AssertCalled(s.T(), "Submit", mock.Anything, mock.MatchedBy(func(call *domain.RawCall) bool {
		// pinned entry point, not the plain one
		return string(call.Data[:4]) != string(plain[:4])
	}))
}

func (s *orderServiceSuite) TestCancelOnlySeller() {
	ord := s.order()
	stranger := domain.Address("0x00000000000000000000000000000000000000b1")

	_, err := s.service().Cancel(s.ctx, stranger, ord)

	s.Require().ErrorIs(err, domain.ErrNotOwner)

	s.contracts.On("Marketplace", domain.ChainId(1)).Return(domain.Address("0x00000000000000000000000000000000000000mm"), nil)
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash("0xccc"), nil)

	hash, err := s.service().Cancel(s.ctx, ord.Seller, ord)
	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xccc"), hash)
}
