package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/authorization"
	mAuthorization "github.com/specieverse/goapi/domain/authorization/mocks"
	mDomain "github.com/specieverse/goapi/domain/mocks"
)

type fakeErc20 struct {
	allowance *big.Int
	err       error
}

func (f *fakeErc20) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner, spender string) (*big.Int, error) {
	return f.allowance, f.err
}

func (f *fakeErc20) PackApprove(spender string, amount *big.Int) ([]byte, error) {
	return []byte("approve:" + spender + ":" + amount.String()), nil
}

type fakeErc721 struct {
	approved bool
	err      error
}

func (f *fakeErc721) IsApprovedForAll(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner, operator string) (bool, error) {
	return f.approved, f.err
}

func (f *fakeErc721) PackSetApprovalForAll(operator string, approved bool) ([]byte, error) {
	if approved {
		return []byte("approveAll:" + operator), nil
	}
	return []byte("revokeAll:" + operator), nil
}

type usecaseSuite struct {
	suite.Suite

	ctx    bCtx.Ctx
	repo   *mAuthorization.Repo
	wallet *mDomain.WalletProvider
	erc20  *fakeErc20
	erc721 *fakeErc721
	im     authorization.UseCase
}

func TestAuthorizationUseCase(t *testing.T) {
	suite.Run(t, new(usecaseSuite))
}

func (s *usecaseSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &mAuthorization.Repo{}
	s.wallet = &mDomain.WalletProvider{}
	s.erc20 = &fakeErc20{allowance: big.NewInt(0)}
	s.erc721 = &fakeErc721{}
	s.im = New(&AuthorizationUseCaseCfg{
		Repo:   s.repo,
		Wallet: s.wallet,
		Erc20:  s.erc20,
		Erc721: s.erc721,
		Expiry: 24 * time.Hour,
	})
}

func (s *usecaseSuite) candidate() authorization.Authorization {
	return authorization.Authorization{
		Owner:         "0x00000000000000000000000000000000000000aa",
		Spender:       "0x00000000000000000000000000000000000000bb",
		TokenContract: "0x00000000000000000000000000000000000000cc",
		ChainId:       1,
		Kind:          authorization.KindAllowance,
	}
}

func (s *usecaseSuite) TestCheckKnownGrant() {
	candidate := s.candidate()
	known := candidate
	known.GrantedAt = time.Now().Add(-time.Hour)
	s.repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]authorization.Authorization{known}, nil)

	ok, err := s.im.Check(s.ctx, candidate)

	s.Require().NoError(err)
	s.True(ok)
}

func (s *usecaseSuite) TestCheckStaleGrantFallsBackToChain() {
	candidate := s.candidate()
	known := candidate
	known.GrantedAt = time.Now().Add(-48 * time.Hour)
	s.repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]authorization.Authorization{known}, nil)
	s.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	s.erc20.allowance = big.NewInt(1)

	ok, err := s.im.Check(s.ctx, candidate)

	s.Require().NoError(err)
	s.True(ok)
	// the refreshed grant is recorded for next time
	s.repo.AssertCalled(s.T(), "Upsert", mock.Anything, mock.MatchedBy(func(a authorization.Authorization) bool {
		return a.Satisfies(candidate) && !a.GrantedAt.IsZero()
	}))
}

func (s *usecaseSuite) TestCheckChainReadFailureMeansNotAuthorized() {
	candidate := s.candidate()
	s.repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	s.erc20.err = errors.New("node unreachable")

	ok, err := s.im.Check(s.ctx, candidate)

	s.Require().NoError(err)
	s.False(ok)
}

func (s *usecaseSuite) TestCheckApprovalCoversAllowance() {
	candidate := s.candidate()
	known := candidate
	known.Kind = authorization.KindApprovalForAll
	known.GrantedAt = time.Now()
	s.repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]authorization.Authorization{known}, nil)

	ok, err := s.im.Check(s.ctx, candidate)

	s.Require().NoError(err)
	s.True(ok)
}

func (s *usecaseSuite) TestGrantSubmitsAndRecords() {
	candidate := s.candidate()
	candidate.Kind = authorization.KindApprovalForAll
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash("0xgrant"), nil)
	s.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	hash, err := s.im.Grant(s.ctx, candidate)

	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xgrant"), hash)
	s.wallet.AssertCalled(s.T(), "Submit", mock.Anything, mock.MatchedBy(func(call *domain.RawCall) bool {
		return call.From == candidate.Owner &&
			call.To == candidate.TokenContract &&
			string(call.Data) == "approveAll:"+candidate.Spender.ToLowerStr()
	}))
}

func (s *usecaseSuite) TestGrantRejectedByWallet() {
	candidate := s.candidate()
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash(""), domain.ErrUserRejected)

	_, err := s.im.Grant(s.ctx, candidate)

	s.Require().ErrorIs(err, domain.ErrUserRejected)
	s.repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *usecaseSuite) TestRevokeRemovesRecord() {
	candidate := s.candidate()
	s.wallet.On("Submit", mock.Anything, mock.Anything).Return(domain.TxHash("0xrevoke"), nil)
	s.repo.On("Remove", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	hash, err := s.im.Revoke(s.ctx, candidate)

	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xrevoke"), hash)
	s.wallet.AssertCalled(s.T(), "Submit", mock.Anything, mock.MatchedBy(func(call *domain.RawCall) bool {
		return string(call.Data) == "approve:"+candidate.Spender.ToLowerStr()+":0"
	}))
}

func (s *usecaseSuite) TestUnknownKind() {
	candidate := s.candidate()
	candidate.Kind = authorization.Kind("signature")

	_, err := s.im.Grant(s.ctx, candidate)

	s.Require().ErrorIs(err, domain.ErrInvalidAuthorizationKind)
}
