package usecase

import (
	"math/big"
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/authorization"
)

var timeNow = time.Now

// maxAllowance is the customary unlimited erc20 approval amount.
var maxAllowance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// TokenApprover reads and builds erc20 allowance calls. *contract.Erc20
// satisfies it.
type TokenApprover interface {
	Allowance(ctx ctx.Ctx, chainId domain.ChainId, addr, owner, spender string) (*big.Int, error)
	PackApprove(spender string, amount *big.Int) ([]byte, error)
}

// OperatorApprover reads and builds erc721 operator approval calls.
// *contract.Erc721 satisfies it.
type OperatorApprover interface {
	IsApprovedForAll(ctx ctx.Ctx, chainId domain.ChainId, addr, owner, operator string) (bool, error)
	PackSetApprovalForAll(operator string, approved bool) ([]byte, error)
}

type AuthorizationUseCaseCfg struct {
	Repo     authorization.Repo
	Wallet   domain.WalletProvider
	Erc20    TokenApprover
	Erc721   OperatorApprover
	// Expiry bounds how long a recorded grant is trusted without
	// re-reading the chain. Zero means grants never go stale.
	Expiry time.Duration
}

type impl struct {
	repo   authorization.Repo
	wallet domain.WalletProvider
	erc20  TokenApprover
	erc721 OperatorApprover
	expiry time.Duration
}

func New(cfg *AuthorizationUseCaseCfg) authorization.UseCase {
	return &impl{
		repo:   cfg.Repo,
		wallet: cfg.Wallet,
		erc20:  cfg.Erc20,
		erc721: cfg.Erc721,
		expiry: cfg.Expiry,
	}
}

// Check consults recorded grants first and falls back to the chain. A
// grant observed on chain is recorded so the next check stays local.
func (im *impl) Check(ctx ctx.Ctx, candidate authorization.Authorization) (bool, error) {
	candidate.LowerCase()

	known, err := im.repo.FindAll(ctx,
		authorization.WithOwner(candidate.Owner),
		authorization.WithChainId(candidate.ChainId),
	)
	if err != nil {
		ctx.WithField("err", err).Error("authorization.FindAll failed")
		return false, err
	}

	if authorization.IsAuthorized(candidate, im.fresh(known)) {
		return true, nil
	}

	granted, err := im.checkChain(ctx, candidate)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"candidate": candidate,
		}).Warn("on-chain authorization read failed")
		return false, nil
	}
	if !granted {
		return false, nil
	}

	candidate.GrantedAt = timeNow()
	if err := im.repo.Upsert(ctx, candidate); err != nil {
		ctx.WithField("err", err).Warn("recording observed grant failed")
	}
	return true, nil
}

func (im *impl) Grant(ctx ctx.Ctx, candidate authorization.Authorization) (domain.TxHash, error) {
	candidate.LowerCase()

	data, err := im.packGrant(candidate, true)
	if err != nil {
		return "", err
	}

	txHash, err := im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: candidate.ChainId,
		From:    candidate.Owner,
		To:      candidate.TokenContract,
		Data:    data,
	})
	if err != nil {
		return "", err
	}

	candidate.GrantedAt = timeNow()
	if err := im.repo.Upsert(ctx, candidate); err != nil {
		ctx.WithField("err", err).Error("authorization.Upsert failed")
		return "", err
	}
	return txHash, nil
}

func (im *impl) Revoke(ctx ctx.Ctx, candidate authorization.Authorization) (domain.TxHash, error) {
	candidate.LowerCase()

	data, err := im.packGrant(candidate, false)
	if err != nil {
		return "", err
	}

	txHash, err := im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: candidate.ChainId,
		From:    candidate.Owner,
		To:      candidate.TokenContract,
		Data:    data,
	})
	if err != nil {
		return "", err
	}

	if err := im.repo.Remove(ctx, candidate); err != nil && err != domain.ErrNotFound {
		ctx.WithField("err", err).Error("authorization.Remove failed")
		return "", err
	}
	return txHash, nil
}

// fresh drops grants older than the configured expiry. Stale grants are
// not deleted; the next chain read re-records them if still valid.
func (im *impl) fresh(known []authorization.Authorization) []authorization.Authorization {
	if im.expiry <= 0 {
		return known
	}
	cutoff := timeNow().Add(-im.expiry)
	res := make([]authorization.Authorization, 0, len(known))
	for _, a := range known {
		if a.GrantedAt.After(cutoff) {
			res = append(res, a)
		}
	}
	return res
}

func (im *impl) checkChain(ctx ctx.Ctx, candidate authorization.Authorization) (bool, error) {
	switch candidate.Kind {
	case authorization.KindAllowance:
		allowance, err := im.erc20.Allowance(ctx, candidate.ChainId,
			candidate.TokenContract.ToLowerStr(), candidate.Owner.ToLowerStr(), candidate.Spender.ToLowerStr())
		if err != nil {
			return false, err
		}
		return allowance.Sign() > 0, nil
	case authorization.KindApprovalForAll:
		return im.erc721.IsApprovedForAll(ctx, candidate.ChainId,
			candidate.TokenContract.ToLowerStr(), candidate.Owner.ToLowerStr(), candidate.Spender.ToLowerStr())
	}
	return false, domain.ErrInvalidAuthorizationKind
}

func (im *impl) packGrant(candidate authorization.Authorization, grant bool) ([]byte, error) {
	switch candidate.Kind {
	case authorization.KindAllowance:
		amount := big.NewInt(0)
		if grant {
			amount = maxAllowance
		}
		return im.erc20.PackApprove(candidate.Spender.ToLowerStr(), amount)
	case authorization.KindApprovalForAll:
		return im.erc721.PackSetApprovalForAll(candidate.Spender.ToLowerStr(), grant)
	}
	return nil, domain.ErrInvalidAuthorizationKind
}
