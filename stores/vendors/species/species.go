package species

import (
	"math/big"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/vendors"
)

// NftReader is the chain surface the species services read asset state
// through. *contract.Erc721 satisfies it.
type NftReader interface {
	OwnerOf(ctx ctx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error)
	GetFingerprint(ctx ctx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error)
}

// TokenReader reads payment token state. *contract.Erc20 satisfies it.
type TokenReader interface {
	BalanceOf(ctx ctx.Ctx, chainId domain.ChainId, addr, owner string) (*big.Int, error)
}

func parseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return v, nil
}

// checkBalance rejects a purchase the payment token cannot cover. A
// failed balance read is treated as sufficient; the node may be behind
// and the contract settles the truth anyway.
func checkBalance(ctx ctx.Ctx, contracts vendor.ContractService, token TokenReader, chainId domain.ChainId, caller domain.Address, price *big.Int) error {
	paymentToken, err := contracts.PaymentToken(chainId)
	if err != nil {
		return err
	}

	balance, err := token.BalanceOf(ctx, chainId, paymentToken.ToLowerStr(), caller.ToLowerStr())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"caller": caller,
		}).Warn("balance read failed, assuming sufficient")
		return nil
	}
	if balance.Cmp(price) < 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// readFingerprint returns "" for contracts without the composable
// extension; those calls revert and callers use the plain path.
func readFingerprint(ctx ctx.Ctx, nft NftReader, chainId domain.ChainId, addr string, tokenId *big.Int) string {
	fingerprint, err := nft.GetFingerprint(ctx, chainId, addr, tokenId)
	if err != nil {
		return ""
	}
	return fingerprint
}
