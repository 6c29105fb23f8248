package gallery

import (
	"math/big"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/order"
	"github.com/specieverse/goapi/domain/vendors"
	"github.com/specieverse/goapi/service/chain/contract"
)

// NftReader is the chain surface the gallery service reads ownership
// through. *contract.Erc721 satisfies it.
type NftReader interface {
	OwnerOf(ctx ctx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error)
}

// TokenReader reads payment token state. *contract.Erc20 satisfies it.
type TokenReader interface {
	BalanceOf(ctx ctx.Ctx, chainId domain.ChainId, addr, owner string) (*big.Int, error)
}

type OrderServiceCfg struct {
	Contracts   vendor.ContractService
	Wallet      domain.WalletProvider
	Nft         NftReader
	Token       TokenReader
	Marketplace *contract.Marketplace
}

type orderService struct {
	contracts   vendor.ContractService
	wallet      domain.WalletProvider
	nft         NftReader
	token       TokenReader
	marketplace *contract.Marketplace
}

// NewOrderService builds the gallery listing surface. Gallery assets are
// plain tokens, so there is no fingerprint handling here.
func NewOrderService(cfg *OrderServiceCfg) vendor.OrderService {
	return &orderService{
		contracts:   cfg.Contracts,
		wallet:      cfg.Wallet,
		nft:         cfg.Nft,
		token:       cfg.Token,
		marketplace: cfg.Marketplace,
	}
}

func (im *orderService) Create(ctx ctx.Ctx, caller domain.Address, ord *order.Order) (domain.TxHash, error) {
	chainId := ord.AssetId.ChainId

	marketplace, err := im.contracts.Marketplace(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := ord.AssetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	owner, err := im.nft.OwnerOf(ctx, chainId, ord.AssetId.ContractAddress.ToLowerStr(), tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": ord.AssetId,
		}).Error("nft.OwnerOf failed")
		return "", err
	}
	if !caller.Equals(domain.Address(owner)) {
		return "", domain.ErrNotOwner
	}

	price, ok := new(big.Int).SetString(ord.Price, 10)
	if !ok {
		return "", domain.ErrInvalidNumberFormat
	}

	data, err := im.marketplace.PackCreateOrder(
		ord.AssetId.ContractAddress.ToLowerStr(),
		tokenId,
		price,
		big.NewInt(ord.ExpiresAt.Unix()),
	)
	if err != nil {
		return "", err
	}

	return im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: chainId,
		From:    caller,
		To:      marketplace,
		Data:    data,
	})
}

func (im *orderService) Execute(ctx ctx.Ctx, caller domain.Address, ord *order.Order) (domain.TxHash, error) {
	chainId := ord.AssetId.ChainId

	marketplace, err := im.contracts.Marketplace(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := ord.AssetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	price, ok := new(big.Int).SetString(ord.Price, 10)
	if !ok {
		return "", domain.ErrInvalidNumberFormat
	}

	paymentToken, err := im.contracts.PaymentToken(chainId)
	if err != nil {
		return "", err
	}
	if balance, err := im.token.BalanceOf(ctx, chainId, paymentToken.ToLowerStr(), caller.ToLowerStr()); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"caller": caller,
		}).Warn("balance read failed, assuming sufficient")
	} else if balance.Cmp(price) < 0 {
		return "", domain.ErrInsufficientBalance
	}

	data, err := im.marketplace.PackExecuteOrder(ord.AssetId.ContractAddress.ToLowerStr(), tokenId, price)
	if err != nil {
		return "", err
	}

	return im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: chainId,
		From:    caller,
		To:      marketplace,
		Data:    data,
	})
}

func (im *orderService) Cancel(ctx ctx.Ctx, caller domain.Address, ord *order.Order) (domain.TxHash, error) {
	chainId := ord.AssetId.ChainId

	if !caller.Equals(ord.Seller) {
		return "", domain.ErrNotOwner
	}

	marketplace, err := im.contracts.Marketplace(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := ord.AssetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	data, err := im.marketplace.PackCancelOrder(ord.AssetId.ContractAddress.ToLowerStr(), tokenId)
	if err != nil {
		return "", err
	}

	return im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: chainId,
		From:    caller,
		To:      marketplace,
		Data:    data,
	})
}
