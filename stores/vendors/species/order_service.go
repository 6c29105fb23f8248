package species

import (
	"math/big"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/order"
	"github.com/specieverse/goapi/domain/vendors"
	"github.com/specieverse/goapi/service/chain/contract"
)

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

// NewOrderService builds the species listing surface. Validation here is
// against current chain state; callers are expected to have validated
// the record shape already.
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

	price, err := parseWei(ord.Price)
	if err != nil {
		return "", err
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

	price, err := parseWei(ord.Price)
	if err != nil {
		return "", err
	}

	if err := checkBalance(ctx, im.contracts, im.token, chainId, caller, price); err != nil {
		return "", err
	}

	// composable assets execute through the fingerprint-pinned entry
	// point so the composition cannot change underneath the buyer
	fingerprint := readFingerprint(ctx, im.nft, chainId, ord.AssetId.ContractAddress.ToLowerStr(), tokenId)

	var data []byte
	if fingerprint != "" {
		data, err = im.marketplace.PackSafeExecuteOrder(ord.AssetId.ContractAddress.ToLowerStr(), tokenId, price, fingerprint)
	} else {
		data, err = im.marketplace.PackExecuteOrder(ord.AssetId.ContractAddress.ToLowerStr(), tokenId, price)
	}
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

