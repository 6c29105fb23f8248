package species

import (
	"math/big"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/vendors"
	"github.com/specieverse/goapi/service/chain/contract"
)

type BuyServiceCfg struct {
	Contracts   vendor.ContractService
	Wallet      domain.WalletProvider
	Nft         NftReader
	Token       TokenReader
	Marketplace *contract.Marketplace
}

type buyService struct {
	contracts   vendor.ContractService
	wallet      domain.WalletProvider
	nft         NftReader
	token       TokenReader
	marketplace *contract.Marketplace
}

// NewBuyService builds the direct-purchase surface. Only the species
// bundle carries it.
func NewBuyService(cfg *BuyServiceCfg) vendor.BuyService {
	return &buyService{
		contracts:   cfg.Contracts,
		wallet:      cfg.Wallet,
		nft:         cfg.Nft,
		token:       cfg.Token,
		marketplace: cfg.Marketplace,
	}
}

func (im *buyService) Buy(ctx ctx.Ctx, caller domain.Address, assetId asset.Id, price *big.Int) (domain.TxHash, error) {
	chainId := assetId.ChainId

	marketplace, err := im.contracts.Marketplace(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := assetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	if err := checkBalance(ctx, im.contracts, im.token, chainId, caller, price); err != nil {
		return "", err
	}

	data, err := im.marketplace.PackExecuteOrder(assetId.ContractAddress.ToLowerStr(), tokenId, price)
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
