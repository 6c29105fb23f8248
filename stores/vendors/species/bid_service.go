package species

import (
	"math/big"
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/bid"
	"github.com/specieverse/goapi/domain/vendors"
	"github.com/specieverse/goapi/service/chain/contract"
)

type BidServiceCfg struct {
	Contracts vendor.ContractService
	Wallet    domain.WalletProvider
	Nft       NftReader
	Token     TokenReader
	Bids      *contract.Bids
}

type bidService struct {
	contracts vendor.ContractService
	wallet    domain.WalletProvider
	nft       NftReader
	token     TokenReader
	bids      *contract.Bids
}

var timeNow = time.Now

// NewBidService builds the species offer surface.
func NewBidService(cfg *BidServiceCfg) vendor.BidService {
	return &bidService{
		contracts: cfg.Contracts,
		wallet:    cfg.Wallet,
		nft:       cfg.Nft,
		token:     cfg.Token,
		bids:      cfg.Bids,
	}
}

func (im *bidService) Place(ctx ctx.Ctx, caller domain.Address, b *bid.Bid) (domain.TxHash, error) {
	chainId := b.AssetId.ChainId

	bidsContract, err := im.contracts.Bids(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := b.AssetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	price, err := parseWei(b.Price)
	if err != nil {
		return "", err
	}

	if err := checkBalance(ctx, im.contracts, im.token, chainId, caller, price); err != nil {
		return "", err
	}

	duration := big.NewInt(int64(b.ExpiresAt.Sub(timeNow()) / time.Second))
	data, err := im.bids.PackPlaceBid(b.AssetId.ContractAddress.ToLowerStr(), tokenId, price, duration, b.Fingerprint)
	if err != nil {
		return "", err
	}

	return im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: chainId,
		From:    caller,
		To:      bidsContract,
		Data:    data,
	})
}

func (im *bidService) Accept(ctx ctx.Ctx, caller domain.Address, b *bid.Bid) (domain.TxHash, error) {
	chainId := b.AssetId.ChainId

	bidsContract, err := im.contracts.Bids(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := b.AssetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	owner, err := im.nft.OwnerOf(ctx, chainId, b.AssetId.ContractAddress.ToLowerStr(), tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": b.AssetId,
		}).Error("nft.OwnerOf failed")
		return "", err
	}
	if !caller.Equals(domain.Address(owner)) {
		return "", domain.ErrNotOwner
	}

	// a bid pinned to a composition is only acceptable while the
	// composition still matches
	current := readFingerprint(ctx, im.nft, chainId, b.AssetId.ContractAddress.ToLowerStr(), tokenId)
	if !bid.CheckFingerprint(b, current) {
		return "", domain.ErrFingerprintMismatch
	}

	data, err := im.bids.PackAcceptBid(b.AssetId.ContractAddress.ToLowerStr(), tokenId, b.Bidder.ToLowerStr())
	if err != nil {
		return "", err
	}

	return im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: chainId,
		From:    caller,
		To:      bidsContract,
		Data:    data,
	})
}

func (im *bidService) Cancel(ctx ctx.Ctx, caller domain.Address, b *bid.Bid) (domain.TxHash, error) {
	chainId := b.AssetId.ChainId

	if !caller.Equals(b.Bidder) {
		return "", domain.ErrNotBidder
	}

	bidsContract, err := im.contracts.Bids(chainId)
	if err != nil {
		return "", err
	}

	tokenId, err := b.AssetId.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	data, err := im.bids.PackCancelBid(b.AssetId.ContractAddress.ToLowerStr(), tokenId)
	if err != nil {
		return "", err
	}

	return im.wallet.Submit(ctx, &domain.RawCall{
		ChainId: chainId,
		From:    caller,
		To:      bidsContract,
		Data:    data,
	})
}
