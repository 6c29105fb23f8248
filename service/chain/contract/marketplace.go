package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	baseabi "github.com/specieverse/goapi/base/abi"
)

// Marketplace builds calldata for the listing contract. All mutations go
// out through the wallet layer, so there are no read methods here.
type Marketplace struct {
	abi ethabi.ABI
}

func NewMarketplace() *Marketplace {
	return &Marketplace{abi: baseabi.MarketplaceABI}
}

func (m *Marketplace) PackCreateOrder(nftAddress string, assetId, priceInWei, expiresAt *big.Int) ([]byte, error) {
	return m.abi.Pack("createOrder", common.HexToAddress(nftAddress), assetId, priceInWei, expiresAt)
}

func (m *Marketplace) PackExecuteOrder(nftAddress string, assetId, price *big.Int) ([]byte, error) {
	return m.abi.Pack("executeOrder", common.HexToAddress(nftAddress), assetId, price)
}

// PackSafeExecuteOrder pins the asset fingerprint so composable assets
// cannot change underneath the buyer.
func (m *Marketplace) PackSafeExecuteOrder(nftAddress string, assetId, price *big.Int, fingerprint string) ([]byte, error) {
	fp, err := hexutil.Decode(fingerprint)
	if err != nil {
		return nil, err
	}
	return m.abi.Pack("safeExecuteOrder", common.HexToAddress(nftAddress), assetId, price, fp)
}

func (m *Marketplace) PackCancelOrder(nftAddress string, assetId *big.Int) ([]byte, error) {
	return m.abi.Pack("cancelOrder", common.HexToAddress(nftAddress), assetId)
}
