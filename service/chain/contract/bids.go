package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	baseabi "github.com/specieverse/goapi/base/abi"
)

// Bids builds calldata for the offer contract.
type Bids struct {
	abi ethabi.ABI
}

func NewBids() *Bids {
	return &Bids{abi: baseabi.BidsABI}
}

func (b *Bids) PackPlaceBid(tokenAddress string, tokenId, price, duration *big.Int, fingerprint string) ([]byte, error) {
	fp := []byte{}
	if fingerprint != "" {
		decoded, err := hexutil.Decode(fingerprint)
		if err != nil {
			return nil, err
		}
		fp = decoded
	}
	return b.abi.Pack("placeBid", common.HexToAddress(tokenAddress), tokenId, price, duration, fp)
}

func (b *Bids) PackAcceptBid(tokenAddress string, tokenId *big.Int, bidder string) ([]byte, error) {
	return b.abi.Pack("acceptBid", common.HexToAddress(tokenAddress), tokenId, common.HexToAddress(bidder))
}

func (b *Bids) PackCancelBid(tokenAddress string, tokenId *big.Int) ([]byte, error) {
	return b.abi.Pack("cancelBid", common.HexToAddress(tokenAddress), tokenId)
}
