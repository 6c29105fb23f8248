package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	baseabi "github.com/specieverse/goapi/base/abi"
	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/service/chain"
)

type Erc721 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc721(chainService chain.Client) *Erc721 {
	return &Erc721{
		chainService: chainService,
		abi:          baseabi.ERC721ABI,
	}
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "ownerOf", tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(common.Address).String(), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner, operator string) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "isApprovedForAll", common.HexToAddress(owner), common.HexToAddress(operator))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

// GetFingerprint reads the composition hash of a composable token.
// Contracts without the extension revert; callers treat that as no
// fingerprint.
func (e *Erc721) GetFingerprint(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "getFingerprint", tokenId)
	if err != nil {
		return "", err
	}
	fp := unpacked[0].([32]byte)
	return hexutil.Encode(fp[:]), nil
}

func (e *Erc721) PackSetApprovalForAll(operator string, approved bool) ([]byte, error) {
	return e.abi.Pack("setApprovalForAll", common.HexToAddress(operator), approved)
}
