package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/specieverse/goapi/base/abi"
	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/service/chain"
)

type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc20(chainService chain.Client) *Erc20 {
	return &Erc20{
		chainService: chainService,
		abi:          baseabi.ERC20ABI,
	}
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner string) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner, spender string) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) PackApprove(spender string, amount *big.Int) ([]byte, error) {
	return e.abi.Pack("approve", common.HexToAddress(spender), amount)
}
