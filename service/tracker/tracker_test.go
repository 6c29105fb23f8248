package tracker

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/service/chain"
)

type fakeEth struct {
	// receipt is returned once calls reaches after
	receipt *types.Receipt
	after   int
	calls   int
}

func (f *fakeEth) BlockNumber(context.Context) (uint64, error) { return 0, nil }

func (f *fakeEth) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return nil, nil
}

func (f *fakeEth) TransactionByHash(context.Context, common.Hash) (*types.Transaction, bool, error) {
	return nil, true, nil
}

func (f *fakeEth) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	f.calls++
	if f.receipt != nil && f.calls >= f.after {
		return f.receipt, nil
	}
	return nil, ethereum.NotFound
}

type fakeChain struct {
	eth domain.EthClientRepo
}

func (f *fakeChain) Call(bCtx.Ctx, domain.ChainId, common.Address, *big.Int, ethabi.ABI, string, ...interface{}) ([]interface{}, error) {
	return nil, nil
}

func (f *fakeChain) Eth(chainId domain.ChainId) (domain.EthClientRepo, error) {
	if f.eth == nil {
		return nil, chain.ErrUnsupportedChain
	}
	return f.eth, nil
}

func collect(t *testing.T, ch <-chan domain.TxUpdate) []domain.TxUpdate {
	t.Helper()
	var res []domain.TxUpdate
	deadline := time.After(5 * time.Second)
	for {
		select {
		case u, ok := <-ch:
			if !ok {
				return res
			}
			res = append(res, u)
		case <-deadline:
			t.Fatal("watcher did not close its channel")
		}
	}
}

func TestWatchConfirmed(t *testing.T) {
	req := require.New(t)

	eth := &fakeEth{
		receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful},
		after:   3,
	}
	w := New(&fakeChain{eth: eth}, Cfg{PollInterval: 5 * time.Millisecond, Timeout: time.Second})

	ch, err := w.Watch(bCtx.Background(), 1, "0xabc")
	req.NoError(err)

	updates := collect(t, ch)
	req.NotEmpty(updates)
	req.Equal(domain.TxStatusPending, updates[0].Status)
	req.Equal(domain.TxStatusConfirmed, updates[len(updates)-1].Status)
	req.GreaterOrEqual(eth.calls, 3)
}

func TestWatchReverted(t *testing.T) {
	req := require.New(t)

	eth := &fakeEth{
		receipt: &types.Receipt{Status: types.ReceiptStatusFailed},
		after:   1,
	}
	w := New(&fakeChain{eth: eth}, Cfg{PollInterval: 5 * time.Millisecond, Timeout: time.Second})

	ch, err := w.Watch(bCtx.Background(), 1, "0xabc")
	req.NoError(err)

	updates := collect(t, ch)
	req.Equal(domain.TxStatusFailed, updates[len(updates)-1].Status)
}

func TestWatchTimeout(t *testing.T) {
	req := require.New(t)

	w := New(&fakeChain{eth: &fakeEth{}}, Cfg{PollInterval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond})

	ch, err := w.Watch(bCtx.Background(), 1, "0xabc")
	req.NoError(err)

	updates := collect(t, ch)
	req.Equal(domain.TxStatusFailed, updates[len(updates)-1].Status)
}

func TestWatchUnsupportedChain(t *testing.T) {
	w := New(&fakeChain{}, Cfg{})
	_, err := w.Watch(bCtx.Background(), 42, "0xabc")
	require.Equal(t, chain.ErrUnsupportedChain, err)
}
