package tracker

import (
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/specieverse/goapi/base/backoff"
	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/goroutine"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/base/metrics"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/service/chain"
)

type Cfg struct {
	// PollInterval is the receipt polling period.
	PollInterval time.Duration
	// Timeout bounds how long a hash may stay pending before it is
	// reported failed.
	Timeout time.Duration
}

type impl struct {
	chainClient chain.Client
	cfg         Cfg
	met         metrics.Service
}

// New builds a receipt-polling transaction watcher.
func New(chainClient chain.Client, cfg Cfg) domain.TxWatcher {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &impl{
		chainClient: chainClient,
		cfg:         cfg,
		met:         metrics.New("tracker"),
	}
}

func (im *impl) Watch(ctx bCtx.Ctx, chainId domain.ChainId, hash domain.TxHash) (<-chan domain.TxUpdate, error) {
	eth, err := im.chainClient.Eth(chainId)
	if err != nil {
		return nil, err
	}

	updates := make(chan domain.TxUpdate, 4)

	goroutine.RecoverableGo(func() {
		defer close(updates)

		watchCtx, cancel := bCtx.WithTimeout(ctx, im.cfg.Timeout)
		defer cancel()

		txHash := common.HexToHash(string(hash))
		poll := backoff.NewConstant(im.cfg.PollInterval)

		updates <- domain.TxUpdate{ChainId: chainId, Hash: hash, Status: domain.TxStatusPending}

		for {
			receipt, err := eth.TransactionReceipt(watchCtx, txHash)
			if err == nil && receipt != nil {
				status := domain.TxStatusConfirmed
				if receipt.Status == types.ReceiptStatusFailed {
					status = domain.TxStatusFailed
				}
				im.met.BumpSum("settled", 1, "status", string(status))
				updates <- domain.TxUpdate{ChainId: chainId, Hash: hash, Status: status}
				return
			}
			if err != nil && err != ethereum.NotFound {
				ctx.WithFields(log.Fields{
					"err":     err,
					"chainId": chainId,
					"hash":    hash,
				}).Warn("TransactionReceipt failed")
			}

			if err := poll.Backoff(watchCtx); err != nil {
				// context done, either caller gave up or the
				// transaction outlived the timeout
				im.met.BumpSum("timeout", 1)
				updates <- domain.TxUpdate{ChainId: chainId, Hash: hash, Status: domain.TxStatusFailed}
				return
			}
		}
	})

	return updates, nil
}
