package wallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/base/metrics"
	"github.com/specieverse/goapi/domain"
)

// userRejectedCode is the EIP-1193 error code a provider returns when
// the user declines to sign.
const userRejectedCode = 4001

type Cfg struct {
	// SignerUrls point at the wallet rpc endpoints holding the keys,
	// one per chain.
	SignerUrls map[int32]string
}

type txArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

type impl struct {
	clients map[int32]*rpc.Client
	met     metrics.Service
}

// New dials the signer endpoints. Unreachable signers are tolerated at
// startup and surface as ErrProviderUnavailable on use.
func New(ctx bCtx.Ctx, cfg *Cfg) domain.WalletProvider {
	clients := make(map[int32]*rpc.Client)
	for chainId, url := range cfg.SignerUrls {
		client, err := rpc.DialContext(ctx, url)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial signer")
			continue
		}
		clients[chainId] = client
	}
	return &impl{
		clients: clients,
		met:     metrics.New("wallet"),
	}
}

func (im *impl) CurrentWallet(ctx bCtx.Ctx) (*domain.Wallet, error) {
	for chainId, client := range im.clients {
		var accounts []common.Address
		if err := client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
			ctx.WithFields(log.Fields{"err": err, "chainId": chainId}).Error("eth_accounts failed")
			return nil, domain.ErrProviderUnavailable
		}
		if len(accounts) > 0 {
			return &domain.Wallet{
				Address: domain.Address(accounts[0].Hex()).ToLower(),
				ChainId: domain.ChainId(chainId),
			}, nil
		}
	}
	return nil, domain.ErrNoConnectedWallet
}

func (im *impl) Submit(ctx bCtx.Ctx, call *domain.RawCall) (domain.TxHash, error) {
	defer im.met.BumpTime("time", "func", "submit").End()

	client, ok := im.clients[int32(call.ChainId)]
	if !ok {
		return "", domain.ErrProviderUnavailable
	}

	to := common.HexToAddress(string(call.To))
	args := txArgs{
		From: common.HexToAddress(string(call.From)),
		To:   &to,
		Data: call.Data,
	}
	if call.Value != nil && call.Value.Sign() > 0 {
		args.Value = (*hexutil.Big)(new(big.Int).Set(call.Value))
	}

	var hash common.Hash
	if err := client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		if rpcErr, ok := err.(rpc.Error); ok && rpcErr.ErrorCode() == userRejectedCode {
			im.met.BumpSum("submit.rejected", 1)
			return "", domain.ErrUserRejected
		}
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": call.ChainId,
			"to":      call.To,
		}).Error("eth_sendTransaction failed")
		return "", domain.WrapChainCall(err)
	}

	return domain.TxHash(hash.Hex()).ToLower(), nil
}
