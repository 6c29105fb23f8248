package domain

import (
	"math/big"

	"github.com/specieverse/goapi/base/ctx"
)

// Wallet is the active account as reported by the wallet provider.
type Wallet struct {
	Address Address `json:"address"`
	ChainId ChainId `json:"chainId"`
}

// RawCall is an unsigned contract invocation handed to the wallet layer for
// signing and broadcast.
type RawCall struct {
	ChainId ChainId
	From    Address
	To      Address
	Data    []byte
	Value   *big.Int
}

// WalletProvider is the external wallet connection layer. Submit returns as
// soon as the signed transaction is accepted by the node, not on
// confirmation.
type WalletProvider interface {
	CurrentWallet(ctx.Ctx) (*Wallet, error)
	Submit(ctx.Ctx, *RawCall) (TxHash, error)
}
