package domain

import (
	"github.com/specieverse/goapi/base/ctx"
)

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
)

func (s TxStatus) IsTerminal() bool {
	return s == TxStatusConfirmed || s == TxStatusFailed
}

// TxUpdate reports the settlement state of a submitted transaction.
type TxUpdate struct {
	ChainId ChainId  `json:"chainId"`
	Hash    TxHash   `json:"hash"`
	Status  TxStatus `json:"status"`
}

// TxWatcher tracks a submitted transaction hash. The returned channel
// receives status updates and is closed after the first terminal status;
// a hash that never settles within the watcher's timeout is reported failed.
type TxWatcher interface {
	Watch(ctx ctx.Ctx, chainId ChainId, hash TxHash) (<-chan TxUpdate, error)
}
