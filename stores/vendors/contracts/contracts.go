package contracts

import (
	"time"

	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/vendors"
)

type Cfg struct {
	Marketplaces  map[domain.ChainId]domain.Address
	Bids          map[domain.ChainId]domain.Address
	PaymentTokens map[domain.ChainId]domain.Address
	// AuthorizationExpiry is how long the gate trusts a recorded grant
	// before re-verifying it on chain.
	AuthorizationExpiry time.Duration
}

type impl struct {
	cfg *Cfg
}

// New builds a fixed-table contract service for one vendor.
func New(cfg *Cfg) vendor.ContractService {
	if cfg.AuthorizationExpiry == 0 {
		cfg.AuthorizationExpiry = 24 * time.Hour
	}
	return &impl{cfg}
}

func (im *impl) Marketplace(chainId domain.ChainId) (domain.Address, error) {
	addr, ok := im.cfg.Marketplaces[chainId]
	if !ok {
		return "", domain.ErrInvalidChainId
	}
	return addr, nil
}

func (im *impl) Bids(chainId domain.ChainId) (domain.Address, error) {
	addr, ok := im.cfg.Bids[chainId]
	if !ok {
		return "", domain.ErrInvalidChainId
	}
	return addr, nil
}

func (im *impl) PaymentToken(chainId domain.ChainId) (domain.Address, error) {
	addr, ok := im.cfg.PaymentTokens[chainId]
	if !ok {
		return "", domain.ErrInvalidChainId
	}
	return addr, nil
}

func (im *impl) AuthorizationExpiry() time.Duration {
	return im.cfg.AuthorizationExpiry
}
