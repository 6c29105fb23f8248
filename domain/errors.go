package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// vendor dispatch
	ErrUnknownVendor         = errors.New("unknown vendor")
	ErrUnsupportedCapability = errors.New("vendor does not support this capability")
	// buySpecialAsset is a business rule of the species vendor, not a
	// missing feature, so it carries its own message
	ErrSpeciesPurchaseOnly = errors.New("only creationToken can let you own species")

	// intent validation
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidExpiration   = errors.New("invalid expiration")
	ErrNotOwner            = errors.New("wallet does not own this asset")
	ErrOrderAssetMismatch  = errors.New("the order does not match the asset")
	ErrOrderNotOpen        = errors.New("order is not open")
	ErrNoOpenOrder         = errors.New("no open order for this asset")
	ErrOrderExists         = errors.New("an open order already exists for this asset")
	ErrBidAssetMismatch    = errors.New("the bid does not match the asset")
	ErrBidNotOpen          = errors.New("bid is not open")
	ErrNotBidder           = errors.New("wallet did not place this bid")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrFingerprintMismatch = errors.New("asset fingerprint changed since the bid was placed")
	ErrAlreadyPending      = errors.New("a transaction for this record is already pending")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidChainId      = errors.New("invalid chain id")

	// authorization gate
	ErrInvalidAuthorizationKind = errors.New("invalid authorization kind")

	// wallet layer
	ErrNoConnectedWallet   = errors.New("no connected wallet")
	ErrUserRejected        = errors.New("user rejected the transaction")
	ErrProviderUnavailable = errors.New("could not connect to provider")
	ErrNetworkUnavailable  = errors.New("network unavailable")

	// contract resolver
	ErrUnknownContract = errors.New("unknown contract")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
)

// ChainCallError wraps the underlying rejection of a contract call. The
// reason string is propagated opaquely; callers may retry since rejected
// blockchain calls leave no partial state.
type ChainCallError struct {
	Err error
}

func (e *ChainCallError) Error() string {
	return "chain call failed: " + e.Err.Error()
}

func (e *ChainCallError) Unwrap() error {
	return e.Err
}

// WrapChainCall wraps err into a ChainCallError, passing nil through.
func WrapChainCall(err error) error {
	if err == nil {
		return nil
	}
	return &ChainCallError{err}
}

// IsChainCallError reports whether err is a wrapped contract-call rejection.
func IsChainCallError(err error) bool {
	var e *ChainCallError
	return errors.As(err, &e)
}
