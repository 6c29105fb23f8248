package authorization

import (
	"time"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
)

// Kind is the scope of a recorded grant. Kinds are graded: a grant of a
// higher grade covers any requirement of a lower grade on the same tuple.
type Kind string

const (
	// KindAllowance is an erc20 spend allowance on a payment token.
	KindAllowance Kind = "allowance"
	// KindApprovalForAll is an erc721 operator approval on an asset contract.
	KindApprovalForAll Kind = "approval-for-all"
)

func (k Kind) grade() int {
	switch k {
	case KindAllowance:
		return 1
	case KindApprovalForAll:
		return 2
	}
	return 0
}

// Covers reports whether a grant of kind k satisfies a requirement of
// kind other.
func (k Kind) Covers(other Kind) bool {
	return k.grade() >= other.grade() && other.grade() > 0
}

// Authorization is the (owner, spender, contract, chain, kind) tuple the
// gate reasons about. It mirrors on-chain state and may be stale; the
// gate only grows it, never shrinks it.
type Authorization struct {
	Owner         domain.Address `json:"owner" bson:"owner"`
	Spender       domain.Address `json:"spender" bson:"spender"`
	TokenContract domain.Address `json:"tokenContract" bson:"tokenContract"`
	ChainId       domain.ChainId `json:"chainId" bson:"chainId"`
	Kind          Kind           `json:"kind" bson:"kind"`
	GrantedAt     time.Time      `json:"grantedAt" bson:"grantedAt"`
}

func (a *Authorization) LowerCase() {
	a.Owner = a.Owner.ToLower()
	a.Spender = a.Spender.ToLower()
	a.TokenContract = a.TokenContract.ToLower()
}

// Satisfies reports whether the known grant satisfies the candidate
// requirement: same owner, spender, contract and chain, and a covering
// kind.
func (a Authorization) Satisfies(candidate Authorization) bool {
	return a.Owner.Equals(candidate.Owner) &&
		a.Spender.Equals(candidate.Spender) &&
		a.TokenContract.Equals(candidate.TokenContract) &&
		a.ChainId == candidate.ChainId &&
		a.Kind.Covers(candidate.Kind)
}

// IsAuthorized is the pure gate predicate: it holds iff some known grant
// satisfies the candidate. It performs no io and is monotonic in known.
func IsAuthorized(candidate Authorization, known []Authorization) bool {
	for _, a := range known {
		if a.Satisfies(candidate) {
			return true
		}
	}
	return false
}

type FindAllOptions struct {
	Owner   *domain.Address
	ChainId *domain.ChainId
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = owner.ToLowerPtr()
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

// Repo stores known grants. Upsert is keyed on the full tuple so a
// re-grant refreshes GrantedAt without duplicating.
type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]Authorization, error)
	Upsert(ctx ctx.Ctx, authorization Authorization) error
	Remove(ctx ctx.Ctx, authorization Authorization) error
}

// UseCase resolves whether an intent's requirement is met and, on
// request, submits the grant transaction on the owner's behalf.
type UseCase interface {
	Check(ctx ctx.Ctx, candidate Authorization) (bool, error)
	Grant(ctx ctx.Ctx, candidate Authorization) (domain.TxHash, error)
	Revoke(ctx ctx.Ctx, candidate Authorization) (domain.TxHash, error)
}
