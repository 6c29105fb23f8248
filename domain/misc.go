package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid token id %s", i)
	}
	return id, nil
}

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

type BlockNumber uint64

// VendorName identifies which family of contracts governs an asset.
type VendorName string

const (
	// VendorSpecies is the house vendor; the only one permitting
	// creation-token purchases of species assets.
	VendorSpecies VendorName = "species"
	// VendorGallery is a partner vendor with listings only.
	VendorGallery VendorName = "gallery"
)

// CategoryToVendor is the fixed category -> vendor mapping.
var CategoryToVendor = map[string]VendorName{
	"species":  VendorSpecies,
	"estate":   VendorSpecies,
	"artwork":  VendorGallery,
	"editions": VendorGallery,
}

// ToBigInt parses decimal strings into big ints, rejecting malformed input.
func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}
