package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestMarketplacePack(t *testing.T) {
	req := require.New(t)
	m := NewMarketplace()

	nft := "0x71c4658acc7b53ee814a29ce31100ff85ca23ca7"

	data, err := m.PackCreateOrder(nft, big.NewInt(7), big.NewInt(1000), big.NewInt(1700000000))
	req.NoError(err)
	req.Equal(m.abi.Methods["createOrder"].ID, data[:4])

	args, err := m.abi.Methods["createOrder"].Inputs.Unpack(data[4:])
	req.NoError(err)
	req.Equal(common.HexToAddress(nft), args[0])
	req.Equal(big.NewInt(7), args[1])
	req.Equal(big.NewInt(1000), args[2])

	data, err = m.PackSafeExecuteOrder(nft, big.NewInt(7), big.NewInt(1000), "0xdeadbeef")
	req.NoError(err)
	req.Equal(m.abi.Methods["safeExecuteOrder"].ID, data[:4])

	_, err = m.PackSafeExecuteOrder(nft, big.NewInt(7), big.NewInt(1000), "not-hex")
	req.Error(err)

	data, err = m.PackCancelOrder(nft, big.NewInt(7))
	req.NoError(err)
	req.Equal(m.abi.Methods["cancelOrder"].ID, data[:4])
}

func TestBidsPack(t *testing.T) {
	req := require.New(t)
	b := NewBids()

	token := "0x10b11eb388520d9f71fac7aebb4a0e501be08df6"

	data, err := b.PackPlaceBid(token, big.NewInt(3), big.NewInt(500), big.NewInt(86400), "")
	req.NoError(err)
	req.Equal(b.abi.Methods["placeBid"].ID, data[:4])

	data, err = b.PackPlaceBid(token, big.NewInt(3), big.NewInt(500), big.NewInt(86400), "0xdeadbeef")
	req.NoError(err)
	args, err := b.abi.Methods["placeBid"].Inputs.Unpack(data[4:])
	req.NoError(err)
	req.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, args[4])

	data, err = b.PackAcceptBid(token, big.NewInt(3), "0x94ead797046c7b654cab82c1c27ad223b6501f1f")
	req.NoError(err)
	req.Equal(b.abi.Methods["acceptBid"].ID, data[:4])

	data, err = b.PackCancelBid(token, big.NewInt(3))
	req.NoError(err)
	req.Equal(b.abi.Methods["cancelBid"].ID, data[:4])
}
