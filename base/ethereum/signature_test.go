package ethereum

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestValidateMsgSignature(t *testing.T) {
	req := require.New(t)

	key, err := crypto.GenerateKey()
	req.NoError(err)
	signer := crypto.PubkeyToAddress(key.PublicKey).Hex()

	msg := []byte("sign in to the species market")
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	req.NoError(err)
	sig[crypto.RecoveryIDOffset] += 27

	valid, err := ValidateMsgSignature(msg, hexutil.Encode(sig), signer)
	req.NoError(err)
	req.True(valid)

	valid, err = ValidateMsgSignature([]byte("another message"), hexutil.Encode(sig), signer)
	req.NoError(err)
	req.False(valid)
}
