package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/service/redis"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}}
}

func (f *fakeRedis) Get(ctx bCtx.Ctx, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return val, nil
}

func (f *fakeRedis) Set(ctx bCtx.Ctx, key string, val []byte, expire time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = val
	return nil
}

func (f *fakeRedis) Del(ctx bCtx.Ctx, ks ...string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, k := range ks {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRedis) TTL(ctx bCtx.Ctx, key string) (int, error) {
	return 0, redis.ErrNoTTL
}

func (f *fakeRedis) Exists(ctx bCtx.Ctx, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeRedis) Incrby(ctx bCtx.Ctx, key string, val int) (int64, error) {
	return 0, nil
}

type authSuite struct {
	suite.Suite

	ctx   bCtx.Ctx
	redis *fakeRedis
	im    domain.AuthUseCase
}

func TestAuthUseCase(t *testing.T) {
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.redis = newFakeRedis()
	s.im = New(&AuthUseCaseCfg{
		JwtSecret:    "test-secret",
		SignatureMsg: "Welcome! Sign this nonce to log in: %s",
		Redis:        s.redis,
	})
}

func (s *authSuite) TestSignAndParse() {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	nonce, err := s.im.GetNonce(s.ctx, address)
	s.Require().NoError(err)
	s.NotEmpty(nonce)

	msg := fmt.Sprintf("Welcome! Sign this nonce to log in: %s", nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	s.Require().NoError(err)

	token, err := s.im.SignToken(s.ctx, address, hexutil.Encode(sig))
	s.Require().NoError(err)
	s.NotEmpty(token)

	parsed, err := s.im.ParseToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(address, parsed)
}

func (s *authSuite) TestSignTokenConsumesNonce() {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	nonce, err := s.im.GetNonce(s.ctx, address)
	s.Require().NoError(err)

	msg := fmt.Sprintf("Welcome! Sign this nonce to log in: %s", nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	s.Require().NoError(err)

	_, err = s.im.SignToken(s.ctx, address, hexutil.Encode(sig))
	s.Require().NoError(err)

	_, err = s.im.SignToken(s.ctx, address, hexutil.Encode(sig))
	s.Require().ErrorIs(err, domain.ErrInvalidSignature)
}

func (s *authSuite) TestSignTokenWrongSigner() {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	otherKey, err := crypto.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	nonce, err := s.im.GetNonce(s.ctx, address)
	s.Require().NoError(err)

	msg := fmt.Sprintf("Welcome! Sign this nonce to log in: %s", nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), otherKey)
	s.Require().NoError(err)

	_, err = s.im.SignToken(s.ctx, address, hexutil.Encode(sig))
	s.Require().ErrorIs(err, domain.ErrInvalidSignature)
}

func (s *authSuite) TestParseTokenRejectsGarbage() {
	_, err := s.im.ParseToken(s.ctx, "not-a-token")
	s.Require().Error(err)
}
