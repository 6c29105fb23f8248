package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/ethereum"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/keys"
	"github.com/specieverse/goapi/service/redis"
)

const nonceTTL = 10 * time.Minute

type AuthUseCaseCfg struct {
	JwtSecret string
	// SignatureMsg is the signing message template; %s is replaced with
	// the nonce.
	SignatureMsg string
	TokenTTL     time.Duration
	Redis        redis.Service
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	tokenTTL     time.Duration
	redis        redis.Service
}

func New(cfg *AuthUseCaseCfg) domain.AuthUseCase {
	tokenTTL := cfg.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		tokenTTL:     tokenTTL,
		redis:        cfg.Redis,
	}
}

func (im *impl) GetNonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	nonce := uuid.NewString()

	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
	if err := im.redis.Set(ctx, key, []byte(nonce), nonceTTL); err != nil {
		ctx.WithField("err", err).Error("redis.Set failed")
		return "", err
	}
	return nonce, nil
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())

	nonce, err := im.redis.Get(ctx, key)
	if err == redis.ErrNotFound {
		return "", domain.ErrInvalidSignature
	} else if err != nil {
		ctx.WithField("err", err).Error("redis.Get failed")
		return "", err
	}

	msg := fmt.Sprintf(im.signatureMsg, string(nonce))
	valid, err := ethereum.ValidateMsgSignature([]byte(msg), signature, address.ToLowerStr())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("signature validation failed")
		return "", domain.ErrInvalidSignature
	}
	if !valid {
		return "", domain.ErrInvalidSignature
	}

	// a nonce proves at most one signature
	if _, err := im.redis.Del(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("redis.Del failed")
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return domain.Address(claims.Address), nil
		}
	}
	return "", err
}
