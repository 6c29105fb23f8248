package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/database/mongoclient"
	"github.com/specieverse/goapi/base/database/redisclient"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/base/metrics"
	bValidator "github.com/specieverse/goapi/base/validator"
	"github.com/specieverse/goapi/domain"
	mmiddleware "github.com/specieverse/goapi/middleware"
	"github.com/specieverse/goapi/service/chain"
	"github.com/specieverse/goapi/service/chain/contract"
	"github.com/specieverse/goapi/service/ens"
	"github.com/specieverse/goapi/service/query"
	"github.com/specieverse/goapi/service/redis"
	"github.com/specieverse/goapi/service/tracker"
	"github.com/specieverse/goapi/service/wallet"
	account_delivery "github.com/specieverse/goapi/stores/account/delivery/http"
	account_repository "github.com/specieverse/goapi/stores/account/repository"
	asset_repository "github.com/specieverse/goapi/stores/asset/repository"
	auth_delivery "github.com/specieverse/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/specieverse/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/specieverse/goapi/stores/auth/usecase"
	authorization_delivery "github.com/specieverse/goapi/stores/authorization/delivery/http"
	authorization_repository "github.com/specieverse/goapi/stores/authorization/repository"
	authorization_usecase "github.com/specieverse/goapi/stores/authorization/usecase"
	bid_repository "github.com/specieverse/goapi/stores/bid/repository"
	contract_delivery "github.com/specieverse/goapi/stores/contract/delivery/http"
	contract_repository "github.com/specieverse/goapi/stores/contract/repository"
	ens_delivery "github.com/specieverse/goapi/stores/ens/delivery/http"
	exchange_delivery "github.com/specieverse/goapi/stores/exchange/delivery/http"
	exchange_usecase "github.com/specieverse/goapi/stores/exchange/usecase"
	hc_delivery "github.com/specieverse/goapi/stores/healthcheck/delivery/http"
	hc_repository "github.com/specieverse/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/specieverse/goapi/stores/healthcheck/usecase"
	order_repository "github.com/specieverse/goapi/stores/order/repository"
	vendor_contracts "github.com/specieverse/goapi/stores/vendors/contracts"
	"github.com/specieverse/goapi/stores/vendors/gallery"
	"github.com/specieverse/goapi/stores/vendors/registry"
	"github.com/specieverse/goapi/stores/vendors/species"

	vendorDomain "github.com/specieverse/goapi/domain/vendors"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisCachePoolMultiplier)
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	// networks: rpc endpoints, signer endpoints and deployed contracts
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	signers := make(map[int32]string)
	speciesMarketplaces := make(map[domain.ChainId]domain.Address)
	speciesBids := make(map[domain.ChainId]domain.Address)
	galleryMarketplaces := make(map[domain.ChainId]domain.Address)
	paymentTokens := make(map[domain.ChainId]domain.Address)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		signers[chainId] = networks.GetString(fmt.Sprintf("%s.signerUrl", k))

		cid := domain.ChainId(chainId)
		speciesMarketplaces[cid] = domain.Address(networks.GetString(fmt.Sprintf("%s.species.marketplace", k))).ToLower()
		speciesBids[cid] = domain.Address(networks.GetString(fmt.Sprintf("%s.species.bids", k))).ToLower()
		galleryMarketplaces[cid] = domain.Address(networks.GetString(fmt.Sprintf("%s.gallery.marketplace", k))).ToLower()
		paymentTokens[cid] = domain.Address(networks.GetString(fmt.Sprintf("%s.paymentToken", k))).ToLower()
	}

	// init chain services
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	erc20Service := contract.NewErc20(chainService)
	erc721Service := contract.NewErc721(chainService)
	marketplacePacker := contract.NewMarketplace()
	bidsPacker := contract.NewBids()

	walletProvider := wallet.New(context, &wallet.Cfg{SignerUrls: signers})

	txWatcher := tracker.New(chainService, tracker.Cfg{
		PollInterval: viper.GetDuration("tracker.pollInterval"),
		Timeout:      viper.GetDuration("tracker.timeout"),
	})

	// ens on ethereum
	ensService := ens.New(rpcs[1], redisCache)

	// construct repositories
	hcRepo := hc_repository.New(mongoClient, redisCache)
	orderRepo := order_repository.New(q)
	bidRepo := bid_repository.New(q)
	assetRepo := asset_repository.New(q)
	authorizationRepo := authorization_repository.New(q)
	contractRepo := contract_repository.New(q)
	activityRepo := account_repository.NewActivityRepo(q)

	// vendor bundles
	authorizationExpiry := viper.GetDuration("authorization.expiry")
	speciesContracts := vendor_contracts.New(&vendor_contracts.Cfg{
		Marketplaces:        speciesMarketplaces,
		Bids:                speciesBids,
		PaymentTokens:       paymentTokens,
		AuthorizationExpiry: authorizationExpiry,
	})
	galleryContracts := vendor_contracts.New(&vendor_contracts.Cfg{
		Marketplaces:        galleryMarketplaces,
		PaymentTokens:       paymentTokens,
		AuthorizationExpiry: authorizationExpiry,
	})

	speciesBundle := &vendorDomain.Bundle{
		Name: domain.VendorSpecies,
		Orders: species.NewOrderService(&species.OrderServiceCfg{
			Contracts:   speciesContracts,
			Wallet:      walletProvider,
			Nft:         erc721Service,
			Token:       erc20Service,
			Marketplace: marketplacePacker,
		}),
		Bids: species.NewBidService(&species.BidServiceCfg{
			Contracts: speciesContracts,
			Wallet:    walletProvider,
			Nft:       erc721Service,
			Token:     erc20Service,
			Bids:      bidsPacker,
		}),
		Buys: species.NewBuyService(&species.BuyServiceCfg{
			Contracts:   speciesContracts,
			Wallet:      walletProvider,
			Nft:         erc721Service,
			Token:       erc20Service,
			Marketplace: marketplacePacker,
		}),
		Contracts: speciesContracts,
	}
	galleryBundle := &vendorDomain.Bundle{
		Name: domain.VendorGallery,
		Orders: gallery.NewOrderService(&gallery.OrderServiceCfg{
			Contracts:   galleryContracts,
			Wallet:      walletProvider,
			Nft:         erc721Service,
			Token:       erc20Service,
			Marketplace: marketplacePacker,
		}),
		Contracts: galleryContracts,
	}
	vendorRegistry := registry.New(assetRepo, speciesBundle, galleryBundle)

	// construct usecases
	hc := hc_usecase.New(hcRepo)
	authorizations := authorization_usecase.New(&authorization_usecase.AuthorizationUseCaseCfg{
		Repo:   authorizationRepo,
		Wallet: walletProvider,
		Erc20:  erc20Service,
		Erc721: erc721Service,
		Expiry: authorizationExpiry,
	})
	engine := exchange_usecase.New(&exchange_usecase.EngineCfg{
		Orders:         orderRepo,
		Bids:           bidRepo,
		Registry:       vendorRegistry,
		Authorizations: authorizations,
		Watcher:        txWatcher,
		Activities:     activityRepo,
	})
	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:    viper.GetString("auth.jwtSecret"),
		SignatureMsg: viper.GetString("auth.signatureMsg"),
		TokenTTL:     viper.GetDuration("auth.tokenTTL"),
		Redis:        redisCache,
	})
	authMiddleware := auth_middleware.New(auth)

	// deliveries
	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	exchange_delivery.New(e, engine, authMiddleware)
	authorization_delivery.New(e, authorizations, authMiddleware)
	account_delivery.New(e, activityRepo)
	contract_delivery.New(e, contractRepo)
	ens_delivery.New(e, ensService)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
