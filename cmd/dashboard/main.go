package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/app/provider"
	"crypto_dashboard/internal/app/service"
	"crypto_dashboard/internal/client"
	"crypto_dashboard/internal/infrastructure/configloader"
	clientprovider "crypto_dashboard/internal/infrastructure/network/client"
	networkdefinition "crypto_dashboard/internal/infrastructure/network/definition"
	"crypto_dashboard/internal/infrastructure/restapi"
	"crypto_dashboard/internal/infrastructure/tokenloader"
	"crypto_dashboard/internal/pkg/logger"
)

const defaultConfigPath = "config/config.yml"

func millis(v int64) time.Duration { return time.Duration(v) * time.Millisecond }

func main() {
	configPath := flag.String("config", configloader.ResolvePath(defaultConfigPath), "path to config.yml")
	flag.Parse()

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: не удалось загрузить конфигурацию: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.Init(zapLogger, cfg.Logging.Level)

	logger.Info("Дашборд запускается...", "config", *configPath, "portfolio_source", cfg.Portfolio.Source)
	appLogger := logger.NewSlogAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Внешние API
	coinCapClient := client.NewCoinCapClient(cfg.CoinCap.BaseURL, cfg.CoinCap.APIKey,
		millis(cfg.CoinCap.RequestTimeoutMillis), cfg.CoinCap.RequestsPerSecond, zapLogger)
	alternativeClient := client.NewAlternativeClient(cfg.Alternative.BaseURL,
		millis(cfg.Alternative.RequestTimeoutMillis), cfg.Alternative.RequestsPerSecond, zapLogger)
	dexScreenerClient := client.NewDEXScreenerClient(cfg.DEXScreener.BaseURL,
		millis(cfg.DEXScreener.RequestTimeoutMillis), cfg.DEXScreener.RequestsPerSecond, zapLogger,
		cfg.TokenPriceSvc.MaxTokensPerBatchRequest)

	marketService := service.NewMarketService(coinCapClient, alternativeClient, logger.NewComponentAdapter("market"), cfg)

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(
		logger.NewComponentAdapter("networks"), cfg.TokenPriceSvc.TokensDir, cfg.TokenPriceSvc.TrackedNetworks)
	tokenProvider := provider.NewTokenProvider(tokenloader.NewTokenLoader(cfg.TokenPriceSvc.TokensDir, appLogger), appLogger)
	tokenPriceService := service.NewTokenPriceService(tokenProvider, netDefProvider, dexScreenerClient,
		logger.NewComponentAdapter("token_prices"), cfg)

	holdingProvider, err := newHoldingProvider(cfg, netDefProvider, tokenProvider, tokenPriceService, marketService, appLogger)
	if err != nil {
		logger.Fatal("Не удалось инициализировать источник балансов", "error", err)
	}

	portfolioService := service.NewPortfolioService(holdingProvider, logger.NewComponentAdapter("portfolio"), cfg)
	gasService, err := service.NewGasService(cfg.GasProfiles, marketService, logger.NewComponentAdapter("gas"), cfg.Series.IntradayNoise)
	if err != nil {
		logger.Fatal("Некорректные газовые профили", "error", err)
	}
	comparisonService := service.NewComparisonService(marketService, logger.NewComponentAdapter("comparison"), cfg.Series.DailyNoise)

	refresher := service.NewRefresher(time.Duration(cfg.Market.RefreshIntervalSeconds)*time.Second, logger.NewComponentAdapter("refresher"))
	refresher.Add("market", marketService.Refresh)
	refresher.Add("token_prices", tokenPriceService.LoadAndCacheTokenPrices)
	go refresher.Run(ctx)

	gin.SetMode(cfg.Server.Mode)
	router := restapi.SetupRouter(restapi.Handlers{
		Portfolio: restapi.NewPortfolioHandler(portfolioService, cfg, appLogger),
		Market:    restapi.NewMarketHandler(marketService, comparisonService, tokenPriceService, netDefProvider, cfg, appLogger),
		Gas:       restapi.NewGasHandler(gasService, cfg),
	}, cfg, zapLogger.Named("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Запуск HTTP сервера", "адрес", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Не удалось запустить HTTP сервер", "ошибка", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Получен сигнал завершения. Завершение работы HTTP сервера...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при Graceful Shutdown HTTP сервера", "ошибка", err)
	} else {
		logger.Info("HTTP сервер успешно остановлен.")
	}
}

func newHoldingProvider(
	cfg *configloader.Config,
	np port.NetworkDefinitionProvider,
	tp port.TokenProvider,
	tps port.TokenPriceService,
	ms port.MarketService,
	appLogger port.Logger,
) (port.HoldingProvider, error) {
	switch cfg.Portfolio.Source {
	case "onchain":
		rpcTimeout := time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second
		clientProvider := clientprovider.NewEVMClientProvider(rpcTimeout, logger.NewComponentAdapter("evm"))
		return provider.NewOnchainHoldingProvider(np, tp, clientProvider, tps, ms,
			logger.NewComponentAdapter("holdings"), cfg.Performance.MaxConcurrentRoutines), nil
	default:
		return provider.NewFixtureHoldingProvider(cfg.Portfolio.HoldingsFile, logger.NewComponentAdapter("holdings"))
	}
}
