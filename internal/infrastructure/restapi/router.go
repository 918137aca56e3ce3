package restapi

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"crypto_dashboard/internal/infrastructure/configloader"
)

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Portfolio *PortfolioHandler
	Market    *MarketHandler
	Gas       *GasHandler
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(h Handlers, cfg *configloader.Config, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 0 || slices.Contains(cfg.Server.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(MetricsMiddleware())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Swagger.Enabled {
		router.StaticFile("/docs/swagger.yaml", cfg.Swagger.SpecPath)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/portfolios/:walletAddress", h.Portfolio.GetPortfolioHandler)
		apiV1.GET("/portfolios/:walletAddress/history", h.Portfolio.GetPortfolioHistoryHandler)

		apiV1.GET("/markets/tokens", h.Market.GetTokensHandler)
		apiV1.GET("/markets/overview", h.Market.GetOverviewHandler)
		apiV1.GET("/markets/movers", h.Market.GetMoversHandler)
		apiV1.GET("/dex/pairs", h.Market.GetDexPairsHandler)
		apiV1.GET("/comparison", h.Market.GetComparisonHandler)

		apiV1.GET("/gas", h.Gas.GetProfilesHandler)
		apiV1.GET("/gas/history", h.Gas.GetHistoryHandler)
		apiV1.GET("/gas/:network/estimates", h.Gas.GetEstimatesHandler)
	}

	return router
}
