// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tokenmart/ledger-backend/internal/cache"
	"github.com/tokenmart/ledger-backend/internal/config"
	"github.com/tokenmart/ledger-backend/internal/handlers"
	"github.com/tokenmart/ledger-backend/internal/middleware"
	"github.com/tokenmart/ledger-backend/internal/services"
	"github.com/tokenmart/ledger-backend/internal/store"
	"github.com/tokenmart/ledger-backend/internal/token"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

func Initialize(st store.Store, tok token.Ledger, events services.EventSink, owned *cache.PurchaseCache, cfg *config.Config) *gin.Engine {
	// Initialize services
	productService := services.NewProductService(st, events)
	settlementService := services.NewSettlementService(st, tok, cfg.Ledger.CustodyAccount, events, owned)
	sellerService := services.NewSellerService(st, tok, events)
	treasuryService := services.NewTreasuryService(st, tok, cfg.Ledger, events)
	accessService := services.NewAccessService(st, owned)
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, settlementService)
	sellerHandler := handlers.NewSellerHandler(sellerService)
	treasuryHandler := handlers.NewTreasuryHandler(treasuryService)
	verificationHandler := handlers.NewVerificationHandler(accessService)
	authHandler := handlers.NewAuthHandler(authService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/owner", authHandler.OwnerLogin)

		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/purchasers", productHandler.GetPurchasers)

			authed := products.Group("")
			authed.Use(middleware.AuthRequired())
			{
				authed.POST("", productHandler.ListProduct)
				authed.POST("/:id/activate", productHandler.SetActive(true))
				authed.POST("/:id/deactivate", productHandler.SetActive(false))
				authed.PUT("/:id/price", productHandler.SetPrice)
				authed.POST("/:id/purchase", middleware.SettlementRateLimit(), productHandler.PurchaseProduct)
			}
		}

		sellers := v1.Group("/sellers", middleware.AuthRequired())
		{
			sellers.GET("/me", sellerHandler.GetSummary)
			sellers.POST("/me/withdraw", middleware.SettlementRateLimit(), sellerHandler.Withdraw)
		}

		treasury := v1.Group("/treasury", middleware.AuthRequired(), middleware.OwnerRequired())
		{
			treasury.GET("", treasuryHandler.GetState)
			treasury.POST("/withdraw", treasuryHandler.WithdrawFees)
			treasury.PUT("/fee-rate", treasuryHandler.SetFeeRate)
		}

		// Oracle and indexer surface
		v1.GET("/verify/:account/:productId", middleware.OracleAuth(cfg.Ledger.OracleAPIKeyHash), verificationHandler.HasPurchased)
		v1.GET("/events", verificationHandler.GetEvents)
	}

	return r
}
