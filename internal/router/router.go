package router

import (
	"time"

	"provest/config"
	"provest/internal/handler"
	"provest/internal/middleware"
	"provest/internal/repository"
	"provest/internal/service"
	"provest/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	planRepo := repository.NewPlanRepository(db)
	invRepo := repository.NewInvestmentRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	// Services
	referralSvc := service.NewReferralService(&cfg.Referral, userRepo, walletRepo, txRepo)
	authSvc := service.NewAuthService(cfg, userRepo, walletRepo, referralSvc)
	invSvc := service.NewInvestmentService(planRepo, invRepo, walletRepo, txRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	planHandler := handler.NewPlanHandler(planRepo)
	invHandler := handler.NewInvestmentHandler(invSvc, planRepo)
	walletHandler := handler.NewWalletHandler(walletRepo, userRepo, txRepo)
	txHandler := handler.NewTransactionHandler(txRepo)
	meHandler := handler.NewMeHandler(userRepo, walletRepo, invSvc)
	uploadHandler := handler.NewUploadHandler(cloud, userRepo)
	adminHandler := handler.NewAdminHandler(userRepo, invRepo, planRepo, invSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		api.GET("/plans", planHandler.List)
		api.GET("/plans/:id", planHandler.Get)

		invGroup := api.Group("/investments")
		invGroup.Use(authMw)
		{
			invGroup.GET("/preview", invHandler.Preview)
			invGroup.POST("", invHandler.Create)
			invGroup.GET("", invHandler.List)
			invGroup.GET("/:id", invHandler.Get)
			invGroup.POST("/:id/cancel", invHandler.Cancel)
		}

		walletGroup := api.Group("/wallet")
		walletGroup.Use(authMw)
		{
			walletGroup.POST("/deposit", walletHandler.Deposit)
			walletGroup.POST("/withdraw", walletHandler.Withdraw)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.GET("/dashboard", meHandler.GetDashboard)
			me.GET("/wallet", walletHandler.GetBalance)
			me.GET("/transactions", txHandler.List)
			me.POST("/avatar", uploadHandler.UploadAvatar)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/investments", adminHandler.ListInvestments)
			admin.POST("/investments/:id/cancel", adminHandler.CancelInvestment)
			admin.GET("/plans", adminHandler.ListPlans)
			admin.POST("/plans", planHandler.Create)
			admin.PUT("/plans/:id", planHandler.Update)
			admin.PATCH("/plans/:id/active", planHandler.SetActive)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
