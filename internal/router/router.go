package router

import (
	"github.com/gin-gonic/gin"
	"github.com/venturebridge/vbs/internal/config"
	"github.com/venturebridge/vbs/internal/handler"
	"github.com/venturebridge/vbs/internal/logic"
	"github.com/venturebridge/vbs/internal/payment"
	"github.com/venturebridge/vbs/internal/repository"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, sink logic.MessageSink, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "venturebridge-service",
		})
	})

	// 协作方组装
	users := repository.NewUserRepository(db)
	fundRequests := repository.NewFundRequestRepository(db)
	analyses := repository.NewAnalysisRepository(db)
	verifier := payment.NewVerifier(cfg.Payment.Secret)

	userHandler := handler.NewUserHandler(logic.NewUserLogic(db))
	analysisHandler := handler.NewAnalysisHandler(logic.NewAnalysisLogic(users, analyses))
	fundRequestHandler := handler.NewFundRequestHandler(logic.NewFundRequestLogic(users, fundRequests, verifier, sink))
	analyticsHandler := handler.NewAnalyticsHandler(logic.NewAnalyticsLogic(fundRequests))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 用户相关路由
		usersGroup := v1.Group("/users")
		{
			usersGroup.POST("", userHandler.RegisterUser)
			usersGroup.GET("/:id", userHandler.GetUser)
		}

		// 可行性分析相关路由
		analysesGroup := v1.Group("/analyses")
		{
			analysesGroup.POST("", analysisHandler.SubmitAnalysis)
			analysesGroup.GET("/:id", analysisHandler.GetAnalysis)
		}

		// 融资请求相关路由
		requests := v1.Group("/fund-requests")
		{
			requests.POST("", fundRequestHandler.CreateFundRequest)
			requests.GET("", fundRequestHandler.GetFundRequests)
			requests.GET("/:id", fundRequestHandler.GetFundRequest)
			requests.POST("/:id/approve", fundRequestHandler.ApproveFundRequest)
			requests.POST("/:id/reject", fundRequestHandler.RejectFundRequest)
			requests.POST("/:id/order", fundRequestHandler.CreatePaymentOrder)
			requests.POST("/:id/complete", fundRequestHandler.CompletePayment)
		}

		// 创业方视角
		startups := v1.Group("/startups")
		{
			startups.GET("/:id/analyses", analysisHandler.GetStartupAnalyses)
			startups.GET("/:id/funding", analyticsHandler.GetStartupFunding)
		}

		// 投资方视角
		investors := v1.Group("/investors")
		{
			investors.GET("/:id/portfolio", analyticsHandler.GetInvestorPortfolio)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
