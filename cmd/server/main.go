package main

import (
	"github.com/gin-gonic/gin"
	"github.com/venturebridge/vbs/internal/config"
	"github.com/venturebridge/vbs/internal/database"
	"github.com/venturebridge/vbs/internal/logger"
	"github.com/venturebridge/vbs/internal/notify"
	"github.com/venturebridge/vbs/internal/router"
	"github.com/venturebridge/vbs/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}
	defer logger.Sync()

	// 签名密钥必须由部署方提供
	if cfg.Payment.Secret == "" {
		logger.Fatal("payment.secret is required")
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化消息回显分发器
	dispatcher, err := notify.NewDispatcher(db, cfg.Task.NotifyPoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize message dispatcher: %v", err)
	}
	defer dispatcher.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, dispatcher, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
