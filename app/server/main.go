package main

import (
	"context"
	"fmt"
	"library-catalog/app/server/apidocs"
	"library-catalog/app/server/auth"
	"library-catalog/app/server/handlers"
	"library-catalog/app/server/inits"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/metrics"
	"library-catalog/app/server/stores"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化封面存储
	blobService, err := inits.Blob(cfg)
	if err != nil {
		l.Fatal("error initializing blob storage", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.ApiSettings.Secret)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备认证服务
	accounts := stores.NewAccounts(db)
	authService, err := auth.NewService(accounts, j)
	if err != nil {
		l.Fatal("error initializing auth service", zap.Error(err))
	}

	// 初始管理员
	if err = inits.Bootstrap(context.Background(), l, cfg, accounts, authService); err != nil {
		l.Fatal("error bootstrapping admin account", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(handlers.Deps{
		Logger:    l,
		DB:        db,
		Redis:     rdb,
		JWT:       j,
		Auth:      authService,
		Blob:      blobService,
		Container: cfg.Storage.Container,
		Metrics:   metrics.New(),
	})

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlerApp.HTTPErrorHandler
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 绑定 echo 服务
	handlerApp.RegisterHandlers(e)

	// 添加 API 文档
	if !cfg.System.IsProd {
		if swgJson, err := apidocs.SwaggerJSON(); err != nil {
			l.Error("error initializing swagger", zap.Error(err))
		} else if doc, err := apidocs.Doc("/api", swgJson); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(doc)
		}
	}

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
