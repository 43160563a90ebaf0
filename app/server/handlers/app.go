package handlers

import (
	"library-catalog/app/server/auth"
	"library-catalog/app/server/blob"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l         *zap.Logger      // 日志
	db        *gorm.DB         // 数据库
	rdb       *redis.Client    // Redis ，用于登录限流
	jwt       *jwt.JWT         // JWT ，用于无状态验证
	auth      *auth.Service    // 登录与注册
	blob      blob.Service     // 封面存储
	container string           // 封面所在的容器
	m         *metrics.Metrics // 指标
}

type Deps struct {
	Logger    *zap.Logger
	DB        *gorm.DB
	Redis     *redis.Client
	JWT       *jwt.JWT
	Auth      *auth.Service
	Blob      blob.Service
	Container string
	Metrics   *metrics.Metrics
}

func NewApp(d Deps) *App {
	return &App{
		l:         d.Logger,
		db:        d.DB,
		rdb:       d.Redis,
		jwt:       d.JWT,
		auth:      d.Auth,
		blob:      d.Blob,
		container: d.Container,
		m:         d.Metrics,
	}
}
