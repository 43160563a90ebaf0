package handlers

import (
	"context"
	"errors"
	"fmt"
	"library-catalog/app/server/constants"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis 出错时放行，只记录日志

func (a *App) loginThrottled(ctx context.Context, email string) bool {
	cacheKey := fmt.Sprintf(constants.CacheKeyLoginFailures, email)
	count, err := a.rdb.Get(ctx, cacheKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query login failures", zap.String("email", email), zap.Error(err))
		}
		return false
	}
	return count >= constants.LoginFailuresMax
}

func (a *App) recordLoginFailure(ctx context.Context, email string) {
	cacheKey := fmt.Sprintf(constants.CacheKeyLoginFailures, email)
	// 计数与过期在同一个事务里提交，窗口从第一次失败开始计算
	if _, err := a.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, cacheKey)
		pipe.ExpireNX(ctx, cacheKey, constants.CacheExpireLoginFailures)
		return nil
	}); err != nil {
		a.l.Error("failed to record login failure", zap.String("email", email), zap.Error(err))
	}
}

func (a *App) clearLoginFailures(ctx context.Context, email string) {
	cacheKey := fmt.Sprintf(constants.CacheKeyLoginFailures, email)
	if err := a.rdb.Del(ctx, cacheKey).Err(); err != nil {
		a.l.Error("failed to clear login failures", zap.String("email", email), zap.Error(err))
	}
}
