package inits

import (
	"context"
	"fmt"
	"library-catalog/app/server/auth"
	"library-catalog/app/server/config"
	"library-catalog/app/server/constants"

	"go.uber.org/zap"
)

type AccountCounter interface {
	CountAccounts(ctx context.Context) (int64, error)
}

// Bootstrap 在没有任何账号时通过注册流程创建初始管理员
func Bootstrap(ctx context.Context, l *zap.Logger, cfg *config.Config, counter AccountCounter, svc *auth.Service) error {
	if cfg.Bootstrap.AdminEmail == "" {
		return nil
	}

	// 查询现有记录数量
	counted, err := counter.CountAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get account count: %w", err)
	} else if counted > 0 {
		return nil
	}

	if cfg.Bootstrap.AdminPassword == "" {
		return fmt.Errorf("bootstrap admin password is empty")
	}

	reg, err := svc.Register(ctx, auth.Registration{
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Name:     cfg.Bootstrap.AdminName,
		Role:     constants.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	l.Info("bootstrap admin created",
		zap.String("id", reg.Account.ID.String()),
		zap.String("email", reg.Account.NormalizedEmail),
	)
	return nil
}
