package auth

import (
	"context"
	"library-catalog/app/server/models"
)

type AccountDraft struct {
	Email           string
	NormalizedEmail string
	Name            string
	Password        string // 明文，由 Store 负责哈希
}

// Store is the persistence the auth flows depend on.
//
// FindAccountByNormalizedEmail returns (nil, nil) when no account matches.
// CreateAccount returns ErrDuplicateAccount when the normalized email is taken.
// ListRoles returns role names in assignment order.
type Store interface {
	FindAccountByNormalizedEmail(ctx context.Context, email string) (*models.Account, error)
	VerifyPassword(account *models.Account, plaintext string) (bool, error)
	CreateAccount(ctx context.Context, draft AccountDraft) (*models.Account, error)
	RoleExists(ctx context.Context, name string) (bool, error)
	CreateRole(ctx context.Context, name string) error
	AssignRole(ctx context.Context, account *models.Account, name string) error
	ListRoles(ctx context.Context, account *models.Account) ([]string, error)
}
