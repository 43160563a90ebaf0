package auth

import (
	"context"
	"errors"
	"fmt"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/models"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

type Service struct {
	store  Store
	issuer *jwt.JWT
	decoy  *models.Account // 账号不存在时用于哈希校验的替身
}

type LoginResult struct {
	Email string
	Token string
	User  *jwt.User // 写入令牌的身份信息
}

type Registration struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type Registered struct {
	Account *models.Account
	Role    string
}

func NewService(store Store, issuer *jwt.JWT) (*Service, error) {
	if store == nil || issuer == nil {
		return nil, errors.New("store and issuer are required")
	}

	// 替身账号的哈希使用与真实账号相同的参数，校验耗时一致
	decoyHash, err := argon2id.CreateHash(uuid.NewString(), argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("create decoy hash: %w", err)
	}

	return &Service{
		store:  store,
		issuer: issuer,
		decoy:  &models.Account{PasswordHash: decoyHash},
	}, nil
}

// Login checks the credentials and issues a session token. Unknown accounts
// and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.store.FindAccountByNormalizedEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	// 账号不存在时也完成一次哈希校验，不把 nil 交给校验函数
	target := account
	if target == nil {
		target = s.decoy
	}
	match, err := s.store.VerifyPassword(target, password)
	if err != nil {
		return nil, errors.Join(ErrInvalidCredentials, fmt.Errorf("verify password: %w", err))
	}
	if account == nil || !match {
		return nil, ErrInvalidCredentials
	}

	// 取第一个（也是唯一一个）角色
	roles, err := s.store.ListRoles(ctx, account)
	if err != nil {
		return nil, issuanceError(fmt.Errorf("list roles: %w", err))
	}
	if len(roles) == 0 {
		return nil, issuanceError(fmt.Errorf("account %s has no role", account.ID))
	}

	user := &jwt.User{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.NormalizedEmail,
		Role:  roles[0],
	}
	token, err := s.issuer.SignToken(user)
	if err != nil {
		return nil, issuanceError(err)
	}

	result := &LoginResult{
		Email: account.Email,
		Token: token,
		User:  user,
	}
	if result.Email == "" || result.Token == "" {
		return nil, issuanceError(errors.New("empty token or email"))
	}

	return result, nil
}

// Register creates an account and assigns it exactly one role. Failures after
// the duplicate check are reported as ErrRegistrationFailed; nothing already
// written is rolled back.
func (s *Service) Register(ctx context.Context, req Registration) (*Registered, error) {
	normalized := NormalizeEmail(req.Email)

	existing, err := s.store.FindAccountByNormalizedEmail(ctx, normalized)
	if err != nil {
		return nil, errors.Join(ErrRegistrationFailed, fmt.Errorf("find account: %w", err))
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	account, err := s.store.CreateAccount(ctx, AccountDraft{
		Email:           strings.TrimSpace(req.Email),
		NormalizedEmail: normalized,
		Name:            req.Name,
		Password:        req.Password,
	})
	if err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errors.Is(err, ErrDuplicateAccount) {
			return nil, ErrDuplicateAccount
		}
		return nil, errors.Join(ErrRegistrationFailed, fmt.Errorf("create account: %w", err))
	}

	if err = s.ensureRoles(ctx); err != nil {
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	role := ResolveRole(req.Role)
	if err = s.store.AssignRole(ctx, account, role); err != nil {
		return nil, errors.Join(ErrRegistrationFailed, fmt.Errorf("assign role %s: %w", role, err))
	}

	return &Registered{Account: account, Role: role}, nil
}

func (s *Service) ensureRoles(ctx context.Context) error {
	for _, name := range constants.Roles {
		exist, err := s.store.RoleExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check role %s: %w", name, err)
		}
		if exist {
			continue
		}
		if err = s.store.CreateRole(ctx, name); err != nil {
			return fmt.Errorf("create role %s: %w", name, err)
		}
	}
	return nil
}

func issuanceError(cause error) error {
	return errors.Join(ErrInvalidCredentials, ErrTokenIssuance, cause)
}
