package stores

import (
	"context"
	"errors"
	"fmt"
	"library-catalog/app/server/auth"
	"library-catalog/app/server/models"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ auth.Store = (*Accounts)(nil)

type Accounts struct {
	db     *gorm.DB
	params *argon2id.Params
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{
		db:     db,
		params: argon2id.DefaultParams,
	}
}

// WithParams returns a copy of s hashing new passwords with params.
func (s *Accounts) WithParams(params *argon2id.Params) *Accounts {
	return &Accounts{db: s.db, params: params}
}

func (s *Accounts) FindAccountByNormalizedEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "normalized_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

func (s *Accounts) VerifyPassword(account *models.Account, plaintext string) (bool, error) {
	if account == nil {
		return false, errors.New("account is nil")
	}

	match, _, err := argon2id.CheckHash(plaintext, account.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("check password hash: %w", err)
	}
	return match, nil
}

func (s *Accounts) CreateAccount(ctx context.Context, draft auth.AccountDraft) (*models.Account, error) {
	// 处理密码
	passwordHash, err := argon2id.CreateHash(draft.Password, s.params)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		ID:              uuid.New(),
		Email:           draft.Email,
		NormalizedEmail: draft.NormalizedEmail,
		Name:            draft.Name,
		PasswordHash:    passwordHash,
	}
	if err = s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, auth.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &account, nil
}

func (s *Accounts) RoleExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count role: %w", err)
	}
	return count > 0, nil
}

func (s *Accounts) CreateRole(ctx context.Context, name string) error {
	// 已存在时什么都不做
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&models.Role{Name: name}).Error; err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

func (s *Accounts) AssignRole(ctx context.Context, account *models.Account, name string) error {
	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
		return fmt.Errorf("find role %s: %w", name, err)
	}

	if err := s.db.WithContext(ctx).Model(account).Association("Roles").Append(&role); err != nil {
		return fmt.Errorf("append role: %w", err)
	}
	return nil
}

func (s *Accounts) ListRoles(ctx context.Context, account *models.Account) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).
		Table("roles").
		Joins("JOIN account_roles ON account_roles.role_id = roles.id").
		Where("account_roles.account_id = ?", account.ID).
		Order("roles.id ASC").
		Pluck("roles.name", &names).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return names, nil
}

// CountAccounts is used by startup seeding.
func (s *Accounts) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}
