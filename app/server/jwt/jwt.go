package jwt

import (
	"errors"
	"fmt"
	"library-catalog/app/server/constants"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT signs and parses session tokens with a single HMAC key fixed at construction.
type JWT struct {
	key []byte
	now func() time.Time
}

type User struct {
	ID      string
	Name    string
	Email   string // normalized
	Role    string
	Expires int64 // Unix second
}

// Claims is the claim set carried by every session token. The display name
// is written twice, as "fullName" and as "name". The account id is written
// as "sub" and again as "id" for older clients.
type Claims struct {
	AccountID string `json:"id"`
	FullName  string `json:"fullName"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key), now: time.Now}, nil
}

// WithClock returns a copy of j that reads the current time from now.
func (j *JWT) WithClock(now func() time.Time) *JWT {
	return &JWT{key: j.key, now: now}
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 映射字段
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return &User{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Role:    claims.Role,
		Expires: claims.ExpiresAt.Unix(),
	}, nil
}

// SignToken issues a token for user valid for constants.AuthTokenDuration.
// user.Expires is set to the expiry written into the token.
func (j *JWT) SignToken(user *User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("user is empty")
	}

	issuedAt := j.now().UTC()
	expires := issuedAt.Add(constants.AuthTokenDuration)

	// 创建声明
	claims := &Claims{
		AccountID: user.ID,
		FullName:  user.Name,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	signed, err := token.SignedString(j.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	user.Expires = expires.Unix()
	return signed, nil
}
