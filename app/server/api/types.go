// Package api holds the request and response bodies of the HTTP API.
package api

import (
	"net/http"
	"time"
)

// Response is the envelope every endpoint answers with, success or not.
type Response struct {
	StatusCode    int      `json:"statusCode"`
	IsSuccess     bool     `json:"isSuccess"`
	ErrorMessages []string `json:"errorMessages"`
	Result        any      `json:"result"`
}

func Success(statusCode int, result any) *Response {
	return &Response{
		StatusCode:    statusCode,
		IsSuccess:     true,
		ErrorMessages: []string{},
		Result:        result,
	}
}

// Failure builds an error envelope. Without messages the status text is used.
func Failure(statusCode int, messages ...string) *Response {
	if len(messages) == 0 {
		messages = []string{http.StatusText(statusCode)}
	}
	return &Response{
		StatusCode:    statusCode,
		IsSuccess:     false,
		ErrorMessages: messages,
	}
}

// 认证

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"`
}

type UserInfo struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// 分页

type ListParams struct {
	Page  *uint `query:"page"`
	Limit *uint `query:"limit" validate:"omitempty,max=1000"` // constants.ListLimitMax
}

type ListResponse[T any] struct {
	Limit   int   `json:"limit"`
	PageMax int64 `json:"pageMax"`
	List    []T   `json:"list"`
}

// 作者

type AuthorCreate struct {
	Name string `json:"name" validate:"required"`
	Bio  string `json:"bio"`
}

type AuthorUpdate struct {
	Id   *uint   `json:"id"`
	Name *string `json:"name" validate:"omitempty,min=1"`
	Bio  *string `json:"bio"`
}

type AuthorInfoWithID struct {
	Id        uint          `json:"id"`
	Name      string        `json:"name"`
	Bio       string        `json:"bio"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy"`
	Books     []BookSummary `json:"books,omitempty"`
}

// 分类

type CategoryCreate struct {
	Name     string `json:"name" validate:"required"`
	Priority string `json:"priority"`
}

type CategoryUpdate struct {
	Id       *uint   `json:"id"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Priority *string `json:"priority"`
}

type CategoryInfoWithID struct {
	Id        uint      `json:"id"`
	Name      string    `json:"name"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// 书

// BookForm is the multipart form of book create and update; the cover is
// read separately from the "file" part.
type BookForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	AuthorId    uint   `form:"authorId" validate:"required"`
	CategoryIds []uint `form:"categoryId"`
}

type BookSummary struct {
	Id    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type BookInfoWithID struct {
	Id          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
	CreatedAt   time.Time            `json:"createdAt"`
	CreatedBy   string               `json:"createdBy"`
	AuthorId    uint                 `json:"authorId"`
	Author      *AuthorInfoWithID    `json:"author,omitempty"`
	Categories  []CategoryInfoWithID `json:"categories"`
}
