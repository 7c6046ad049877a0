package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/twofourteen/hr-portal/internal"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

const (
	StatusActive = "Active"
	StatusLocked = "Locked"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// User is the authenticated identity placed in the request context. It is
// the view every other component consumes: {userId, role} plus display
// fields.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// Account is the stored credential record behind a User.
type Account struct {
	ID           string     `json:"id" gorm:"column:id;primaryKey"`
	FirstName    string     `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string     `json:"last_name" gorm:"column:last_name;not null"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Role         string     `json:"role" gorm:"column:role;default:employee"`
	Status       string     `json:"status" gorm:"column:status;default:Active"`
	LastLogin    *time.Time `json:"last_login,omitempty" gorm:"column:last_login"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "users"
}

func (a *Account) ToUser() *User {
	return &User{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
	}
}

// SessionClaims are the JWT claims embedded in the session cookie.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("invalid email or password", internal.ErrCodeInvalidCredentials)
	ErrAccountLocked      = internal.NewForbiddenError("your account has been locked, contact an administrator", internal.ErrCodeAccountLocked)
	ErrInvalidSession     = internal.NewUnauthorizedError("invalid or expired session", internal.ErrCodeInvalidSession)

	// Signup duplicates are a 409, unlike the lifecycle conflicts which the
	// API contract surfaces as 400.
	ErrEmailTaken = &internal.AppError{
		Type:       internal.ErrorTypeConflict,
		Code:       internal.ErrCodeEmailTaken,
		Message:    "an account with this email already exists",
		StatusCode: http.StatusConflict,
	}
)

type ctxKey int

const userContextKey ctxKey = 0

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userContextKey).(*User)
	return u, ok
}
