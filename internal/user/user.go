package user

import (
	"time"

	"github.com/twofourteen/hr-portal/internal"
)

// Profile is the self-service view of an account. The password hash
// never leaves the auth package.
type Profile struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

var ErrNotFound = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
