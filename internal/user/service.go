package user

import (
	"log/slog"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/auth"
)

// AccountReader is the slice of the auth repository the profile view
// needs.
type AccountReader interface {
	GetByID(id string) (*auth.Account, error)
}

type Service struct {
	accounts AccountReader
	logger   *slog.Logger
}

func NewService(accounts AccountReader, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, logger: logger}
}

// Profile loads the full stored account for the given user id.
func (s *Service) Profile(userID string) (*Profile, error) {
	account, err := s.accounts.GetByID(userID)
	if err != nil || account == nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load account", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load profile", err)
	}

	return &Profile{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
		Status:    account.Status,
		LastLogin: account.LastLogin,
		CreatedAt: account.CreatedAt,
	}, nil
}
