package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/twofourteen/hr-portal/internal"
)

// RepositoryAPI defines the data access the auth service needs.
type RepositoryAPI interface {
	GetByEmail(email string) (*Account, error)
	GetByID(id string) (*Account, error)
	Create(account *Account) error
	StampLastLogin(id string, at time.Time) error
}

type Service struct {
	repo            RepositoryAPI
	logger          *slog.Logger
	sessionSecret   []byte
	sessionDuration time.Duration
	bcryptCost      int
	now             func() time.Time
}

func NewService(repo RepositoryAPI, cfg internal.SecurityConfig, logger *slog.Logger) *Service {
	cost := cfg.BCryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		repo:            repo,
		logger:          logger,
		sessionSecret:   []byte(cfg.SessionSecret),
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cost,
		now:             time.Now,
	}
}

// Authenticate verifies credentials and returns the user plus a signed
// session token. Locked accounts are rejected even with a valid password.
func (s *Service) Authenticate(dto LoginDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	account, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", account.ID)
		return nil, "", ErrInvalidCredentials
	}

	if account.Status == StatusLocked {
		s.logger.Warn("login rejected: account locked", "user_id", account.ID)
		return nil, "", ErrAccountLocked
	}

	if err := s.repo.StampLastLogin(account.ID, s.now()); err != nil {
		s.logger.Error("failed to stamp last login", "error", err, "user_id", account.ID)
	}

	token, err := s.issueSession(account)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to create session", err)
	}

	s.logger.Info("login successful", "user_id", account.ID, "role", account.Role)
	return account.ToUser(), token, nil
}

// Signup registers a new employee account and opens a session for it.
func (s *Service) Signup(dto SignupDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to hash password", err)
	}

	account := &Account{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         RoleEmployee,
		Status:       StatusActive,
	}

	if err := s.repo.Create(account); err != nil {
		s.logger.Error("failed to create account", "error", err, "email", dto.Email)
		return nil, "", internal.NewInternalError("failed to create account", err)
	}

	token, err := s.issueSession(account)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to create session", err)
	}

	s.logger.Info("account created", "user_id", account.ID)
	return account.ToUser(), token, nil
}

// ValidateSession parses the session cookie token and returns the identity
// it represents.
func (s *Service) ValidateSession(tokenString string) (*User, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	return &User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
	}, nil
}

// SessionDuration exposes the cookie lifetime to the handler.
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}

func (s *Service) issueSession(account *Account) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		UserID:    account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.sessionSecret)
}
