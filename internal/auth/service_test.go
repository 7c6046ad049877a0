package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

// Mock repository for testing
type mockAccountRepository struct {
	accounts    map[string]*auth.Account
	createError error
	lastLogin   map[string]time.Time
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		accounts:  make(map[string]*auth.Account),
		lastLogin: make(map[string]time.Time),
	}
}

func (m *mockAccountRepository) GetByEmail(email string) (*auth.Account, error) {
	for _, acc := range m.accounts {
		if acc.Email == email {
			clone := *acc
			return &clone, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockAccountRepository) GetByID(id string) (*auth.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	clone := *acc
	return &clone, nil
}

func (m *mockAccountRepository) Create(account *auth.Account) error {
	if m.createError != nil {
		return m.createError
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	clone := *account
	m.accounts[account.ID] = &clone
	return nil
}

func (m *mockAccountRepository) StampLastLogin(id string, at time.Time) error {
	m.lastLogin[id] = at
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		svc      *auth.Service
		mockRepo *mockAccountRepository
	)

	const password = "correct-horse-battery"

	seedAccount := func(email, role, status string) *auth.Account {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).ToNot(HaveOccurred())
		acc := &auth.Account{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Status:       status,
		}
		Expect(mockRepo.Create(acc)).To(Succeed())
		return acc
	}

	BeforeEach(func() {
		mockRepo = newMockAccountRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = auth.NewService(mockRepo, internal.SecurityConfig{
			SessionSecret:   "0123456789abcdef0123456789abcdef",
			SessionDuration: 7 * 24 * time.Hour,
			BCryptCost:      bcrypt.MinCost,
		}, logger)
	})

	Describe("Authenticate", func() {
		It("returns the user and a token the service itself accepts", func() {
			acc := seedAccount("ada@example.com", auth.RoleEmployee, auth.StatusActive)

			user, token, err := svc.Authenticate(auth.LoginDTO{Email: "ada@example.com", Password: password})

			Expect(err).ToNot(HaveOccurred())
			Expect(user.ID).To(Equal(acc.ID))
			Expect(token).ToNot(BeEmpty())

			parsed, err := svc.ValidateSession(token)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed.ID).To(Equal(acc.ID))
			Expect(parsed.Role).To(Equal(auth.RoleEmployee))
		})

		It("stamps last login", func() {
			acc := seedAccount("ada@example.com", auth.RoleEmployee, auth.StatusActive)

			_, _, err := svc.Authenticate(auth.LoginDTO{Email: "ada@example.com", Password: password})

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastLogin).To(HaveKey(acc.ID))
		})

		It("rejects a wrong password", func() {
			seedAccount("ada@example.com", auth.RoleEmployee, auth.StatusActive)

			_, _, err := svc.Authenticate(auth.LoginDTO{Email: "ada@example.com", Password: "wrong"})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error as a wrong password", func() {
			_, _, err := svc.Authenticate(auth.LoginDTO{Email: "nobody@example.com", Password: password})

			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects a locked account even with the right password", func() {
			seedAccount("ada@example.com", auth.RoleEmployee, auth.StatusLocked)

			_, _, err := svc.Authenticate(auth.LoginDTO{Email: "ada@example.com", Password: password})

			Expect(err).To(Equal(auth.ErrAccountLocked))
		})
	})

	Describe("Signup", func() {
		It("creates an employee account with a hashed password", func() {
			user, token, err := svc.Signup(auth.SignupDTO{
				Email:     "grace@example.com",
				Password:  "longenough",
				FirstName: "Grace",
				LastName:  "Hopper",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(user.Role).To(Equal(auth.RoleEmployee))
			Expect(token).ToNot(BeEmpty())

			stored, err := mockRepo.GetByID(user.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.PasswordHash).ToNot(Equal("longenough"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough"))).To(Succeed())
		})

		It("rejects a duplicate email", func() {
			seedAccount("ada@example.com", auth.RoleEmployee, auth.StatusActive)

			_, _, err := svc.Signup(auth.SignupDTO{
				Email:     "ada@example.com",
				Password:  "longenough",
				FirstName: "Ada",
				LastName:  "Again",
			})

			Expect(err).To(Equal(auth.ErrEmailTaken))
			Expect(mockRepo.accounts).To(HaveLen(1))
		})

		It("rejects a short password before touching the repository", func() {
			_, _, err := svc.Signup(auth.SignupDTO{
				Email:     "grace@example.com",
				Password:  "short",
				FirstName: "Grace",
				LastName:  "Hopper",
			})

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.accounts).To(BeEmpty())
		})
	})

	Describe("ValidateSession", func() {
		It("rejects garbage tokens", func() {
			_, err := svc.ValidateSession("not-a-token")
			Expect(err).To(Equal(auth.ErrInvalidSession))
		})

		It("rejects a token signed with a different secret", func() {
			otherLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			other := auth.NewService(mockRepo, internal.SecurityConfig{
				SessionSecret:   "ffffffffffffffffffffffffffffffff",
				SessionDuration: time.Hour,
				BCryptCost:      bcrypt.MinCost,
			}, otherLogger)

			seedAccount("ada@example.com", auth.RoleEmployee, auth.StatusActive)
			_, token, err := other.Authenticate(auth.LoginDTO{Email: "ada@example.com", Password: password})
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.ValidateSession(token)
			Expect(err).To(Equal(auth.ErrInvalidSession))
		})
	})
})
