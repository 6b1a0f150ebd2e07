package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *mocks.MockUserRepository, *mocks.MockTokenIssuer) {
	t.Helper()
	repo := new(mocks.MockUserRepository)
	tokens := new(mocks.MockTokenIssuer)
	s := NewUserService(repo, tokens, AdminCredentials{Email: "Admin@Shop.example", Password: "admin-pass"})
	s.cost = bcrypt.MinCost
	return s, repo, tokens
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockTokenIssuer)
		expectedKind  domain.Kind
		expectedError string
	}{
		{
			name:     "new user",
			email:    " Asha@Example.com ",
			password: "long-enough",
			setupMocks: func(r *mocks.MockUserRepository, tk *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, nil)
				r.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.Email == "asha@example.com" &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long-enough")) == nil
				})).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.User).ID = TestUserID
				})
				tk.On("IssueUser", TestUserID).Return("token-1", nil)
			},
		},
		{
			name:          "invalid email",
			email:         "not-an-email",
			password:      "long-enough",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockTokenIssuer) {},
			expectedKind:  domain.KindBadInput,
			expectedError: "valid email",
		},
		{
			name:          "short password",
			email:         "asha@example.com",
			password:      "short",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockTokenIssuer) {},
			expectedKind:  domain.KindBadInput,
			expectedError: "at least 8",
		},
		{
			name:     "existing user",
			email:    "asha@example.com",
			password: "long-enough",
			setupMocks: func(r *mocks.MockUserRepository, _ *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(&domain.User{ID: TestUserID}, nil)
			},
			expectedKind:  domain.KindConflict,
			expectedError: "already exists",
		},
		{
			name:     "concurrent registration",
			email:    "asha@example.com",
			password: "long-enough",
			setupMocks: func(r *mocks.MockUserRepository, _ *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, nil)
				r.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
			},
			expectedKind:  domain.KindConflict,
			expectedError: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, tokens := newUserService(t)
			tt.setupMocks(repo, tokens)

			token, err := service.Register(context.Background(), "Asha", tt.email, tt.password)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, domain.KindOf(err))
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token-1", token)
			}

			repo.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("long-enough"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: TestUserID, Email: "asha@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name          string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockTokenIssuer)
		expectedError error
	}{
		{
			name:     "valid credentials",
			password: "long-enough",
			setupMocks: func(r *mocks.MockUserRepository, tk *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)
				tk.On("IssueUser", TestUserID).Return("token-1", nil)
			},
		},
		{
			name:     "wrong password",
			password: "wrong-password",
			setupMocks: func(r *mocks.MockUserRepository, _ *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			password: "long-enough",
			setupMocks: func(r *mocks.MockUserRepository, _ *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:     "repository error",
			password: "long-enough",
			setupMocks: func(r *mocks.MockUserRepository, _ *mocks.MockTokenIssuer) {
				r.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, tokens := newUserService(t)
			tt.setupMocks(repo, tokens)

			token, err := service.Login(context.Background(), "ASHA@example.com", tt.password)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.name == "repository error":
				assert.Equal(t, domain.KindInternal, domain.KindOf(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, "token-1", token)
			}

			repo.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestUserService_AdminLogin(t *testing.T) {
	service, _, tokens := newUserService(t)
	tokens.On("IssueAdmin").Return("admin-token", nil)

	token, err := service.AdminLogin("admin@shop.example", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin-token", token)

	_, err = service.AdminLogin("admin@shop.example", "guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.AdminLogin("someone@shop.example", "admin-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	unset := NewUserService(nil, tokens, AdminCredentials{})
	_, err = unset.AdminLogin("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
