package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// TokenIssuer signs session tokens for buyers and the admin.
type TokenIssuer interface {
	IssueUser(userID string) (string, error)
	IssueAdmin() (string, error)
}

type AdminCredentials struct {
	Email    string
	Password string
}

type UserService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
	admin  AdminCredentials
	cost   int
	now    func() time.Time
}

func NewUserService(r repository.UserRepository, tokens TokenIssuer, admin AdminCredentials) *UserService {
	return &UserService{
		repo:   r,
		tokens: tokens,
		admin:  admin,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", domain.BadInput("Please enter a valid email")
	}
	if len(password) < minPasswordLength {
		return "", domain.BadInput("Password must be at least 8 characters")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.Internal("failed to look up user", err)
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", domain.Internal("failed to hash password", err)
	}

	u := &domain.User{Name: name, Email: email, PasswordHash: string(hash), CreatedAt: s.now()}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", domain.Internal("failed to create user", err)
	}
	return s.issue(s.tokens.IssueUser(u.ID))
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.Internal("failed to look up user", err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.issue(s.tokens.IssueUser(u.ID))
}

// AdminLogin checks the configured admin credentials. An unset admin password never matches.
func (s *UserService) AdminLogin(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if s.admin.Password == "" ||
		email != strings.ToLower(s.admin.Email) ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) != 1 {
		return "", ErrInvalidCredentials
	}
	return s.issue(s.tokens.IssueAdmin())
}

func (s *UserService) issue(token string, err error) (string, error) {
	if err != nil {
		return "", domain.Internal("failed to issue token", err)
	}
	return token, nil
}
