package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reservation-api/auth"
	"reservation-api/models"
	"reservation-api/obs"
	"reservation-api/repository"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type SignupInput struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// AuthService owns the credential flows: signup, login and logout.
type AuthService struct {
	users            *repository.UserRepo
	tokens           *auth.TokenService
	allowAdminSignup bool
	validate         *validator.Validate
	tracer           trace.Tracer
}

func NewAuthService(users *repository.UserRepo, tokens *auth.TokenService, allowAdminSignup bool) *AuthService {
	return &AuthService{
		users:            users,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
		validate:         newValidator(),
		tracer:           obs.Tracer("auth"),
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Signup creates a user account. Role defaults to user.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (user *models.User, err error) {
	ctx, span := s.tracer.Start(ctx, "auth.Signup")
	defer func() { finish(span, err) }()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if in.Role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, fmt.Errorf("%w: admin accounts cannot be created through signup", ErrForbidden)
	}

	if _, err := s.users.ByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dbErr("find user", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user = &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, dbErr("create user", err)
	}
	return user, nil
}

// Login checks the password and issues a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (res *LoginResult, err error) {
	ctx, span := s.tracer.Start(ctx, "auth.Login")
	defer func() { finish(span, err) }()

	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	user, err := s.users.ByEmail(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, dbErr("find user", err)
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the token the caller authenticated with.
func (s *AuthService) Logout(_ context.Context, id auth.Identity) {
	s.tokens.Revoke(id)
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.ByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, dbErr("find user", err)
	}
	return user, nil
}
