package auth

import (
	"errors"
	"fmt"
	"time"

	"reservation-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = time.Hour

var (
	ErrMalformed        = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrRevoked          = errors.New("token revoked")
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID       uint            `json:"user_id"`
	LegacyUserID uint            `json:"userId,omitempty"` // name the mobile app decodes
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID    uint
	Email     string
	Role      models.UserRole
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// TokenService issues and verifies signed session tokens. It keeps no
// session state beyond the optional revocation denylist.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	denylist *Denylist
}

type Option func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithDenylist enables revocation checks against d.
func WithDenylist(d *Denylist) Option {
	return func(s *TokenService) { s.denylist = d }
}

func NewTokenService(secret string, opts ...Option) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a signed JWT for a given user
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := Claims{
		UserID:       user.ID,
		LegacyUserID: user.ID,
		Email:        user.Email,
		Role:         user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, expiry and revocation and returns the bearer's
// identity.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, classify(err)
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: missing identity claims", ErrMalformed)
	}

	id := Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if s.denylist != nil && id.TokenID != "" && s.denylist.IsRevoked(id.TokenID) {
		return Identity{}, ErrRevoked
	}
	return id, nil
}

// Revoke puts the identity's token on the denylist until it would have
// expired anyway. It is a no-op without a denylist.
func (s *TokenService) Revoke(id Identity) {
	if s.denylist == nil || id.TokenID == "" {
		return
	}
	s.denylist.Revoke(id.TokenID, id.ExpiresAt)
	s.denylist.Cleanup(s.now())
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
