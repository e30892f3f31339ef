package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"adminportal/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultTokenTTL = 8 * time.Hour
	DefaultLeeway   = 30 * time.Second
	MaxLeeway       = 60 * time.Second
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService signs and verifies session tokens with one process-wide
// secret. Rotating the secret invalidates every outstanding token.
type TokenService interface {
	Issue(claims models.SessionClaims) (*models.IssuedToken, error)
	IssueWithTTL(claims models.SessionClaims, ttl time.Duration) (*models.IssuedToken, error)
	Verify(token string) (*models.SessionClaims, error)
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Leeway time.Duration
	Issuer string
}

// SessionTokenClaims is the JWT body. The principal id is also the subject.
type SessionTokenClaims struct {
	PrincipalID int64  `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Scope       string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (TokenService, error) {
	return newTokenService(cfg, time.Now)
}

func newTokenService(cfg TokenConfig, now func() time.Time) (*tokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.Leeway < 0 || cfg.Leeway > MaxLeeway {
		return nil, fmt.Errorf("token: leeway %s outside [0, %s]", cfg.Leeway, MaxLeeway)
	}
	return &tokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		leeway: cfg.Leeway,
		issuer: cfg.Issuer,
		now:    now,
	}, nil
}

func (s *tokenService) Issue(claims models.SessionClaims) (*models.IssuedToken, error) {
	return s.IssueWithTTL(claims, s.ttl)
}

func (s *tokenService) IssueWithTTL(claims models.SessionClaims, ttl time.Duration) (*models.IssuedToken, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	tokenID := uuid.NewString()

	body := SessionTokenClaims{
		PrincipalID: claims.ID,
		Email:       claims.Email,
		Role:        claims.Role,
		Scope:       claims.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(claims.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, body).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	return &models.IssuedToken{
		Token:     signed,
		TokenID:   tokenID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Verify returns ErrTokenExpired once now passes expiry plus the leeway and
// ErrTokenInvalid for any signature, structure or algorithm problem.
func (s *tokenService) Verify(tokenString string) (*models.SessionClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.leeway > 0 {
		options = append(options, jwt.WithLeeway(s.leeway))
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	body := &SessionTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, body, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	return &models.SessionClaims{
		ID:    body.PrincipalID,
		Email: body.Email,
		Role:  body.Role,
		Scope: body.Scope,
	}, nil
}
