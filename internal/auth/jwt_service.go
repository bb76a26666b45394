package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
)

// DefaultTokenTTL is how long issued bearer tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims represents JWT claims.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueToken signs a bearer token for subject. The token id (jti) is
// returned with it so the caller can revoke it later.
func (s *JWTService) IssueToken(subject, role string, ttl time.Duration) (token string, claims *Claims, err error) {
	if subject == "" {
		return "", nil, apperrors.Validationf("token subject is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := s.now()
	claims = &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// ValidateToken validates a JWT token and returns the claims. Every failure
// matches ErrUnauthorized.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token id not found", apperrors.ErrUnauthorized)
	}

	return claims, nil
}

// ContextKey is where the request's validated *Claims are stored.
const ContextKey = "user"

// ClaimsFromContext returns the claims placed on the request by the bearer
// middleware.
func ClaimsFromContext(get func(key string) any) (*Claims, bool) {
	claims, ok := get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}
