package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrWeakSecret   = errors.New("jwt secret must be at least 32 bytes")
)

// MinSecretLength is the minimum HS256 key size in bytes
const MinSecretLength = 32

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents the JWT claims
type Claims struct {
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Codec issues and parses tokens of one type signed with one secret
type Codec struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	tokenType TokenType
	now       func() time.Time
}

// NewCodec creates a codec; secrets shorter than MinSecretLength are rejected
func NewCodec(secret, issuer string, ttl time.Duration, tokenType TokenType) (*Codec, error) {
	if len([]byte(secret)) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &Codec{
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		tokenType: tokenType,
		now:       time.Now,
	}, nil
}

// TTL returns the lifetime of issued tokens
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue generates a signed token for subject carrying the role claim
func (c *Codec) Issue(subject, role string) (string, error) {
	now := c.now()
	claims := Claims{
		Role:      role,
		TokenType: c.tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse validates a token and returns its claims
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.Role == "" || claims.TokenType != c.tokenType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExpiresAt returns the expiry time for a token issued now
func (c *Codec) ExpiresAt() time.Time {
	return c.now().Add(c.ttl)
}
