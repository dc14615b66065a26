package services

import (
	"context"
	"strings"
	"time"

	"unihub/internal/core/domain"
	"unihub/internal/pkg/logger"
	"unihub/internal/pkg/password"
)

// IdentityProvider verifies a provider access token and returns the owner's profile
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (*domain.UserProfile, error)
}

// DefaultProviderTimeout bounds a single provider verification call
const DefaultProviderTimeout = 10 * time.Second

// CredentialVerifier checks passwords and external identity tokens
type CredentialVerifier struct {
	providers map[domain.Provider]IdentityProvider
	timeout   time.Duration
}

// NewCredentialVerifier creates a new credential verifier
func NewCredentialVerifier(providers map[domain.Provider]IdentityProvider, timeout time.Duration) *CredentialVerifier {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &CredentialVerifier{providers: providers, timeout: timeout}
}

// VerifyPassword compares a plain password with a bcrypt hash
func (v *CredentialVerifier) VerifyPassword(plain, hash string) bool {
	return password.Verify(plain, hash)
}

// ParseProvider converts a path segment such as "google" into a Provider
func ParseProvider(s string) (domain.Provider, bool) {
	switch domain.Provider(strings.ToUpper(s)) {
	case domain.ProviderGoogle:
		return domain.ProviderGoogle, true
	case domain.ProviderFacebook:
		return domain.ProviderFacebook, true
	}
	return "", false
}

// VerifyExternalIdentity verifies token with provider; every failure is reported as an invalid token
func (v *CredentialVerifier) VerifyExternalIdentity(ctx context.Context, provider domain.Provider, token string) (*domain.UserProfile, error) {
	p, ok := v.providers[provider]
	if !ok {
		return nil, domain.IllegalArgument("provider.invalid.value")
	}
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrInvalidToken
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	profile, err := p.Verify(ctx, token)
	if err != nil {
		logger.WithComponent("credentials").Warn("external identity rejected", "provider", provider, "error", err)
		return nil, domain.ErrInvalidToken
	}
	if profile == nil || profile.Email == "" {
		return nil, domain.ErrInvalidToken
	}
	return profile, nil
}
