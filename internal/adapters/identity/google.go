package identity

import (
	"context"
	"errors"
	"net/http"

	"unihub/internal/core/domain"
)

// DefaultGoogleUserInfoURL is Google's OAuth2 userinfo endpoint
const DefaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleClient resolves Google access tokens into user profiles
type GoogleClient struct {
	userInfoURL string
	http        *http.Client
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// NewGoogleClient creates a Google client; an empty URL selects the public endpoint
func NewGoogleClient(userInfoURL string) *GoogleClient {
	if userInfoURL == "" {
		userInfoURL = DefaultGoogleUserInfoURL
	}
	return &GoogleClient{userInfoURL: userInfoURL, http: http.DefaultClient}
}

// Verify fetches the profile owning token; unverified emails are rejected
func (c *GoogleClient) Verify(ctx context.Context, token string) (*domain.UserProfile, error) {
	var info googleUserInfo
	if err := fetchProfile(ctx, c.http, c.userInfoURL, token, &info); err != nil {
		return nil, err
	}
	if info.Email == "" || !info.VerifiedEmail {
		return nil, errors.New("google account has no verified email")
	}

	return &domain.UserProfile{
		Email:      info.Email,
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
		PictureURL: info.Picture,
	}, nil
}
