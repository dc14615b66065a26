package identity

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"unihub/internal/core/domain"
)

// DefaultFacebookGraphURL is the Graph API root
const DefaultFacebookGraphURL = "https://graph.facebook.com"

const facebookProfileFields = "id,email,first_name,last_name,picture"

// FacebookClient resolves Facebook access tokens into user profiles
type FacebookClient struct {
	graphURL string
	http     *http.Client
}

type facebookUserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// NewFacebookClient creates a Facebook client; an empty URL selects the public Graph API
func NewFacebookClient(graphURL string) *FacebookClient {
	if graphURL == "" {
		graphURL = DefaultFacebookGraphURL
	}
	return &FacebookClient{graphURL: strings.TrimRight(graphURL, "/"), http: http.DefaultClient}
}

// Verify fetches the /me profile owning token
func (c *FacebookClient) Verify(ctx context.Context, token string) (*domain.UserProfile, error) {
	endpoint := c.graphURL + "/me?" + url.Values{"fields": {facebookProfileFields}}.Encode()

	var info facebookUserInfo
	if err := fetchProfile(ctx, c.http, endpoint, token, &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("facebook account has no email")
	}

	return &domain.UserProfile{
		Email:      info.Email,
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		PictureURL: info.Picture.Data.URL,
	}, nil
}
