package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProviderServer(t *testing.T, wantPath, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
			return
		}
		assert.Equal(t, wantPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleClient_Verify(t *testing.T) {
	srv := newProviderServer(t, "/userinfo", `{"id":"1","email":"ana@gmail.example","verified_email":true,"given_name":"Ana","family_name":"Anic","picture":"https://img.example/a.png"}`)
	client := NewGoogleClient(srv.URL + "/userinfo")

	profile, err := client.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "ana@gmail.example", profile.Email)
	assert.Equal(t, "Ana", profile.FirstName)
	assert.Equal(t, "Anic", profile.LastName)
	assert.Equal(t, "https://img.example/a.png", profile.PictureURL)

	_, err = client.Verify(context.Background(), "bad-token")
	assert.ErrorContains(t, err, "status 401")
}

func TestGoogleClient_RejectsUnverifiedEmail(t *testing.T) {
	srv := newProviderServer(t, "/userinfo", `{"id":"1","email":"ana@gmail.example","verified_email":false}`)

	_, err := NewGoogleClient(srv.URL+"/userinfo").Verify(context.Background(), "good-token")
	assert.Error(t, err)
}

func TestFacebookClient_Verify(t *testing.T) {
	var fields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields = r.URL.Query().Get("fields")
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"7","email":"bob@fb.example","first_name":"Bob","last_name":"B","picture":{"data":{"url":"https://fb.example/p.jpg"}}}`))
	}))
	t.Cleanup(srv.Close)

	profile, err := NewFacebookClient(srv.URL+"/").Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, facebookProfileFields, fields)
	assert.Equal(t, "bob@fb.example", profile.Email)
	assert.Equal(t, "https://fb.example/p.jpg", profile.PictureURL)
}

func TestFacebookClient_MalformedBody(t *testing.T) {
	srv := newProviderServer(t, "/me", `not json`)

	_, err := NewFacebookClient(srv.URL).Verify(context.Background(), "good-token")
	assert.ErrorContains(t, err, "unmarshal")
}
