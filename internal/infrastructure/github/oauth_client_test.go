package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// newTestClient apunta token y API a un servidor local.
func newTestClient(t *testing.T, userJSON, emailsJSON string) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(userJSON))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		if emailsJSON == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(emailsJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(Config{ClientID: "id", ClientSecret: "secret", CallbackURL: "http://localhost/cb"})
	c.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  srv.URL + "/login/oauth/authorize",
		TokenURL: srv.URL + "/login/oauth/access_token",
	}
	c.apiBase = srv.URL
	return c
}

func TestAuthCodeURL(t *testing.T) {
	c := NewClient(Config{ClientID: "id", ClientSecret: "secret", CallbackURL: "http://localhost/cb"})
	u, err := url.Parse(c.AuthCodeURL("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "github.com", u.Host)
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "user:email", u.Query().Get("scope"))
}

func TestFetchProfile_PublicEmail(t *testing.T) {
	c := newTestClient(t, `{"id":583231,"login":"octocat","name":"The Octocat","email":"Octo@GitHub.com","avatar_url":"https://a/1"}`, "")
	p, err := c.FetchProfile(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "583231", p.ExternalID)
	assert.Equal(t, "The Octocat", p.Name)
	assert.Equal(t, "octo@github.com", p.Email)
	assert.Equal(t, "https://a/1", p.AvatarURL)
}

func TestFetchProfile_PrivateEmail(t *testing.T) {
	c := newTestClient(t, `{"id":7,"login":"dev","email":null}`,
		`[{"email":"old@x.com","verified":true},{"email":"main@x.com","primary":true,"verified":true}]`)
	p, err := c.FetchProfile(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "main@x.com", p.Email)
	assert.Equal(t, "dev", p.Name)
}

func TestFetchProfile_NoreplyFallback(t *testing.T) {
	c := newTestClient(t, `{"id":7,"login":"dev"}`, "")
	p, err := c.FetchProfile(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "7+dev@users.noreply.github.com", p.Email)
}

func TestPickEmail(t *testing.T) {
	assert.Equal(t, "", pickEmail([]githubEmail{{Email: "a@x", Primary: true}}))
	assert.Equal(t, "b@x", pickEmail([]githubEmail{{Email: "a@x"}, {Email: "b@x", Verified: true}}))
}
