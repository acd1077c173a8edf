// Package github implementa el login federado con una OAuth App de GitHub.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
)

const defaultAPIBase = "https://api.github.com"

// Config credenciales de la OAuth App.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Client intercambia el code y consulta /user y /user/emails.
type Client struct {
	oauth   *oauth2.Config
	apiBase string
}

// NewClient usa el endpoint OAuth de GitHub con scope user:email.
func NewClient(cfg Config) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     oauthgithub.Endpoint,
			Scopes:       []string{"user:email"},
		},
		apiBase: defaultAPIBase,
	}
}

var _ auth.FederatedProvider = (*Client)(nil)

func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchProfile intercambia el code por un token y arma el perfil.
// El email sale de /user; si es privado se usa el primario verificado de /user/emails
// y en último caso la dirección noreply de GitHub.
func (c *Client) FetchProfile(ctx context.Context, code string) (*auth.FederatedProfile, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github: intercambio de code: %w", err)
	}
	httpClient := c.oauth.Client(ctx, tok)

	var u githubUser
	if err := c.getJSON(ctx, httpClient, "/user", &u); err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("github: respuesta /user sin id")
	}

	email := u.Email
	if email == "" {
		var emails []githubEmail
		if err := c.getJSON(ctx, httpClient, "/user/emails", &emails); err == nil {
			email = pickEmail(emails)
		}
	}
	if email == "" {
		email = fmt.Sprintf("%d+%s@users.noreply.github.com", u.ID, u.Login)
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}
	return &auth.FederatedProfile{
		ExternalID: strconv.FormatInt(u.ID, 10),
		Name:       name,
		Email:      strings.ToLower(email),
		AvatarURL:  u.AvatarURL,
	}, nil
}

// pickEmail prefiere el primario verificado, luego cualquier verificado.
func pickEmail(emails []githubEmail) string {
	fallback := ""
	for _, e := range emails {
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e.Email
		}
		if fallback == "" {
			fallback = e.Email
		}
	}
	return fallback
}

func (c *Client) getJSON(ctx context.Context, httpClient *http.Client, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("github %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("github %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("github %s: decodificar: %w", path, err)
	}
	return nil
}
