package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/client/models"
	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	signer  *auth.TokenCodec
	token   string
	userID  string
}

// NewHTTPClient builds a client for the API at baseURL. A non-empty secret
// makes every request body travel as a signed payload.
func NewHTTPClient(baseURL, secret string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	if secret != "" {
		c.signer, err = auth.NewTokenCodec([]byte(secret))
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *HTTPClient) LoggedIn() bool {
	return c.token != ""
}

func (c *HTTPClient) UserID() string {
	return c.userID
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Register creates an account and returns its id.
func (c *HTTPClient) Register(ctx context.Context, username, email string, password []byte) (string, error) {
	req := map[string]string{"username": username, "email": email, "password": string(password)}
	var resp struct {
		UserID string `json:"user_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/users", req, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// Login opens a session and keeps its token for later calls.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	req := map[string]string{"email": email, "password": string(password)}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return err
	}

	userID, err := subjectOf(resp.Token)
	if err != nil {
		return err
	}
	c.token, c.userID = resp.Token, userID
	return nil
}

// subjectOf reads the account id from the session token. The client has no
// way to verify the signature, nor does it need to.
func subjectOf(token string) (string, error) {
	var claims struct {
		ID string `json:"id"`
		jwt.RegisteredClaims
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("unexpected token from server: %w", err)
	}
	if claims.ID == "" {
		return "", errors.New("unexpected token from server: no account id")
	}
	return claims.ID, nil
}

// Logout revokes the session on the server and forgets the token locally,
// even if the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	c.token, c.userID = "", ""
	return err
}

func (c *HTTPClient) Movies(ctx context.Context) ([]models.Movie, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var out []models.Movie
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(c.userID)+"/movies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddMovie(ctx context.Context, m models.NewMovie) (*models.Movie, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var out models.Movie
	if err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(c.userID)+"/movies", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := c.encode(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return mapError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// encode marshals in, wrapping it in a signed payload when a secret is set.
func (c *HTTPClient) encode(in any) ([]byte, error) {
	if c.signer == nil {
		return json.Marshal(in)
	}
	tok, err := c.signer.Sign(in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{common.PayloadField: tok})
}

func mapError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrAlreadyExists
	default:
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if e.Error == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, e.Error)
}
