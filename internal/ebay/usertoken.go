package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrRefreshFailed is returned when a refresh token exchange is rejected.
// Callers must not retry; the user has to re-run the authorization flow.
var ErrRefreshFailed = errors.New("token refresh failed")

const defaultAuthorizeURL = "https://auth.ebay.com/oauth2/authorize"

// UserToken is the result of an authorization-code or refresh exchange.
// ExpiresAt is absolute, computed from expires_in at the moment of issuance.
type UserToken struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
}

// UserTokenSource drives the eBay user-level OAuth2 authorization-code flow:
// building the consent redirect, exchanging the callback code, and refreshing
// access tokens. It holds no token state itself; persisted tokens live in the
// session store.
type UserTokenSource struct {
	clientID     string
	clientSecret string
	redirectURI  string // the eBay RuName in production
	scopes       []string
	tokenURL     string
	authorizeURL string
	client       *http.Client
	nowFunc      func() time.Time // for testing
}

// UserTokenOption configures the UserTokenSource.
type UserTokenOption func(*UserTokenSource)

// WithUserTokenURL overrides the default eBay token endpoint.
func WithUserTokenURL(u string) UserTokenOption {
	return func(s *UserTokenSource) {
		s.tokenURL = u
	}
}

// WithAuthorizeURL overrides the default eBay consent endpoint.
func WithAuthorizeURL(u string) UserTokenOption {
	return func(s *UserTokenSource) {
		s.authorizeURL = u
	}
}

// WithUserTokenHTTPClient overrides the default HTTP client.
func WithUserTokenHTTPClient(c *http.Client) UserTokenOption {
	return func(s *UserTokenSource) {
		s.client = c
	}
}

// WithUserTokenNowFunc overrides the time function for testing.
func WithUserTokenNowFunc(f func() time.Time) UserTokenOption {
	return func(s *UserTokenSource) {
		s.nowFunc = f
	}
}

// NewUserTokenSource creates a user OAuth token source for the given app
// credentials and registered redirect.
func NewUserTokenSource(
	clientID, clientSecret, redirectURI string,
	scopes []string,
	opts ...UserTokenOption,
) *UserTokenSource {
	s := &UserTokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		scopes:       scopes,
		tokenURL:     defaultTokenURL,
		authorizeURL: defaultAuthorizeURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthorizeURL builds the vendor consent redirect target. The state token is
// the caller's anti-forgery value and is echoed back on the callback.
func (s *UserTokenSource) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", strings.Join(s.scopes, " "))
	params.Set("state", state)
	return s.authorizeURL + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access/refresh token pair.
// A non-2xx response is fatal to this auth attempt; the vendor's raw error
// text is preserved for diagnosis.
func (s *UserTokenSource) ExchangeCode(
	ctx context.Context,
	code string,
) (*UserToken, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {s.redirectURI},
	}

	tok, err := s.exchange(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return tok, nil
}

// Refresh trades a refresh token for a fresh access token. eBay does not
// rotate refresh tokens, so when the response omits refresh_token the prior
// one is carried forward. A failed refresh returns ErrRefreshFailed and is
// never retried here; the caller decides whether to restart authorization.
func (s *UserTokenSource) Refresh(
	ctx context.Context,
	refreshToken string,
) (*UserToken, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"scope":         {strings.Join(s.scopes, " ")},
	}

	tok, err := s.exchange(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	if tok.RefreshToken == "" {
		tok.RefreshToken = refreshToken
	}
	return tok, nil
}

type userTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

func (s *UserTokenSource) exchange(
	ctx context.Context,
	form url.Values,
) (*UserToken, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	creds := base64.StdEncoding.EncodeToString(
		[]byte(s.clientID + ":" + s.clientSecret),
	)
	req.Header.Set("Authorization", "Basic "+creds)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"token request failed (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	var tokenResp userTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &UserToken{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		TokenType:    tokenResp.TokenType,
		ExpiresAt: s.nowFunc().Add(
			time.Duration(tokenResp.ExpiresIn) * time.Second,
		),
	}, nil
}
