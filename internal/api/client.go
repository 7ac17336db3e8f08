package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher is the six-cities API surface used by the operations layer.
// It is implemented by *Client and can be faked in tests.
type Fetcher interface {
	FetchOffers(ctx context.Context) ([]ServerOffer, error)
	FetchOffer(ctx context.Context, id string) (ServerOffer, error)
	FetchNearby(ctx context.Context, id string) ([]ServerOffer, error)
	FetchComments(ctx context.Context, id string) ([]ServerReview, error)
	PostComment(ctx context.Context, id string, body CommentRequest) (ServerReview, error)
	CheckLogin(ctx context.Context) (ServerAuthInfo, error)
	Login(ctx context.Context, body LoginRequest) (ServerAuthInfo, error)
	FetchFavorites(ctx context.Context) ([]ServerOffer, error)
	SetFavorite(ctx context.Context, id string, favorite bool) (ServerOffer, error)
}

// TokenSource supplies the persisted auth token and forgets it when the
// server rejects it.
type TokenSource interface {
	Token() string
	Drop() error
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the six-cities HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
}

// TokenHeader carries the auth token on every request.
const TokenHeader = "X-Token"

const (
	DefaultBaseURL        = "https://14.design.htmlacademy.pro/six-cities"
	DefaultRequestTimeout = 5 * time.Second
	defaultUserAgent      = "roost/0.1"
)

// NewClient builds a Client rooted at baseURL. A zero timeout uses
// DefaultRequestTimeout; tokens may be nil for anonymous use.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		tokens:    tokens,
	}, nil
}

// FetchOffers lists every offer.
func (c *Client) FetchOffers(ctx context.Context) ([]ServerOffer, error) {
	var payload []ServerOffer
	if err := c.do(ctx, http.MethodGet, nil, &payload, "offers"); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchOffer retrieves a single offer.
func (c *Client) FetchOffer(ctx context.Context, id string) (ServerOffer, error) {
	var payload ServerOffer
	if err := c.do(ctx, http.MethodGet, nil, &payload, "offers", id); err != nil {
		return ServerOffer{}, err
	}
	return payload, nil
}

// FetchNearby lists offers near the given one.
func (c *Client) FetchNearby(ctx context.Context, id string) ([]ServerOffer, error) {
	var payload []ServerOffer
	if err := c.do(ctx, http.MethodGet, nil, &payload, "offers", id, "nearby"); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchComments lists the reviews of an offer.
func (c *Client) FetchComments(ctx context.Context, id string) ([]ServerReview, error) {
	var payload []ServerReview
	if err := c.do(ctx, http.MethodGet, nil, &payload, "comments", id); err != nil {
		return nil, err
	}
	return payload, nil
}

// PostComment submits a review and returns the stored record.
func (c *Client) PostComment(ctx context.Context, id string, body CommentRequest) (ServerReview, error) {
	var payload ServerReview
	if err := c.do(ctx, http.MethodPost, body, &payload, "comments", id); err != nil {
		return ServerReview{}, err
	}
	return payload, nil
}

// CheckLogin verifies the current session and returns the profile.
func (c *Client) CheckLogin(ctx context.Context) (ServerAuthInfo, error) {
	var payload ServerAuthInfo
	if err := c.do(ctx, http.MethodGet, nil, &payload, "login"); err != nil {
		return ServerAuthInfo{}, err
	}
	return payload, nil
}

// Login authenticates and returns the profile with a fresh token.
func (c *Client) Login(ctx context.Context, body LoginRequest) (ServerAuthInfo, error) {
	var payload ServerAuthInfo
	if err := c.do(ctx, http.MethodPost, body, &payload, "login"); err != nil {
		return ServerAuthInfo{}, err
	}
	return payload, nil
}

// FetchFavorites lists the offers the user marked as favorite.
func (c *Client) FetchFavorites(ctx context.Context) ([]ServerOffer, error) {
	var payload []ServerOffer
	if err := c.do(ctx, http.MethodGet, nil, &payload, "favorite"); err != nil {
		return nil, err
	}
	return payload, nil
}

// SetFavorite adds or removes an offer from the favorites list.
func (c *Client) SetFavorite(ctx context.Context, id string, favorite bool) (ServerOffer, error) {
	status := "0"
	if favorite {
		status = "1"
	}
	var payload ServerOffer
	if err := c.do(ctx, http.MethodPost, nil, &payload, "favorite", id, status); err != nil {
		return ServerOffer{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method string, body, dest any, segments ...string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("empty path segment")
		}
		escaped[i] = url.PathEscape(s)
	}
	reqURL := c.baseURL.JoinPath(escaped...)
	rel := "/" + strings.Join(segments, "/")

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(TokenHeader, token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		_ = c.tokens.Drop()
	}
	if resp.StatusCode >= 400 {
		return &StatusError{Method: method, Path: rel, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
