package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentx-labs/create-discord-bot/internal/branding"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client performs identity lookups against the Discord API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(url string) Option {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(url, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a Client for the default API base URL.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(branding.APIBaseURL(), "/"),
		httpClient: http.DefaultClient,
		userAgent:  branding.CLIName(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type currentUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Resolve looks up the bot user behind token. It performs exactly one request
// and never returns an error; failures are described by the Identity.
func (c *Client) Resolve(ctx context.Context, token string) Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return Failed("no bot token provided")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return Failed(fmt.Sprintf("creating request: %v", err))
	}
	req.Header.Set("Authorization", "Bot "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Failed(fmt.Sprintf("contacting Discord: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Failed("Discord rejected the bot token")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failed(fmt.Sprintf("Discord API returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Failed(fmt.Sprintf("reading response body: %v", err))
	}

	var user currentUser
	if err := json.Unmarshal(body, &user); err != nil {
		return Failed(fmt.Sprintf("parsing response JSON: %v", err))
	}
	if user.ID == "" {
		return Failed("response has no id field")
	}

	return Resolved(user.ID, user.Username)
}
