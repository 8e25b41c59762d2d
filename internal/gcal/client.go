package gcal

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenStore persists OAuth tokens across restarts.
type TokenStore interface {
	SaveGoogleToken(userID, tokenJSON string) error
	GetGoogleToken(userID string) (string, error)
}

// defaultUserID keys the stored token; the assistant serves a single user.
const defaultUserID = "default"

// Client wraps the Google Calendar API client used for the study schedule.
type Client struct {
	service *calendar.Service
	config  *oauth2.Config
	tokens  TokenStore
	userID  string
	token   *oauth2.Token
}

// NewClient creates a Google Calendar client. If a saved token exists in the
// store it is loaded and the service initialized immediately; otherwise the
// client stays unauthenticated until ExchangeCode is called.
func NewClient(credentialsFile string, tokens TokenStore) (*Client, error) {
	config, err := loadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth config: %w", err)
	}

	client := &Client{
		config: config,
		tokens: tokens,
		userID: defaultUserID,
	}

	if token, err := client.loadToken(); err != nil {
		log.Printf("gcal: could not load saved token: %v", err)
	} else if token != nil {
		client.token = token
		if err := client.tryInitService(); err != nil {
			log.Printf("gcal: could not initialize service with saved token: %v", err)
		}
	}

	return client, nil
}

// loadToken returns the stored token for this user, or nil when the user has
// not authenticated yet.
func (c *Client) loadToken() (*oauth2.Token, error) {
	if c.tokens == nil {
		return nil, nil
	}
	tokenJSON, err := c.tokens.GetGoogleToken(c.userID)
	if err != nil || tokenJSON == "" {
		return nil, err
	}
	return decodeToken(tokenJSON)
}

func (c *Client) saveToken(token *oauth2.Token) error {
	if c.tokens == nil {
		return nil
	}
	tokenJSON, err := encodeToken(token)
	if err != nil {
		return err
	}
	return c.tokens.SaveGoogleToken(c.userID, tokenJSON)
}

// tryInitService initializes the service, refreshing the token first if it
// has expired and a refresh token is available.
func (c *Client) tryInitService() error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	ctx := context.Background()

	if !c.token.Valid() && c.token.RefreshToken != "" {
		tokenSource := c.config.TokenSource(ctx, c.token)
		newToken, err := tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		if err := c.saveToken(newToken); err != nil {
			log.Printf("gcal: could not save refreshed token: %v", err)
		}
	}

	return c.initService(ctx)
}

func (c *Client) initService(ctx context.Context) error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	httpClient := c.config.Client(ctx, c.token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	c.service = service
	return nil
}

// IsAuthenticated returns true when the calendar service is ready to use.
func (c *Client) IsAuthenticated() bool {
	return c.service != nil
}

// GetAuthURL returns the OAuth authorization URL to send the user to.
func (c *Client) GetAuthURL() string {
	return c.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a token, saves it, and
// initializes the calendar service.
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	c.token = token
	if err := c.saveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return c.initService(ctx)
}
