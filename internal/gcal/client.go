package gcal

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	cal "github.com/omriShneor/plancast/internal/calendar"
)

const defaultCalendarID = "primary"

// Client wraps the Google Calendar API client
type Client struct {
	service    *calendar.Service
	config     *oauth2.Config
	tokenFile  string
	token      *oauth2.Token
	calendarID string
	timezone   string
	logger     *zap.Logger
}

// Options configures a Client.
type Options struct {
	CredentialsFile string
	TokenFile       string
	CalendarID      string
	// Timezone is the IANA zone written on created events.
	Timezone string
	Logger   *zap.Logger
}

// NewClient creates a new Google Calendar client
func NewClient(opts Options) (*Client, error) {
	config, err := loadOAuthConfig(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth config: %w", err)
	}

	client := newClient(opts)
	client.config = config

	// Try to load existing token and initialize service
	token, err := loadToken(opts.TokenFile)
	if err == nil {
		client.token = token
		if err := client.tryInitService(); err != nil {
			// Token might be expired, but that's OK - user will need to re-auth
			client.logger.Warn("could not initialize calendar service with existing token", zap.Error(err))
		}
	}

	return client, nil
}

// NewWithService wraps an already authenticated Calendar service.
func NewWithService(service *calendar.Service, opts Options) *Client {
	client := newClient(opts)
	client.service = service
	return client
}

func newClient(opts Options) *Client {
	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = defaultCalendarID
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		tokenFile:  opts.TokenFile,
		calendarID: calendarID,
		timezone:   opts.Timezone,
		logger:     logger,
	}
}

// Name implements calendar.Backend.
func (c *Client) Name() string { return "google" }

// tryInitService attempts to initialize the service, refreshing the token if needed
func (c *Client) tryInitService() error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	ctx := context.Background()

	// If token is expired but we have a refresh token, try to refresh
	if !c.token.Valid() && c.token.RefreshToken != "" {
		tokenSource := c.config.TokenSource(ctx, c.token)
		newToken, err := tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		if err := saveToken(c.tokenFile, newToken); err != nil {
			c.logger.Warn("could not save refreshed token", zap.Error(err))
		}
	}

	return c.initService(ctx)
}

// IsAuthenticated returns true if the client is authenticated
func (c *Client) IsAuthenticated() bool {
	return c.service != nil
}

// GetAuthURL returns the OAuth authorization URL
func (c *Client) GetAuthURL() string {
	return c.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// initService initializes the Calendar service with the current token
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

// ExchangeCode exchanges an authorization code for a token and saves it
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	c.token = token
	if err := saveToken(c.tokenFile, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return c.initService(ctx)
}

func (c *Client) requireService() error {
	if c.service == nil {
		return cal.ErrNotAuthenticated
	}
	return nil
}
