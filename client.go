package tempmail

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tempmail/client-go/internal/api"
)

// Client is a handle on one disposable mailbox. It holds the bound address
// and the summaries returned by the last successful CheckInbox.
//
// A Client is meant for sequential use. The stored summaries are guarded,
// so accessors are safe while another goroutine runs CheckInbox, but
// interleaving GenerateAddress and CheckInbox from several goroutines gives
// no ordering guarantee.
type Client struct {
	apiClient *api.Client
	validator *Validator
	logger    *zap.Logger

	// apiErr is set when the configuration could not produce an API client.
	apiErr error

	mu       sync.RWMutex
	address  Address
	messages []InboxSummary
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		UserAgent:  cfg.userAgent,
		Logger:     cfg.logger,
	})
}

// New creates a client with no address bound. Call GenerateAddress to get
// one from the service, or use FromAddress to bind an existing address.
//
// An invalid base URL is reported by the first operation that needs the
// network.
func New(opts ...Option) *Client {
	cfg := newClientConfig(opts)
	c := &Client{
		logger:   cfg.logger,
		messages: []InboxSummary{},
	}
	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		cfg.logger.Warn("invalid client configuration", zap.Error(err))
		c.apiErr = err
	}
	c.apiClient = apiClient
	c.validator = NewValidator(c, cfg.bannedNames)
	return c
}

// FromAddress validates candidate and returns a client bound to it.
// Validation errors are returned unchanged.
func FromAddress(ctx context.Context, candidate string, opts ...Option) (*Client, error) {
	c := New(opts...)
	addr, err := c.validator.Validate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	c.address = addr
	return c, nil
}

// GetDomains returns the domains the service offers. It needs no mailbox.
func GetDomains(ctx context.Context, opts ...Option) ([]string, error) {
	return New(opts...).Domains(ctx)
}

// GenerateAddresses asks the service for count random addresses without
// binding any of them.
func GenerateAddresses(ctx context.Context, count int, opts ...Option) ([]string, error) {
	return New(opts...).Addresses(ctx, count)
}

// Email returns the bound address, or "" if none is bound.
func (c *Client) Email() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address.String()
}

// Address returns the bound address.
func (c *Client) Address() Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Validator returns the validator bound to this client's configuration.
func (c *Client) Validator() *Validator {
	return c.validator
}

// GenerateAddress asks the service for one random address and binds it.
// Any stored summaries are cleared.
func (c *Client) GenerateAddress(ctx context.Context) error {
	tc, err := c.transport()
	if err != nil {
		return err
	}
	addresses, err := tc.GenRandomMailbox(ctx, 1)
	if err != nil {
		return err
	}

	addr, err := ParseAddress(addresses[0])
	if err != nil {
		return &ResponseError{
			Action:  api.ActionGenRandomMailbox,
			Message: fmt.Sprintf("generated address %q is malformed", addresses[0]),
		}
	}

	c.mu.Lock()
	c.address = addr
	c.messages = []InboxSummary{}
	c.mu.Unlock()

	c.logger.Debug("address generated", zap.String("address", addr.String()))
	return nil
}

// Domains returns the domains the service offers.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	tc, err := c.transport()
	if err != nil {
		return nil, err
	}
	return tc.GetDomainList(ctx)
}

// Addresses asks the service for count random addresses without binding
// any of them. A count below 1 asks for one.
func (c *Client) Addresses(ctx context.Context, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}
	tc, err := c.transport()
	if err != nil {
		return nil, err
	}
	return tc.GenRandomMailbox(ctx, count)
}

// CheckInbox fetches the inbox listing and replaces the stored summaries
// with it. On any error the previous summaries are kept.
func (c *Client) CheckInbox(ctx context.Context) error {
	addr, err := c.boundAddress()
	if err != nil {
		return err
	}
	tc, err := c.transport()
	if err != nil {
		return err
	}

	raw, err := tc.GetMessages(ctx, addr.Local, addr.Domain)
	if err != nil {
		return err
	}
	summaries := newInboxSummaries(raw)

	c.mu.Lock()
	c.messages = summaries
	c.mu.Unlock()
	return nil
}

// Messages returns a copy of the summaries from the last successful CheckInbox.
func (c *Client) Messages() []InboxSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]InboxSummary, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessagesCount returns the number of summaries from the last successful CheckInbox.
func (c *Client) MessagesCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// GetMessage fetches the full message id. An unknown id matches
// ErrMessageNotFound; transport and decode failures keep their own types.
func (c *Client) GetMessage(ctx context.Context, id int) (*Message, error) {
	addr, err := c.boundAddress()
	if err != nil {
		return nil, err
	}
	tc, err := c.transport()
	if err != nil {
		return nil, err
	}

	raw, err := tc.ReadMessage(ctx, addr.Local, addr.Domain, id)
	if err != nil {
		return nil, err
	}
	return newMessage(raw), nil
}

func (c *Client) boundAddress() (Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.address.IsZero() {
		return Address{}, ErrAddressNotSet
	}
	return c.address, nil
}

func (c *Client) transport() (*api.Client, error) {
	if c.apiClient == nil {
		return nil, fmt.Errorf("invalid client configuration: %w", c.apiErr)
	}
	return c.apiClient, nil
}
