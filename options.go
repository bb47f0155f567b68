package tempmail

import (
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public 1secmail API endpoint.
	DefaultBaseURL = "https://www.1secmail.com/api/v1/"

	defaultTimeout      = 30 * time.Second
	defaultWaitTimeout  = 60 * time.Second
	defaultPollInterval = 5 * time.Second
)

// DefaultBannedNames returns the local parts the service refuses to host.
func DefaultBannedNames() []string {
	return []string{"abuse", "webmaster", "contact", "postmaster", "hostmaster", "admin"}
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	bannedNames []string
	logger      *zap.Logger
}

func newClientConfig(opts []Option) *clientConfig {
	cfg := &clientConfig{
		baseURL:     DefaultBaseURL,
		timeout:     defaultTimeout,
		bannedNames: DefaultBannedNames(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// waitConfig holds configuration for waiting on messages.
type waitConfig struct {
	subject      string
	subjectRegex *regexp.Regexp
	from         string
	fromRegex    *regexp.Regexp
	predicate    func(*InboxSummary) bool
	timeout      time.Duration
	pollInterval time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// WaitOption configures message waiting.
type WaitOption func(*waitConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The client's own timeout applies
// and WithTimeout is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout bounds every request, including the attachment body transfer.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithBannedNames replaces the list of local parts rejected by validation.
func WithBannedNames(names ...string) Option {
	return func(c *clientConfig) {
		c.bannedNames = append([]string(nil), names...)
	}
}

// WithLogger sets the logger used for request tracing. The default logger
// discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSubject filters messages by exact subject match.
func WithSubject(subject string) WaitOption {
	return func(c *waitConfig) {
		c.subject = subject
	}
}

// WithSubjectRegex filters messages by subject regex.
func WithSubjectRegex(pattern *regexp.Regexp) WaitOption {
	return func(c *waitConfig) {
		c.subjectRegex = pattern
	}
}

// WithFrom filters messages by exact sender match.
func WithFrom(from string) WaitOption {
	return func(c *waitConfig) {
		c.from = from
	}
}

// WithFromRegex filters messages by sender regex.
func WithFromRegex(pattern *regexp.Regexp) WaitOption {
	return func(c *waitConfig) {
		c.fromRegex = pattern
	}
}

// WithPredicate filters messages by custom predicate.
func WithPredicate(fn func(*InboxSummary) bool) WaitOption {
	return func(c *waitConfig) {
		c.predicate = fn
	}
}

// WithWaitTimeout sets the timeout for waiting.
// Default: 60 seconds
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the inbox polling interval.
// Default: 5 seconds
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.pollInterval = interval
	}
}

// Matches checks if a summary matches the wait criteria.
func (w *waitConfig) Matches(m *InboxSummary) bool {
	if w.subject != "" && m.Subject != w.subject {
		return false
	}
	if w.subjectRegex != nil && !w.subjectRegex.MatchString(m.Subject) {
		return false
	}
	if w.from != "" && m.From != w.from {
		return false
	}
	if w.fromRegex != nil && !w.fromRegex.MatchString(m.From) {
		return false
	}
	if w.predicate != nil && !w.predicate(m) {
		return false
	}
	return true
}
