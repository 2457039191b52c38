package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type client struct {
	restyClient       *resty.Client
	orgID             string
	apiKey            string
	accessToken       string
	files             FileStorage
	resolverConfig    ResolverConfig
	resolver          *FileResolver
	pollInterval      time.Duration
	processingTimeout time.Duration
	logger            *zap.Logger
	registerer        prometheus.Registerer
	metrics           *Metrics
}

var _ Client = (*client)(nil)

type Option func(*client)

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		if baseURL != "" {
			c.restyClient.SetBaseURL(baseURL)
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.restyClient.SetTimeout(timeout)
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured API client.
// Credential headers are still set on it.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

// WithFileStorage attaches the storage used to presign bare paths.
func WithFileStorage(files FileStorage) Option {
	return func(c *client) {
		c.files = files
	}
}

// WithPresignExpiry sets the validity of presigned URLs. Defaults to one hour.
func WithPresignExpiry(expiry time.Duration) Option {
	return func(c *client) {
		c.resolverConfig.PresignExpiry = expiry
	}
}

// WithDefaultAdobeCloudPaths makes bare paths refer to Creative Cloud even
// when a file storage is attached.
func WithDefaultAdobeCloudPaths(enabled bool) Option {
	return func(c *client) {
		c.resolverConfig.DefaultAdobeCloudPaths = enabled
	}
}

// WithPollInterval sets the wait between job status polls.
func WithPollInterval(interval time.Duration) Option {
	return func(c *client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithProcessingTimeout bounds how long an operation waits for its job when
// the caller's context has no deadline. Zero waits indefinitely.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout >= 0 {
			c.processingTimeout = timeout
		}
	}
}

// WithLogger sets the logger. Requests and responses are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics registers job metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *client) {
		c.registerer = reg
	}
}

// NewClient creates a client for the given IMS organization, API key and
// access token.
func NewClient(orgID, apiKey, accessToken string, opts ...Option) (Client, error) {
	var missing []string
	if orgID == "" {
		missing = append(missing, "orgId")
	}
	if apiKey == "" {
		missing = append(missing, "apiKey")
	}
	if accessToken == "" {
		missing = append(missing, "accessToken")
	}
	if len(missing) > 0 {
		return nil, errInitialization(missing)
	}

	c := &client{
		restyClient:  newDefaultAPIClient(),
		orgID:        orgID,
		apiKey:       apiKey,
		accessToken:  accessToken,
		pollInterval: DefaultPollInterval,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = newDefaultAPIClient()
	}

	c.restyClient.
		SetAuthToken(accessToken).
		SetHeader(APIKeyHeader, apiKey).
		SetHeader(OrgIDHeader, orgID).
		OnAfterResponse(c.logResponse)

	if c.registerer != nil {
		metrics, err := NewMetrics(c.registerer)
		if err != nil {
			return nil, err
		}
		c.metrics = metrics
	}

	c.resolverConfig.Logger = c.logger
	c.resolver = NewFileResolver(c.files, c.resolverConfig)

	c.logger.Debug("client initialized",
		zap.String("base-url", c.restyClient.BaseURL),
		zap.String("default-path-storage", string(c.resolver.DefaultPathStorage())),
	)

	return c, nil
}

// Name returns the service name.
func (c *client) Name() string {
	return ServiceName
}

// Version returns the API version.
func (c *client) Version() string {
	return APIVersion
}

// Resolver returns the file resolver used by the operations.
func (c *client) Resolver() *FileResolver {
	return c.resolver
}

func newDefaultAPIClient() *resty.Client {
	return resty.New().
		SetBaseURL(DefaultBaseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(shouldRetry)
}
