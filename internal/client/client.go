package client

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type UnifiClient struct {
	HTTP   *resty.Client
	Config ClientConfig
	log    *zap.Logger
}

type ClientConfig struct {
	BaseURL  string
	Username string
	Password string
	Insecure bool          // skip TLS verification, controllers ship self-signed certs
	Timeout  time.Duration // per request, zero means no timeout
	Logger   *zap.Logger
}

// LoginPayload matches the JSON body required by POST /api/login
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BaseURL turns the host:port typed at the prompt into the controller base
// URL. Values that already carry a scheme are kept as they are.
func BaseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host
}

func New(cfg ClientConfig) *UnifiClient {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// resty.New installs a cookie jar, which is what carries the unifises
	// cookie from /api/login to every later call.
	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	r.SetLogger(logger.Sugar())

	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}
	if cfg.Insecure {
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("controller request",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("took", resp.Time()),
		)
		return nil
	})

	return &UnifiClient{
		HTTP:   r,
		Config: cfg,
		log:    logger,
	}
}

// Login authenticates with the controller. The session cookie is kept in
// the client's jar for all later requests.
func (c *UnifiClient) Login(ctx context.Context) error {
	payload := LoginPayload{
		Username: c.Config.Username,
		Password: c.Config.Password,
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/login")

	if err := checkResponse(resp, err, "login failed"); err != nil {
		return err
	}

	c.log.Debug("logged in", zap.String("username", c.Config.Username))
	return nil
}
