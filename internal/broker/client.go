package broker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	rabbithole "github.com/michaelklishin/rabbit-hole/v2"

	"github.com/andrzejandrzej/rabbit-tools/internal/config"
)

// Options configures a management API client.
type Options struct {
	URL       string
	User      string
	Password  string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client talks to the RabbitMQ management HTTP API.
type Client struct {
	api *rabbithole.Client
	url string
}

// New builds a Client from explicit options.
func New(opts Options) (*Client, error) {
	url := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if url == "" {
		return nil, errors.New("management api url is required")
	}
	api, err := rabbithole.NewClient(url, opts.User, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("create management client: %w", err)
	}
	if opts.Transport != nil {
		api.SetTransport(opts.Transport)
	}
	if opts.Timeout > 0 {
		api.SetTimeout(opts.Timeout)
	}
	return &Client{api: api, url: url}, nil
}

// NewFromConfig builds a Client from the [rabbit_tools] config section.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return New(Options{
		URL:      cfg.ManagementURL(),
		User:     cfg.RabbitTools.User,
		Password: cfg.RabbitTools.Password,
		Timeout:  time.Duration(cfg.RabbitTools.TimeoutSeconds) * time.Second,
	})
}

// URL returns the management API base URL.
func (c *Client) URL() string {
	return c.url
}

// ListQueues returns the queue names of vhost in the order the broker lists them.
func (c *Client) ListQueues(ctx context.Context, vhost string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	queues, err := c.api.ListQueuesIn(vhost)
	if err := classify("list queues in vhost", vhost, nil, err); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(queues))
	for _, q := range queues {
		names = append(names, q.Name)
	}
	return names, nil
}

// DeleteQueue removes queue from vhost.
func (c *Client) DeleteQueue(ctx context.Context, vhost, queue string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := c.api.DeleteQueue(vhost, queue)
	closeBody(res)
	return classify("delete queue", queue, res, err)
}

// PurgeQueue drops every message from queue, leaving the queue in place.
func (c *Client) PurgeQueue(ctx context.Context, vhost, queue string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := c.api.PurgeQueue(vhost, queue)
	closeBody(res)
	return classify("purge queue", queue, res, err)
}

// Ping confirms the management API is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.Overview()
	return classify("fetch overview", "", nil, err)
}

func closeBody(res *http.Response) {
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
}
