package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/fjod/pharmacy_cashier/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the pharmacy back-office REST API. Every call runs behind a
// per-endpoint circuit breaker; not-found answers never trip a breaker.
type Client struct {
	baseURL string
	shopID  string
	http    *http.Client
	log     *slog.Logger
	observe func(op string, d time.Duration)

	products *gobreaker.CircuitBreaker[*domain.Product]
	members  *gobreaker.CircuitBreaker[*domain.Member]
	rewards  *gobreaker.CircuitBreaker[[]domain.PointReward]
	orders   *gobreaker.CircuitBreaker[string]
}

var (
	_ cart.ProductLookup  = (*Client)(nil)
	_ cart.MemberLookup   = (*Client)(nil)
	_ cart.RewardLookup   = (*Client)(nil)
	_ cart.OrderSubmitter = (*Client)(nil)
)

// ShopIDHeader selects the store datasource on the multi-tenant back office.
const ShopIDHeader = "X-Shop-Id"

type Option func(*Client)

// WithShopID routes every request to the given store's datasource.
func WithShopID(id string) Option {
	return func(cl *Client) { cl.shopID = id }
}

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithLatencyObserver receives the duration of every backend round trip.
func WithLatencyObserver(fn func(op string, d time.Duration)) Option {
	return func(cl *Client) { cl.observe = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	breaker := func(name string) circuitbreaker.Config {
		cfg := circuitbreaker.DefaultConfig("backend-" + name)
		cfg.Logger = c.log
		cfg.IsSuccessful = func(err error) bool {
			return err == nil || errors.Is(err, cart.ErrNotFound)
		}
		return cfg
	}
	c.products = circuitbreaker.New[*domain.Product](breaker("products"))
	c.members = circuitbreaker.New[*domain.Member](breaker("members"))
	c.rewards = circuitbreaker.New[[]domain.PointReward](breaker("rewards"))
	c.orders = circuitbreaker.New[string](breaker("orders"))
	return c
}

func (c *Client) Product(ctx context.Context, productID string) (*domain.Product, error) {
	return c.products.Execute(func() (*domain.Product, error) {
		var m medicineDTO
		if err := c.do(ctx, "get_product", http.MethodGet, "/api/medicines/"+url.PathEscape(productID), nil, &m); err != nil {
			return nil, notFoundAs(err, "product", productID)
		}
		p := m.toDomain()
		return &p, nil
	})
}

func (c *Client) Member(ctx context.Context, memberID string) (*domain.Member, error) {
	return c.members.Execute(func() (*domain.Member, error) {
		var m memberDTO
		if err := c.do(ctx, "get_member", http.MethodGet, "/api/members/"+url.PathEscape(memberID), nil, &m); err != nil {
			return nil, notFoundAs(err, "member", memberID)
		}
		mem := m.toDomain()
		return &mem, nil
	})
}

func (c *Client) ActiveRewards(ctx context.Context) ([]domain.PointReward, error) {
	return c.rewards.Execute(func() ([]domain.PointReward, error) {
		var rs []rewardDTO
		if err := c.do(ctx, "list_rewards", http.MethodGet, "/api/point-rewards/active", nil, &rs); err != nil {
			return nil, err
		}
		out := make([]domain.PointReward, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.toDomain())
		}
		return out, nil
	})
}

func (c *Client) SubmitOrder(ctx context.Context, payload domain.OrderPayload) (string, error) {
	return c.orders.Execute(func() (string, error) {
		var resp orderResponse
		if err := c.do(ctx, "submit_order", http.MethodPost, "/api/orders", newOrderRequest(payload), &resp); err != nil {
			return "", err
		}
		if resp.Code != 0 && resp.Code != http.StatusOK {
			return "", fmt.Errorf("order rejected: code %d: %s", resp.Code, resp.Message)
		}
		if resp.OrderID == "" {
			return "", errors.New("order accepted without an order id")
		}
		return resp.OrderID, nil
	})
}

// statusError carries a non-2xx backend answer.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.shopID != "" {
		req.Header.Set(ShopIDHeader, c.shopID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observe != nil {
		c.observe(op, time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

func notFoundAs(err error, kind, id string) error {
	var se *statusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return fmt.Errorf("%s %q: %w", kind, id, cart.ErrNotFound)
	}
	return err
}
