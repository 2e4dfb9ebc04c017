// Package api is the CLI's HTTP client for the fintrack REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// HTTPClient exposes the underlying client, e.g. for downloading exports.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

type message struct {
	Message string `json:"message"`
}

// do sends one request. With authed set the stored token is attached and
// a missing token fails fast with ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 300 {
		var m message
		_ = json.Unmarshal(data, &m)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, m.Message)
		default:
			return &APIError{Status: resp.StatusCode, Message: m.Message}
		}
	}

	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Ping checks that the API root answers.
func (c *Client) Ping(ctx context.Context) error {
	var s string
	return c.do(ctx, http.MethodGet, "/", nil, nil, &s, false)
}

// Register creates an account and returns the new user id.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp struct {
		UserID string `json:"userId"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", nil,
		map[string]string{"name": name, "email": email, "password": password}, &resp, false)
	return resp.UserID, err
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password}, &resp, false)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

func (f Filter) values() url.Values {
	v := url.Values{}
	if f.From != "" {
		v.Set("from", f.From)
	}
	if f.To != "" {
		v.Set("to", f.To)
	}
	if f.Month != 0 {
		v.Set("month", strconv.Itoa(f.Month))
	}
	if f.Year != 0 {
		v.Set("year", strconv.Itoa(f.Year))
	}
	return v
}

func (c *Client) ListTransactions(ctx context.Context, f Filter) ([]Transaction, error) {
	var out []Transaction
	err := c.do(ctx, http.MethodGet, "/api/transactions", f.values(), nil, &out, true)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (*Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil, nil, true)
}

func (c *Client) Summary(ctx context.Context, f Filter) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodGet, "/api/transactions/summary", f.values(), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Export(ctx context.Context, f Filter) (*ExportLink, error) {
	var out ExportLink
	if err := c.do(ctx, http.MethodPost, "/api/transactions/export", f.values(), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBudgets(ctx context.Context, month, year int) ([]Budget, error) {
	var out []Budget
	v := url.Values{"month": {strconv.Itoa(month)}, "year": {strconv.Itoa(year)}}
	err := c.do(ctx, http.MethodGet, "/api/budgets", v, nil, &out, true)
	return out, err
}

func (c *Client) SetBudget(ctx context.Context, in BudgetInput) (*Budget, error) {
	var out Budget
	if err := c.do(ctx, http.MethodPost, "/api/budgets", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/budgets/"+url.PathEscape(id), nil, nil, nil, true)
}

func (c *Client) ListGoals(ctx context.Context) ([]Goal, error) {
	var out []Goal
	err := c.do(ctx, http.MethodGet, "/api/goals", nil, nil, &out, true)
	return out, err
}

func (c *Client) CreateGoal(ctx context.Context, in GoalInput) (*Goal, error) {
	var out Goal
	if err := c.do(ctx, http.MethodPost, "/api/goals", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, p GoalPatch) (*Goal, error) {
	var out Goal
	if err := c.do(ctx, http.MethodPut, "/api/goals/"+url.PathEscape(id), nil, p.body(), &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/goals/"+url.PathEscape(id), nil, nil, nil, true)
}

// IsAuthError reports whether err means the stored session is no longer valid.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
