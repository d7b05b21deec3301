// Package rest talks to a PostgREST-style managed backend: password grant on
// /auth/v1, member profiles and product rows on /rest/v1.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/models"
)

const (
	productsTable = "products"
	membersTable  = "members"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// WithHTTPClient swaps the underlying client, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) Authenticate(ctx context.Context, email, password string) (*gateway.AuthResult, error) {
	var out passwordGrantResponse
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", passwordGrantRequest{
		Email:    email,
		Password: password,
	}, nil, &out)
	if err != nil {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	if out.User.ID == "" || out.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty session in token response", gateway.ErrInvalidCredentials)
	}
	return &gateway.AuthResult{IdentityID: out.User.ID, SessionToken: out.AccessToken}, nil
}

func (c *Client) FetchProfile(ctx context.Context, identityID string) (*gateway.Profile, error) {
	q := url.Values{}
	q.Set("select", "id,username,role")
	q.Set("id", "eq."+identityID)

	var rows []memberRow
	if _, err := c.do(ctx, http.MethodGet, "/rest/v1/"+membersTable+"?"+q.Encode(), nil, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("member %s: %w", identityID, gateway.ErrNotFound)
	}
	r := rows[0]
	return &gateway.Profile{ID: string(r.ID), Username: r.Username, Role: r.Role}, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	if _, err := c.do(ctx, http.MethodGet, "/rest/v1/"+productsTable+"?select=*", nil, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	body := insertProductRequest{Name: p.Name, UnitPrice: p.UnitPrice, Quantity: p.Quantity}
	var rows []productRow
	if _, err := c.do(ctx, http.MethodPost, "/rest/v1/"+productsTable, body, returnRepresentation, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no row", gateway.ErrTransport)
	}
	prod := rows[0].toModel()
	return &prod, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	var rows []productRow
	path := "/rest/v1/" + productsTable + "?id=eq." + url.QueryEscape(id)
	if _, err := c.do(ctx, http.MethodPatch, path, patchFromModel(patch), returnRepresentation, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("product %s: %w", id, gateway.ErrNotFound)
	}
	prod := rows[0].toModel()
	return &prod, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	var rows []productRow
	path := "/rest/v1/" + productsTable + "?id=eq." + url.QueryEscape(id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, returnRepresentation, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("product %s: %w", id, gateway.ErrNotFound)
	}
	return nil
}

var returnRepresentation = map[string]string{"Prefer": "return=representation"}

// do sends one request and decodes a 2xx JSON body into out. The returned
// status is 0 when the request never got a response.
func (c *Client) do(ctx context.Context, method, path string, in any, headers map[string]string, out any) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: do request: %v", gateway.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode response: %v", gateway.ErrTransport, err)
	}
	return resp.StatusCode, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var eb errorBody
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &eb) == nil && eb.text() != "" {
		msg = eb.text()
	}

	kind := gateway.ErrTransport
	switch resp.StatusCode {
	case http.StatusNotFound:
		kind = gateway.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		kind = gateway.ErrValidation
	}
	return fmt.Errorf("%w: status %d: %s", kind, resp.StatusCode, msg)
}
